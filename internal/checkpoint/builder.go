// Package checkpoint segments a deal's unordered artifact bag into a
// small number of dated checkpoints: it scores candidate event dates
// from the CRM activity log and transcripts, collapses bursts, bounds
// the count, computes per-checkpoint artifact availability, synthesizes
// evaluation tasks, and extracts forward-looking ground truth.
package checkpoint

import (
	"fmt"
	"time"

	"dealbench/internal/artifact"
	"dealbench/internal/deal"
	"dealbench/internal/link"
	"dealbench/internal/logging"
)

const dateLayout = "2006-01-02"

// Config carries the deal-level metadata the builder needs. All fields
// except DealID are optional.
type Config struct {
	DealID           string
	Stage            string
	AmountBand       string
	FirstContactDate string // overrides the derived first-contact date
}

// Builder produces the ordered checkpoint list for one deal. It holds
// no state across Build calls and is safe for concurrent use on
// distinct deals.
type Builder struct {
	cfg Config
}

// New returns a Builder for the given deal configuration.
func New(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build segments the artifacts into checkpoints in non-decreasing
// timestamp order. It returns nil when no usable dates exist.
func (b *Builder) Build(artifacts []artifact.Artifact) []deal.Checkpoint {
	logger := logging.New("checkpoint")

	kept := dedupeCandidates(collectCandidates(artifacts))
	if len(kept) < minCheckpoints && len(artifacts) > 0 {
		logger.Debug("falling back to artifact timeline",
			"deal", b.cfg.DealID, "scored_candidates", len(kept))
		kept = fallbackCandidates(artifacts)
	}
	kept = boundCandidates(kept)
	if len(kept) == 0 {
		return nil
	}

	firstContact, haveFirstContact := b.firstContactDate(artifacts)
	entries := collectActivity(artifacts)

	checkpoints := make([]deal.Checkpoint, 0, len(kept))
	for i, cand := range kept {
		ts := cand.date.Format(dateLayout)
		cpID := fmt.Sprintf("%s-cp-%d", b.cfg.DealID, i+1)

		available := link.AvailableAsOf(artifacts, ts)

		elapsed := 0
		if haveFirstContact {
			elapsed = int(cand.date.Sub(firstContact).Hours() / 24)
			if elapsed < 0 {
				elapsed = 0
			}
		}

		next := time.Time{}
		hasNext := i+1 < len(kept)
		if hasNext {
			next = kept[i+1].date
		}

		checkpoints = append(checkpoints, deal.Checkpoint{
			ID:                 cpID,
			DealID:             b.cfg.DealID,
			Timestamp:          ts,
			AvailableArtifacts: makeRefs(available),
			State: deal.State{
				Stage:                 b.cfg.Stage,
				AmountBand:            b.cfg.AmountBand,
				DaysSinceFirstContact: elapsed,
			},
			Stakeholders:  stakeholdersFrom(available),
			Qualification: qualificationFrom(available),
			GroundTruth:   extractGroundTruth(entries, cand.date, next, hasNext),
			Tasks:         synthesizeTasks(cpID, available),
		})
	}
	return checkpoints
}

// Outcome classifies the deal's final outcome over the whole activity
// log, using the same cascade as per-checkpoint ground truth.
func (b *Builder) Outcome(artifacts []artifact.Artifact) deal.Outcome {
	entries := collectActivity(artifacts)
	gt := extractGroundTruth(entries, time.Time{}, time.Time{}, false)
	return gt.Outcome
}

// firstContactDate resolves the explicit override, else the first
// activity-log date, else the earliest artifact's effective date.
func (b *Builder) firstContactDate(artifacts []artifact.Artifact) (time.Time, bool) {
	if t, ok := link.ParseDate(b.cfg.FirstContactDate); ok {
		return t, true
	}
	if entries := collectActivity(artifacts); len(entries) > 0 {
		return entries[0].date, true
	}
	for _, a := range link.SortChronologically(artifacts) {
		if t, ok := link.EffectiveDate(a); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func makeRefs(available []artifact.Artifact) []deal.ArtifactRef {
	refs := make([]deal.ArtifactRef, 0, len(available))
	for _, a := range link.SortChronologically(available) {
		ref := deal.ArtifactRef{
			ArtifactID: a.Header().ID,
			Type:       a.Type(),
			Title:      artifact.Title(a),
		}
		if t, ok := link.EffectiveDate(a); ok {
			ref.Date = t.Format(dateLayout)
		}
		refs = append(refs, ref)
	}
	return refs
}

// stakeholdersFrom collects CRM contacts across the available
// snapshots, first occurrence of each name wins.
func stakeholdersFrom(available []artifact.Artifact) []deal.Stakeholder {
	seen := make(map[string]bool)
	var out []deal.Stakeholder
	for _, a := range available {
		snap, ok := a.(*artifact.CRMSnapshot)
		if !ok {
			continue
		}
		for _, c := range snap.Contacts {
			if c.Name == "" || seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			out = append(out, deal.Stakeholder{Name: c.Name, Role: c.Role})
		}
	}
	return out
}

// qualificationFrom reads BANT-style properties off the latest
// available CRM snapshot carrying any of them.
func qualificationFrom(available []artifact.Artifact) *deal.Qualification {
	ordered := link.SortChronologically(available)
	for i := len(ordered) - 1; i >= 0; i-- {
		snap, ok := ordered[i].(*artifact.CRMSnapshot)
		if !ok {
			continue
		}
		q := deal.Qualification{
			Budget:    snap.Properties["budget"],
			Authority: snap.Properties["authority"],
			Need:      snap.Properties["need"],
			Timeline:  snap.Properties["timeline"],
		}
		if q != (deal.Qualification{}) {
			return &q
		}
	}
	return nil
}
