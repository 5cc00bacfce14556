// Package validate gates dataset publication: structural consistency,
// referential integrity, and a defense-in-depth leak scan over already
// anonymized text. Hard errors block export of the deal; warnings are
// surfaced for human review but never block.
package validate

import (
	"fmt"

	"dealbench/internal/anonymize"
	"dealbench/internal/deal"
)

// Validator checks assembled deals. The vocabulary is the same
// replacement table the anonymizer uses; the scan logic is deliberately
// separate from the anonymizer's code path so substitution-table gaps
// surface here.
type Validator struct {
	vocab *anonymize.Vocabulary
}

// New returns a Validator scanning against the given vocabulary.
func New(vocab *anonymize.Vocabulary) *Validator {
	return &Validator{vocab: vocab}
}

// Validate runs all structural checks, referential checks, and the leak
// scan over one deal.
func (v *Validator) Validate(d *deal.Deal) deal.ValidationResult {
	res := deal.ValidationResult{DealID: d.ID}
	errf := func(format string, args ...any) {
		res.Errors = append(res.Errors, fmt.Sprintf(format, args...))
	}
	warnf := func(format string, args ...any) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(format, args...))
	}

	if d.SchemaVersion != deal.SchemaVersion {
		errf("schema version %q does not match %q", d.SchemaVersion, deal.SchemaVersion)
	}
	if d.ID == "" {
		errf("deal id is missing")
	}
	if d.Name == "" {
		errf("deal name is missing")
	}

	if len(d.Artifacts) == 0 {
		errf("deal has zero artifacts")
	} else if len(d.Artifacts) < 2 {
		warnf("deal has fewer than 2 artifacts")
	}

	types := make(map[string]bool)
	for key, a := range d.Artifacts {
		meta := a.Header()
		if key != meta.ID {
			errf("artifact dictionary key %q does not match artifact id %q", key, meta.ID)
		}
		if meta.DealID != d.ID {
			errf("artifact %q belongs to deal %q, not %q", meta.ID, meta.DealID, d.ID)
		}
		if !meta.Anonymized {
			errf("artifact %q is not anonymized", meta.ID)
		}
		types[string(a.Type())] = true
	}
	if len(d.Artifacts) > 0 && len(types) == 1 {
		warnf("all artifacts are of a single type; source diversity is low")
	}

	if len(d.Checkpoints) == 0 {
		errf("deal has zero checkpoints")
	}
	for _, cp := range d.Checkpoints {
		v.validateCheckpoint(d, cp, errf, warnf)
	}

	res.Warnings = append(res.Warnings, v.scanForLeaks(d)...)
	return res
}

func (v *Validator) validateCheckpoint(d *deal.Deal, cp deal.Checkpoint, errf, warnf func(string, ...any)) {
	if cp.DealID != d.ID {
		errf("checkpoint %q belongs to deal %q, not %q", cp.ID, cp.DealID, d.ID)
	}
	if cp.Timestamp == "" {
		errf("checkpoint %q has no timestamp", cp.ID)
	}

	available := make(map[string]bool, len(cp.AvailableArtifacts))
	for _, ref := range cp.AvailableArtifacts {
		available[ref.ArtifactID] = true
		if _, ok := d.Artifacts[ref.ArtifactID]; !ok {
			errf("checkpoint %q references missing artifact %q", cp.ID, ref.ArtifactID)
		}
	}
	if len(cp.AvailableArtifacts) == 0 {
		warnf("checkpoint %q has no available artifacts", cp.ID)
	}

	if len(cp.Tasks) == 0 {
		warnf("checkpoint %q has no tasks", cp.ID)
	}
	for _, task := range cp.Tasks {
		for _, id := range task.RequiredArtifacts {
			if !available[id] {
				errf("task %q requires artifact %q outside checkpoint %q's available set", task.ID, id, cp.ID)
			}
		}
		if len(task.ScoringDimensions) == 0 {
			warnf("task %q has no scoring dimensions", task.ID)
		}
	}

	if cp.GroundTruth.Narrative == "" {
		warnf("checkpoint %q has no ground-truth narrative", cp.ID)
	}
}
