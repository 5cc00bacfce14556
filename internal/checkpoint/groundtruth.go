package checkpoint

import (
	"sort"
	"strings"
	"time"

	"dealbench/internal/artifact"
	"dealbench/internal/deal"
	"dealbench/internal/link"
)

// datedEntry is an activity-log entry with its parsed date.
type datedEntry struct {
	date  time.Time
	entry artifact.ActivityEntry
}

// collectActivity gathers parseable activity-log entries across all CRM
// snapshots, sorted by date.
func collectActivity(artifacts []artifact.Artifact) []datedEntry {
	var out []datedEntry
	for _, a := range artifacts {
		snap, ok := a.(*artifact.CRMSnapshot)
		if !ok {
			continue
		}
		for _, e := range snap.Activity {
			if t, ok := link.ParseDate(e.Date); ok {
				out = append(out, datedEntry{date: t, entry: e})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].date.Before(out[j].date) })
	return out
}

// extractGroundTruth looks forward from a checkpoint date: the window is
// (current, next] for all but the last checkpoint and (current, +inf)
// for the last. Ground truth never looks behind the checkpoint or past
// the next one.
func extractGroundTruth(entries []datedEntry, current time.Time, next time.Time, hasNext bool) deal.GroundTruth {
	var window []artifact.ActivityEntry
	for _, de := range entries {
		if !de.date.After(current) {
			continue
		}
		if hasNext && de.date.After(next) {
			continue
		}
		window = append(window, de.entry)
	}

	if len(window) == 0 {
		return deal.GroundTruth{
			Narrative: emptyWindowNarrative,
			Outcome:   deal.OutcomeProgressing,
		}
	}

	descriptions := make([]string, len(window))
	for i, e := range window {
		descriptions[i] = e.Description
	}
	narrative := strings.Join(descriptions, " ")

	var risks []string
	for _, e := range window {
		if containsRiskKeyword(e.Description) {
			risks = append(risks, e.Description)
		}
	}

	return deal.GroundTruth{
		Narrative:         narrative,
		MaterializedRisks: risks,
		Outcome:           classifyOutcome(narrative, len(risks), len(window)),
	}
}

func containsRiskKeyword(description string) bool {
	desc := strings.ToLower(description)
	for _, kw := range riskKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// classifyOutcome applies the fixed-priority cascade over the joined
// narrative. An explicit close signal always wins over the risk-ratio
// test; this literal ordering is part of the contract.
func classifyOutcome(narrative string, riskCount, entryCount int) deal.Outcome {
	text := strings.ToLower(narrative)
	switch {
	case strings.Contains(text, "closed won"),
		strings.Contains(text, "won"),
		strings.Contains(text, "signed"):
		return deal.OutcomeWon
	case strings.Contains(text, "closed lost"),
		strings.Contains(text, "lost"):
		return deal.OutcomeLost
	case strings.Contains(text, "stall"),
		strings.Contains(text, "no response"),
		strings.Contains(text, "went quiet"):
		return deal.OutcomeStalled
	case 2*riskCount > entryCount:
		return deal.OutcomeAtRisk
	default:
		return deal.OutcomeProgressing
	}
}
