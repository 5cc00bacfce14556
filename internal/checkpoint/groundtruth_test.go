package checkpoint

import (
	"testing"

	"dealbench/internal/artifact"
	"dealbench/internal/deal"
)

func entriesFrom(pairs ...artifact.ActivityEntry) []datedEntry {
	snap := &artifact.CRMSnapshot{Meta: artifact.Meta{ID: "crm"}, Activity: pairs}
	return collectActivity([]artifact.Artifact{snap})
}

func TestExtractGroundTruth_WindowBounds(t *testing.T) {
	entries := entriesFrom(
		artifact.ActivityEntry{Date: "2026-01-05", Category: "note", Description: "before the checkpoint"},
		artifact.ActivityEntry{Date: "2026-01-12", Category: "note", Description: "inside the window"},
		artifact.ActivityEntry{Date: "2026-01-20", Category: "note", Description: "on the next checkpoint"},
		artifact.ActivityEntry{Date: "2026-01-28", Category: "note", Description: "beyond the next checkpoint"},
	)

	gt := extractGroundTruth(entries, day("2026-01-10"), day("2026-01-20"), true)

	if gt.Narrative != "inside the window on the next checkpoint" {
		t.Errorf("narrative = %q; window must be exclusive at the start, inclusive at the next checkpoint", gt.Narrative)
	}
}

func TestExtractGroundTruth_LastWindowOpenEnded(t *testing.T) {
	entries := entriesFrom(
		artifact.ActivityEntry{Date: "2026-01-12", Category: "note", Description: "first"},
		artifact.ActivityEntry{Date: "2026-03-01", Category: "note", Description: "much later"},
	)
	gt := extractGroundTruth(entries, day("2026-01-10"), day("2026-01-01"), false)
	if gt.Narrative != "first much later" {
		t.Errorf("narrative = %q, want both entries in the open-ended final window", gt.Narrative)
	}
}

func TestExtractGroundTruth_EmptyWindow(t *testing.T) {
	gt := extractGroundTruth(nil, day("2026-01-10"), day("2026-01-20"), true)
	if gt.Narrative != emptyWindowNarrative {
		t.Errorf("narrative = %q, want fixed empty-window string", gt.Narrative)
	}
	if gt.Outcome != deal.OutcomeProgressing {
		t.Errorf("outcome = %q, want progressing", gt.Outcome)
	}
	if len(gt.MaterializedRisks) != 0 {
		t.Errorf("risks = %v, want none", gt.MaterializedRisks)
	}
}

func TestClassifyOutcome_Cascade(t *testing.T) {
	tests := []struct {
		name      string
		narrative string
		risks     int
		entries   int
		want      deal.Outcome
	}{
		{"closed won", "Moved to Closed Won", 0, 1, deal.OutcomeWon},
		{"signed", "Contract signed by legal", 0, 1, deal.OutcomeWon},
		{"closed lost", "Moved to Closed Lost", 0, 1, deal.OutcomeLost},
		{"stalled", "Champion went quiet after the demo", 0, 1, deal.OutcomeStalled},
		{"no response", "Two emails, no response", 1, 2, deal.OutcomeStalled},
		{"risk ratio", "Budget concern and competitor mentioned", 2, 3, deal.OutcomeAtRisk},
		{"risk ratio not exceeded", "One concern among many updates", 1, 2, deal.OutcomeProgressing},
		{"default", "Scheduled the next demo", 0, 2, deal.OutcomeProgressing},
		// "won" outranks heavy risk language: explicit close always wins.
		{"won beats risks", "Deal won despite budget concerns and delays", 3, 3, deal.OutcomeWon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyOutcome(tt.narrative, tt.risks, tt.entries); got != tt.want {
				t.Errorf("classifyOutcome = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCollectActivity_SortedAcrossSnapshots(t *testing.T) {
	arts := []artifact.Artifact{
		&artifact.CRMSnapshot{
			Meta:     artifact.Meta{ID: "crm-2"},
			Activity: []artifact.ActivityEntry{{Date: "2026-01-20", Category: "note", Description: "later"}},
		},
		&artifact.CRMSnapshot{
			Meta: artifact.Meta{ID: "crm-1"},
			Activity: []artifact.ActivityEntry{
				{Date: "2026-01-10", Category: "note", Description: "earlier"},
				{Date: "bad date", Category: "note", Description: "skipped"},
			},
		},
	}
	entries := collectActivity(arts)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (unparseable dates skipped)", len(entries))
	}
	if entries[0].entry.Description != "earlier" || entries[1].entry.Description != "later" {
		t.Errorf("entries out of order: %v", entries)
	}
}
