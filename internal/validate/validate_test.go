package validate

import (
	"strings"
	"testing"

	"dealbench/internal/anonymize"
	"dealbench/internal/artifact"
	"dealbench/internal/deal"
)

func testValidator(t *testing.T) *Validator {
	t.Helper()
	vocab, err := anonymize.DefaultVocabulary()
	if err != nil {
		t.Fatalf("DefaultVocabulary: %v", err)
	}
	return New(vocab)
}

func cleanDeal() *deal.Deal {
	doc := &artifact.Document{
		Meta:    artifact.Meta{ID: "doc-1", DealID: "d-1", CreatedAt: "2026-01-05", Anonymized: true},
		Title:   "Scope notes",
		Content: "Agreed on rollout phases.",
	}
	tr := &artifact.Transcript{
		Meta:  artifact.Meta{ID: "tr-1", DealID: "d-1", CreatedAt: "2026-01-10", Anonymized: true},
		Title: "Kickoff call",
		Date:  "2026-01-10",
		Turns: []artifact.Turn{{Speaker: "Avery", Text: "Let's begin."}},
	}
	return &deal.Deal{
		ID:            "d-1",
		Name:          "Rollout deal",
		SchemaVersion: deal.SchemaVersion,
		Artifacts:     map[string]artifact.Artifact{"doc-1": doc, "tr-1": tr},
		Checkpoints: []deal.Checkpoint{
			{
				ID:        "d-1-cp-1",
				DealID:    "d-1",
				Timestamp: "2026-01-10",
				AvailableArtifacts: []deal.ArtifactRef{
					{ArtifactID: "doc-1", Type: artifact.TypeDocument},
					{ArtifactID: "tr-1", Type: artifact.TypeTranscript},
				},
				GroundTruth: deal.GroundTruth{Narrative: "Momentum continued.", Outcome: deal.OutcomeProgressing},
				Tasks: []deal.EvaluationTask{
					{
						ID:                "d-1-cp-1-task-1",
						Type:              deal.TaskDealAnalysis,
						Prompt:            "Assess.",
						RequiredArtifacts: []string{"doc-1"},
						ScoringDimensions: deal.ScoringDimensions[deal.TaskDealAnalysis],
					},
				},
			},
		},
	}
}

func hasFinding(findings []string, substr string) bool {
	for _, f := range findings {
		if strings.Contains(f, substr) {
			return true
		}
	}
	return false
}

func TestValidate_CleanDeal(t *testing.T) {
	res := testValidator(t).Validate(cleanDeal())
	if !res.Valid() {
		t.Fatalf("clean deal should validate, errors: %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("clean deal warnings: %v", res.Warnings)
	}
}

func TestValidate_StructuralErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*deal.Deal)
		want   string
	}{
		{"version mismatch", func(d *deal.Deal) { d.SchemaVersion = "0.9" }, "schema version"},
		{"missing id", func(d *deal.Deal) { d.ID = "" }, "deal id is missing"},
		{"missing name", func(d *deal.Deal) { d.Name = "" }, "deal name is missing"},
		{"zero artifacts", func(d *deal.Deal) { d.Artifacts = nil }, "zero artifacts"},
		{
			"key mismatch",
			func(d *deal.Deal) {
				d.Artifacts["wrong-key"] = d.Artifacts["doc-1"]
				delete(d.Artifacts, "doc-1")
			},
			"does not match artifact id",
		},
		{
			"artifact deal mismatch",
			func(d *deal.Deal) { d.Artifacts["doc-1"].Header().DealID = "other" },
			"belongs to deal",
		},
		{
			"unanonymized artifact",
			func(d *deal.Deal) { d.Artifacts["doc-1"].Header().Anonymized = false },
			"not anonymized",
		},
		{"zero checkpoints", func(d *deal.Deal) { d.Checkpoints = nil }, "zero checkpoints"},
		{
			"checkpoint deal mismatch",
			func(d *deal.Deal) { d.Checkpoints[0].DealID = "other" },
			"belongs to deal",
		},
		{
			"missing timestamp",
			func(d *deal.Deal) { d.Checkpoints[0].Timestamp = "" },
			"no timestamp",
		},
		{
			"dangling artifact reference",
			func(d *deal.Deal) {
				d.Checkpoints[0].AvailableArtifacts = append(
					d.Checkpoints[0].AvailableArtifacts,
					deal.ArtifactRef{ArtifactID: "ghost"},
				)
			},
			"missing artifact",
		},
		{
			"task requires unavailable artifact",
			func(d *deal.Deal) {
				d.Checkpoints[0].Tasks[0].RequiredArtifacts = []string{"not-available"}
			},
			"outside checkpoint",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := cleanDeal()
			tt.mutate(d)
			res := testValidator(t).Validate(d)
			if res.Valid() {
				t.Fatalf("expected errors, got none (warnings: %v)", res.Warnings)
			}
			if !hasFinding(res.Errors, tt.want) {
				t.Errorf("errors %v missing %q", res.Errors, tt.want)
			}
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	t.Run("single type still valid", func(t *testing.T) {
		d := cleanDeal()
		delete(d.Artifacts, "tr-1")
		d.Checkpoints[0].AvailableArtifacts = d.Checkpoints[0].AvailableArtifacts[:1]
		res := testValidator(t).Validate(d)
		if !res.Valid() {
			t.Fatalf("single-type deal must remain valid, errors: %v", res.Errors)
		}
		if !hasFinding(res.Warnings, "single type") {
			t.Errorf("warnings %v missing source-diversity warning", res.Warnings)
		}
		if !hasFinding(res.Warnings, "fewer than 2 artifacts") {
			t.Errorf("warnings %v missing artifact-count warning", res.Warnings)
		}
	})

	t.Run("empty checkpoint surfaces", func(t *testing.T) {
		d := cleanDeal()
		d.Checkpoints[0].AvailableArtifacts = nil
		d.Checkpoints[0].Tasks = nil
		d.Checkpoints[0].GroundTruth.Narrative = ""
		res := testValidator(t).Validate(d)
		if !res.Valid() {
			t.Fatalf("warnings must not block, errors: %v", res.Errors)
		}
		for _, want := range []string{"no available artifacts", "no tasks", "no ground-truth narrative"} {
			if !hasFinding(res.Warnings, want) {
				t.Errorf("warnings %v missing %q", res.Warnings, want)
			}
		}
	})
}

func TestValidate_LeakScanner(t *testing.T) {
	d := cleanDeal()
	// Simulate an anonymizer bug: a vocabulary name survives in a body
	// that is already flagged anonymized.
	doc := d.Artifacts["doc-1"].(*artifact.Document)
	doc.Content = "Sarah confirmed the rollout."

	res := testValidator(t).Validate(d)
	if !res.Valid() {
		t.Fatalf("leaks are warnings, not errors; got errors: %v", res.Errors)
	}
	if !hasFinding(res.Warnings, "person name leak") {
		t.Errorf("warnings %v missing person-name leak", res.Warnings)
	}
	if !hasFinding(res.Warnings, `"Sarah"`) {
		t.Errorf("warnings %v should report the offending substring", res.Warnings)
	}
}

func TestValidate_LeakPatterns(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"raw email", "contact her at jane@bigco.com", "email address leak"},
		{"raw phone", "call 415-555-2671 today", "phone number leak"},
		{"raw path", "notes in /home/jdoe/q1.txt", "home directory path leak"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := cleanDeal()
			d.Artifacts["doc-1"].(*artifact.Document).Content = tt.content
			res := testValidator(t).Validate(d)
			if !hasFinding(res.Warnings, tt.want) {
				t.Errorf("warnings %v missing %q", res.Warnings, tt.want)
			}
		})
	}
}

func TestValidate_PlaceholdersNotFlagged(t *testing.T) {
	d := cleanDeal()
	d.Artifacts["doc-1"].(*artifact.Document).Content =
		"Reach contact@example.com or (555) 000-0000; files under /home/user."
	res := testValidator(t).Validate(d)
	if len(res.Warnings) != 0 {
		t.Errorf("placeholders must not be reported as leaks: %v", res.Warnings)
	}
}
