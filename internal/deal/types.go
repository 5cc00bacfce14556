// Package deal defines the aggregate record produced by one pipeline
// run: the anonymized artifact dictionary, the ordered checkpoint list
// with ground truth and evaluation tasks, and the validation result
// that gates export.
package deal

import (
	"dealbench/internal/artifact"
)

// SchemaVersion stamps every exported deal document. The validator
// rejects deals carrying a different version.
const SchemaVersion = "1.0"

// Outcome is the categorical label for what a forward window shows.
type Outcome string

const (
	OutcomeProgressing Outcome = "progressing"
	OutcomeStalled     Outcome = "stalled"
	OutcomeAtRisk      Outcome = "at_risk"
	OutcomeWon         Outcome = "won"
	OutcomeLost        Outcome = "lost"
)

// TaskType tags a synthesized evaluation task.
type TaskType string

const (
	TaskDealAnalysis        TaskType = "deal_analysis"
	TaskCallSummary         TaskType = "call_summary"
	TaskFollowUpDraft       TaskType = "follow_up_draft"
	TaskStakeholderAnalysis TaskType = "stakeholder_analysis"
)

// ScoringDimensions maps each task type to its fixed, hand-authored
// scoring-dimension keys. Downstream judges route on these keys, so the
// table must be reproduced exactly.
var ScoringDimensions = map[TaskType][]string{
	TaskDealAnalysis:        {"riskIdentification", "nextStepQuality", "prioritization", "outcomeAlignment"},
	TaskCallSummary:         {"informationSynthesis", "stakeholderMapping", "prioritization"},
	TaskFollowUpDraft:       {"communicationQuality", "nextStepQuality", "outcomeAlignment"},
	TaskStakeholderAnalysis: {"stakeholderMapping", "dealQualification", "informationSynthesis"},
}

// ArtifactRef is a lightweight pointer to an artifact available at a
// checkpoint.
type ArtifactRef struct {
	ArtifactID string        `json:"artifact_id"`
	Type       artifact.Type `json:"type"`
	Title      string        `json:"title,omitempty"`
	Date       string        `json:"date,omitempty"`
}

// State is the qualitative deal snapshot at a checkpoint.
type State struct {
	Stage                 string `json:"stage,omitempty"`
	AmountBand            string `json:"amount_band,omitempty"`
	DaysSinceFirstContact int    `json:"days_since_first_contact"`
}

// Stakeholder is a known contact at a checkpoint.
type Stakeholder struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Qualification is the optional structured qualification state captured
// from CRM properties.
type Qualification struct {
	Budget    string `json:"budget,omitempty"`
	Authority string `json:"authority,omitempty"`
	Need      string `json:"need,omitempty"`
	Timeline  string `json:"timeline,omitempty"`
}

// GroundTruth is derived, never authored: what actually happened in the
// forward window after a checkpoint.
type GroundTruth struct {
	Narrative         string   `json:"narrative"`
	MaterializedRisks []string `json:"materialized_risks,omitempty"`
	Outcome           Outcome  `json:"outcome"`
}

// EvaluationTask is one synthesized unit of work at a checkpoint.
type EvaluationTask struct {
	ID                string   `json:"id"`
	Type              TaskType `json:"type"`
	Prompt            string   `json:"prompt"`
	RequiredArtifacts []string `json:"required_artifacts"`
	OptionalArtifacts []string `json:"optional_artifacts,omitempty"`
	ScoringDimensions []string `json:"scoring_dimensions"`
	MaxTurns          int      `json:"max_turns,omitempty"`
}

// Checkpoint is the relationship state as of a single timestamp.
type Checkpoint struct {
	ID                 string           `json:"id"`
	DealID             string           `json:"deal_id"`
	Timestamp          string           `json:"timestamp"`
	AvailableArtifacts []ArtifactRef    `json:"available_artifacts"`
	State              State            `json:"state"`
	Stakeholders       []Stakeholder    `json:"stakeholders,omitempty"`
	Qualification      *Qualification   `json:"qualification,omitempty"`
	GroundTruth        GroundTruth      `json:"ground_truth"`
	Tasks              []EvaluationTask `json:"tasks"`
}

// Summary rolls up per-deal counts and the covered date range.
type Summary struct {
	ArtifactCount   int                   `json:"artifact_count"`
	CheckpointCount int                   `json:"checkpoint_count"`
	TaskCount       int                   `json:"task_count"`
	TypeCounts      map[artifact.Type]int `json:"type_counts,omitempty"`
	FirstDate       string                `json:"first_date,omitempty"`
	LastDate        string                `json:"last_date,omitempty"`
}

// Deal is the aggregate root: one source directory's worth of records,
// anonymized, segmented, and validated. Immutable once validation
// passes; exported only when validation reports zero errors.
type Deal struct {
	ID            string                       `json:"id"`
	Name          string                       `json:"name"`
	SchemaVersion string                       `json:"schema_version"`
	Artifacts     map[string]artifact.Artifact `json:"-"`
	Checkpoints   []Checkpoint                 `json:"checkpoints"`
	Outcome       Outcome                      `json:"outcome,omitempty"`
	Summary       Summary                      `json:"summary"`
}

// ValidationResult carries the validator's findings: hard errors block
// export, warnings flag the deal for human review but do not block.
type ValidationResult struct {
	DealID   string   `json:"deal_id"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Valid reports whether the deal may be published.
func (r ValidationResult) Valid() bool { return len(r.Errors) == 0 }
