package checkpoint

import (
	"fmt"

	"dealbench/internal/artifact"
	"dealbench/internal/deal"
	"dealbench/internal/link"
)

// synthesizeTasks derives the checkpoint's evaluation tasks from the
// artifact-type mix available at it. Every required-artifact list is a
// subset of the available set by construction.
func synthesizeTasks(checkpointID string, available []artifact.Artifact) []deal.EvaluationTask {
	ordered := link.SortChronologically(available)
	types := distinctTypes(ordered)

	var tasks []deal.EvaluationTask
	addTask := func(taskType deal.TaskType, required, optional []string, maxTurns int) {
		tasks = append(tasks, deal.EvaluationTask{
			ID:                fmt.Sprintf("%s-task-%d", checkpointID, len(tasks)+1),
			Type:              taskType,
			Prompt:            taskPrompts[taskType],
			RequiredArtifacts: required,
			OptionalArtifacts: optional,
			ScoringDimensions: deal.ScoringDimensions[taskType],
			MaxTurns:          maxTurns,
		})
	}

	if len(ordered) > 0 {
		recent := mostRecentIDs(ordered, 3)
		optional := mostRecentIDs(without(ordered, recent), 3)
		turns := 1
		if len(types) >= 2 {
			turns = 3
		}
		addTask(deal.TaskDealAnalysis, recent, optional, turns)
	}

	transcripts := ofType(ordered, artifact.TypeTranscript)
	if len(transcripts) > 0 {
		required := mostRecentIDs(transcripts, 1)
		optional := mostRecentIDs(ofType(ordered, artifact.TypeCRMSnapshot), 2)
		addTask(deal.TaskCallSummary, required, optional, 0)
	}

	correspondence := append(ofType(ordered, artifact.TypeTranscript), ofType(ordered, artifact.TypeEmail)...)
	if len(correspondence) > 0 {
		required := mostRecentIDs(link.SortChronologically(correspondence), 2)
		addTask(deal.TaskFollowUpDraft, required, nil, 0)
	}

	if len(ordered) >= 3 && len(types) >= 2 {
		required := mostRecentIDs(ordered, 3)
		optional := mostRecentIDs(without(ordered, required), 3)
		addTask(deal.TaskStakeholderAnalysis, required, optional, 2)
	}

	return tasks
}

func distinctTypes(artifacts []artifact.Artifact) map[artifact.Type]bool {
	types := make(map[artifact.Type]bool)
	for _, a := range artifacts {
		types[a.Type()] = true
	}
	return types
}

func ofType(artifacts []artifact.Artifact, t artifact.Type) []artifact.Artifact {
	var out []artifact.Artifact
	for _, a := range artifacts {
		if a.Type() == t {
			out = append(out, a)
		}
	}
	return out
}

// mostRecentIDs returns up to n artifact ids from the chronological
// tail, oldest of the selection first.
func mostRecentIDs(ordered []artifact.Artifact, n int) []string {
	if len(ordered) > n {
		ordered = ordered[len(ordered)-n:]
	}
	var out []string
	for _, a := range ordered {
		out = append(out, a.Header().ID)
	}
	return out
}

func without(artifacts []artifact.Artifact, excludeIDs []string) []artifact.Artifact {
	exclude := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		exclude[id] = true
	}
	var out []artifact.Artifact
	for _, a := range artifacts {
		if !exclude[a.Header().ID] {
			out = append(out, a)
		}
	}
	return out
}
