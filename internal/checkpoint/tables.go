package checkpoint

import "dealbench/internal/deal"

// Scoring and vocabulary tables are data, not control flow, so the
// scoring functions stay simple and the vocabulary stays independently
// testable.

// triggerKeywords mark activity-log entries that represent narrative
// turning points. Matches are case-insensitive substrings and additive:
// one entry can score several keywords.
var triggerKeywords = []string{
	"demo",
	"proposal",
	"pricing",
	"negotiation",
	"pilot",
	"close",
	"loss",
	"stall",
	"escalation",
	"executive",
	"technical",
	"contract",
	"decision",
	"discovery",
}

const (
	keywordScore     = 2 // per trigger keyword matched
	stageChangeBonus = 3 // entry category "stage_change"
	callMeetingBonus = 1 // entry category "call" or "meeting"
	transcriptScore  = 2 // fixed score for a transcript's own date
)

// riskKeywords mark activity descriptions that represent materialized
// risks in a checkpoint's forward window.
var riskKeywords = []string{
	"delay",
	"stall",
	"concern",
	"blocker",
	"risk",
	"competitor",
	"budget",
	"postpone",
	"cancel",
	"silent",
	"no response",
}

// emptyWindowNarrative is the fixed ground-truth narrative for a
// checkpoint with no subsequent activity.
const emptyWindowNarrative = "No subsequent activity recorded."

// taskPrompts are the hand-authored prompt texts per task type.
var taskPrompts = map[deal.TaskType]string{
	deal.TaskDealAnalysis: "Review the available artifacts and assess the current state of this deal. " +
		"Identify the top risks, recommend prioritized next steps, and explain your reasoning.",
	deal.TaskCallSummary: "Summarize the most recent call: key points discussed, stakeholder positions, " +
		"commitments made, and anything that needs follow-up.",
	deal.TaskFollowUpDraft: "Draft the follow-up message you would send after the most recent interaction. " +
		"It should advance the deal and address any open concerns.",
	deal.TaskStakeholderAnalysis: "Map the stakeholders involved in this deal: their roles, influence, and " +
		"disposition. Identify gaps in coverage and who you would engage next.",
}
