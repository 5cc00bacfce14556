package checkpoint

import (
	"sort"
	"strings"
	"time"

	"dealbench/internal/artifact"
	"dealbench/internal/link"
)

// candidate is a scored event date collected from the activity log or a
// transcript. Duplicates across sources are not pre-merged; the dedup
// pass collapses them.
type candidate struct {
	date  time.Time
	score int
}

// scoreEntry computes an activity-log entry's relevance.
func scoreEntry(e artifact.ActivityEntry) int {
	score := 0
	desc := strings.ToLower(e.Description)
	for _, kw := range triggerKeywords {
		if strings.Contains(desc, kw) {
			score += keywordScore
		}
	}
	switch strings.ToLower(e.Category) {
	case "stage_change", "stage change":
		score += stageChangeBonus
	case "call", "meeting":
		score += callMeetingBonus
	}
	return score
}

// collectCandidates scores every activity-log entry across the deal's
// CRM snapshots and adds each transcript's own date at a fixed score.
// Entries that score zero carry no checkpoint signal and are skipped.
func collectCandidates(artifacts []artifact.Artifact) []candidate {
	var out []candidate
	for _, a := range artifacts {
		switch v := a.(type) {
		case *artifact.CRMSnapshot:
			for _, e := range v.Activity {
				score := scoreEntry(e)
				if score == 0 {
					continue
				}
				if t, ok := link.ParseDate(e.Date); ok {
					out = append(out, candidate{date: t, score: score})
				}
			}
		case *artifact.Transcript:
			if t, ok := link.ParseDate(v.Date); ok {
				out = append(out, candidate{date: t, score: transcriptScore})
			}
		}
	}
	return out
}

// dedupeCandidates sorts candidates by date (ties broken by descending
// score) and keeps a candidate only if no already-kept date is within 2
// calendar days. The window is exclusive at the boundary: dates exactly
// 2 days apart both survive. Bursts of closely-spaced signals collapse
// into their highest-scored first-kept member.
func dedupeCandidates(cands []candidate) []candidate {
	sorted := append([]candidate(nil), cands...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].date.Equal(sorted[j].date) {
			return sorted[i].date.Before(sorted[j].date)
		}
		return sorted[i].score > sorted[j].score
	})

	var kept []candidate
	for _, c := range sorted {
		tooClose := false
		for _, k := range kept {
			if daysApart(c.date, k.date) < 2 {
				tooClose = true
				break
			}
		}
		if !tooClose {
			kept = append(kept, c)
		}
	}
	return kept
}

func daysApart(a, b time.Time) float64 {
	d := a.Sub(b).Hours() / 24
	if d < 0 {
		d = -d
	}
	return d
}

// maxCheckpoints is a soft cap: the bounding rule composes
// [first, top-interior-by-score, last] and never silently truncates
// below that composition.
const (
	maxCheckpoints = 6
	interiorKeep   = 4
	minCheckpoints = 2
)

// boundCandidates enforces the 2–6 checkpoint target. Above the cap it
// always keeps the first and last dates and re-ranks the interior by
// original score, keeping the top interiorKeep re-sorted
// chronologically.
func boundCandidates(kept []candidate) []candidate {
	if len(kept) <= maxCheckpoints {
		return kept
	}

	first := kept[0]
	last := kept[len(kept)-1]
	interior := append([]candidate(nil), kept[1:len(kept)-1]...)

	sort.SliceStable(interior, func(i, j int) bool {
		return interior[i].score > interior[j].score
	})
	if len(interior) > interiorKeep {
		interior = interior[:interiorKeep]
	}
	sort.SliceStable(interior, func(i, j int) bool {
		return interior[i].date.Before(interior[j].date)
	})

	out := make([]candidate, 0, len(interior)+2)
	out = append(out, first)
	out = append(out, interior...)
	out = append(out, last)
	return out
}

// fallbackCandidates picks checkpoint dates straight from the artifact
// timeline when scored candidates are too sparse: the chronological
// midpoint artifact's date and the last artifact's date, or the single
// date when only one artifact exists.
func fallbackCandidates(artifacts []artifact.Artifact) []candidate {
	ordered := link.SortChronologically(artifacts)
	var dates []time.Time
	for _, a := range ordered {
		if t, ok := link.EffectiveDate(a); ok {
			dates = append(dates, t)
		}
	}
	if len(dates) == 0 {
		return nil
	}
	if len(dates) == 1 {
		return []candidate{{date: dates[0], score: 1}}
	}
	mid := dates[len(dates)/2]
	lastDate := dates[len(dates)-1]
	out := []candidate{{date: mid, score: 1}}
	if !lastDate.Equal(mid) {
		out = append(out, candidate{date: lastDate, score: 1})
	}
	return out
}
