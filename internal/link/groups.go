package link

import (
	"dealbench/internal/artifact"
)

// Group is a set of artifacts linked by time proximity or shared
// participant names.
type Group struct {
	Members []artifact.Artifact
}

// LinkedGroups clusters artifacts with a greedy single pass over the
// chronological order: each unvisited artifact seeds a group, and any
// later unvisited artifact within windowDays of the seed, or sharing at
// least one mentioned name with it, joins the group. Only the temporal
// condition consumes an artifact; name-only links may put the same
// artifact in more than one group.
//
// This is a best-effort heuristic grouping, not a proof-bearing
// clustering algorithm.
func LinkedGroups(artifacts []artifact.Artifact, windowDays int) []Group {
	ordered := SortChronologically(artifacts)
	visited := make(map[string]bool, len(ordered))

	var groups []Group
	for i, seed := range ordered {
		id := seed.Header().ID
		if visited[id] {
			continue
		}
		visited[id] = true

		group := Group{Members: []artifact.Artifact{seed}}
		seedDate, seedDateOK := EffectiveDate(seed)
		seedNames := nameSet(seed)

		for _, other := range ordered[i+1:] {
			otherID := other.Header().ID
			if visited[otherID] {
				continue
			}

			if seedDateOK {
				if otherDate, ok := EffectiveDate(other); ok {
					days := otherDate.Sub(seedDate).Hours() / 24
					if days < 0 {
						days = -days
					}
					if days <= float64(windowDays) {
						group.Members = append(group.Members, other)
						visited[otherID] = true
						continue
					}
				}
			}

			if sharesName(seedNames, other) {
				group.Members = append(group.Members, other)
			}
		}

		groups = append(groups, group)
	}
	return groups
}

func nameSet(a artifact.Artifact) map[string]bool {
	set := make(map[string]bool)
	for _, n := range MentionedNames(a) {
		set[n] = true
	}
	return set
}

func sharesName(names map[string]bool, a artifact.Artifact) bool {
	for _, n := range MentionedNames(a) {
		if names[n] {
			return true
		}
	}
	return false
}
