// Package link provides cross-reference queries over artifact
// collections: canonical per-artifact dates, mentioned-name extraction,
// chronological ordering, and as-of availability filtering. All
// functions are pure; none hold hidden state.
package link

import (
	"sort"
	"strings"
	"time"

	"dealbench/internal/artifact"
)

const dateLayout = "2006-01-02"

// ParseDate parses an ISO-8601 date or date-time string, accepting a
// bare date, an RFC3339 timestamp, or a space-separated datetime.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		dateLayout,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EffectiveDate returns the one date that represents an artifact:
// transcripts and calendar events use their own date field; email and
// slack threads use their first message's timestamp; CRM snapshots use
// their earliest activity-log date; documents use their creation date.
// Variants with message/activity rules fall back to the creation date.
func EffectiveDate(a artifact.Artifact) (time.Time, bool) {
	switch v := a.(type) {
	case *artifact.Transcript:
		if t, ok := ParseDate(v.Date); ok {
			return t, true
		}
	case *artifact.EmailThread:
		if len(v.Messages) > 0 {
			if t, ok := ParseDate(v.Messages[0].Date); ok {
				return t, true
			}
		}
	case *artifact.CRMSnapshot:
		var earliest time.Time
		found := false
		for _, entry := range v.Activity {
			t, ok := ParseDate(entry.Date)
			if !ok {
				continue
			}
			if !found || t.Before(earliest) {
				earliest = t
				found = true
			}
		}
		if found {
			return earliest, true
		}
	case *artifact.Document:
		// creation date only
	case *artifact.SlackThread:
		if len(v.Messages) > 0 {
			if t, ok := ParseDate(v.Messages[0].Timestamp); ok {
				return t, true
			}
		}
	case *artifact.CalendarEvent:
		if t, ok := ParseDate(v.Date); ok {
			return t, true
		}
	}
	return ParseDate(a.Header().CreatedAt)
}

// MentionedNames extracts lowercased participant, attendee, contact,
// sender, and speaker names for entity-overlap linking.
func MentionedNames(a artifact.Artifact) []string {
	var names []string
	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			names = append(names, s)
		}
	}

	switch v := a.(type) {
	case *artifact.Transcript:
		for _, p := range v.Participants {
			add(p)
		}
		for _, turn := range v.Turns {
			add(turn.Speaker)
		}
	case *artifact.EmailThread:
		for _, m := range v.Messages {
			add(m.From)
			for _, to := range m.To {
				add(to)
			}
		}
	case *artifact.CRMSnapshot:
		for _, c := range v.Contacts {
			add(c.Name)
		}
	case *artifact.Document:
		// no participant fields
	case *artifact.SlackThread:
		for _, m := range v.Messages {
			add(m.User)
		}
	case *artifact.CalendarEvent:
		for _, att := range v.Attendees {
			add(att)
		}
	}

	return dedupe(names)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// SortChronologically returns the artifacts in stable ascending order by
// effective date. Artifacts whose dates cannot be parsed sort last.
func SortChronologically(artifacts []artifact.Artifact) []artifact.Artifact {
	out := append([]artifact.Artifact(nil), artifacts...)
	sort.SliceStable(out, func(i, j int) bool {
		ti, oki := EffectiveDate(out[i])
		tj, okj := EffectiveDate(out[j])
		if oki != okj {
			return oki // parseable before unparseable
		}
		if !oki {
			return false
		}
		return ti.Before(tj)
	})
	return out
}

// AvailableAsOf filters to artifacts whose effective date is on or
// before the cutoff. An unparseable cutoff yields the empty set rather
// than everything: fail-safe, not fail-open.
func AvailableAsOf(artifacts []artifact.Artifact, cutoff string) []artifact.Artifact {
	limit, ok := ParseDate(cutoff)
	if !ok {
		return nil
	}
	var out []artifact.Artifact
	for _, a := range artifacts {
		t, ok := EffectiveDate(a)
		if ok && !t.After(limit) {
			out = append(out, a)
		}
	}
	return out
}
