package validate

import (
	"fmt"
	"regexp"
	"strings"

	"dealbench/internal/artifact"
	"dealbench/internal/deal"
)

// Structural leak patterns. These intentionally re-state the shapes the
// anonymizer substitutes, rather than importing its internals: the scan
// is a post-hoc audit of the output, not a re-run of the transform.
var leakPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"email address", regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}`)},
	{"phone number", regexp.MustCompile(`\(?\b\d{3}\)?[\s.-]\d{3}[\s.-]\d{4}\b`)},
	{"home directory path", regexp.MustCompile(`(?:/home|/Users)/[A-Za-z0-9._-]+`)},
}

// scanForLeaks re-applies pattern matching to every artifact flagged as
// anonymized and reports survivals as warnings. Short common words can
// collide with the name vocabulary, so findings are advisory, never
// blocking.
func (v *Validator) scanForLeaks(d *deal.Deal) []string {
	var warnings []string
	for _, a := range d.Artifacts {
		if !a.Header().Anonymized {
			continue
		}
		text := strings.Join(freeText(a), "\n")
		warnings = append(warnings, v.scanText(a.Header().ID, text)...)
	}
	return warnings
}

func (v *Validator) scanText(artifactID, text string) []string {
	var warnings []string

	report := func(pattern, match string) {
		warnings = append(warnings,
			fmt.Sprintf("artifact %q: %s leak: %q", artifactID, pattern, match))
	}

	for name, table := range map[string]map[string]string{
		"person name":  v.vocab.People,
		"company name": v.vocab.Companies,
	} {
		for target := range table {
			re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(target) + `\b`)
			if err != nil {
				continue
			}
			if match := re.FindString(text); match != "" {
				report(name, match)
			}
		}
	}

	for _, p := range leakPatterns {
		for _, match := range p.re.FindAllString(text, -1) {
			if allowedMatch(p.name, match) {
				continue
			}
			report(p.name, match)
		}
	}
	return warnings
}

// allowedMatch filters the anonymizer's own placeholders, which
// necessarily match the structural patterns they replace.
func allowedMatch(pattern, match string) bool {
	switch pattern {
	case "email address":
		return match == "contact@example.com"
	case "phone number":
		return strings.Contains(match, "555) 000-0000") || match == "555-000-0000"
	case "home directory path":
		return strings.TrimRight(match, ".") == "/home/user"
	}
	return false
}

// freeText walks an artifact's free-text fields. The walk is exhaustive
// over the closed union and kept independent of the anonymizer's own
// field traversal.
func freeText(a artifact.Artifact) []string {
	var out []string
	switch v := a.(type) {
	case *artifact.Transcript:
		out = append(out, v.Title)
		out = append(out, v.Participants...)
		for _, turn := range v.Turns {
			out = append(out, turn.Speaker, turn.Text)
		}
	case *artifact.EmailThread:
		out = append(out, v.Subject)
		for _, m := range v.Messages {
			out = append(out, m.From)
			out = append(out, m.To...)
			out = append(out, m.Body)
		}
	case *artifact.CRMSnapshot:
		out = append(out, v.Amount)
		for _, val := range v.Properties {
			out = append(out, val)
		}
		for _, c := range v.Contacts {
			out = append(out, c.Name, c.Email)
		}
		out = append(out, v.Notes...)
		for _, e := range v.Activity {
			out = append(out, e.Description)
		}
	case *artifact.Document:
		out = append(out, v.Title, v.Content)
	case *artifact.SlackThread:
		out = append(out, v.Channel)
		for _, m := range v.Messages {
			out = append(out, m.User, m.Text)
		}
	case *artifact.CalendarEvent:
		out = append(out, v.Title, v.Description)
		out = append(out, v.Attendees...)
	}
	return out
}
