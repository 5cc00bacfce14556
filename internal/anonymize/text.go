// Package anonymize rewrites free text and artifact records to strip
// identifying information while preserving semantic content and temporal
// structure. It works off curated replacement tables plus a fixed set of
// structural patterns; it is not a general-purpose PII detector.
package anonymize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Fixed placeholders written in place of structural matches.
const (
	PlaceholderEmail  = "contact@example.com"
	PlaceholderPhone  = "(555) 000-0000"
	PlaceholderPath   = "/home/user"
	PlaceholderURL    = "https://example.com"
	PlaceholderHandle = "@user"
	PlaceholderCRMID  = "000000000"
)

// Monetary band labels, smallest first.
const (
	BandUnder20K = "<$10-20K"
	Band20To50K  = "$20-50K"
	Band50To100K = "$50-100K"
	BandOver100K = "$100K+"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+?1[\s.-])?\(?\b\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}\b`)
	pathRe  = regexp.MustCompile(`(?:/home|/Users)/[A-Za-z0-9._-]+(?:/[A-Za-z0-9._/-]*)?`)
	urlRe   = regexp.MustCompile(`https?://[^\s<>"')]+`)
	// \B keeps handle matches out of email placeholders already written.
	handleRe = regexp.MustCompile(`\B@\w{2,}`)
	crmIDRe  = regexp.MustCompile(`\b\d{6,12}\b`)
	// Comma-grouped, 4+ digit, or k/m-suffixed figures only, so small
	// figures inside band labels never rematch. The optional trailing +
	// lets already-banded text pass through unchanged.
	dollarRe = regexp.MustCompile(`\$\d{1,3}(?:,\d{3})+(?:\.\d+)?\+?|\$\d{4,}(?:\.\d+)?\+?|\$\d+(?:\.\d+)?\s?[kKmM]\+?`)
)

type rule struct {
	re          *regexp.Regexp
	replacement string
}

// Rewriter applies the full scrub pipeline in a fixed order: known
// companies, known person names, emails, phones, home paths, monetary
// banding, URLs, chat handles, CRM record ids. Rewrite is pure and
// idempotent over vocabulary inputs.
type Rewriter struct {
	companyRules []rule
	personRules  []rule
}

// NewRewriter compiles whole-word, case-insensitive rules from the
// vocabulary. Rule order is deterministic (longest target first).
func NewRewriter(v *Vocabulary) (*Rewriter, error) {
	compile := func(targets []string, table map[string]string) ([]rule, error) {
		rules := make([]rule, 0, len(targets))
		for _, target := range targets {
			re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(target) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("anonymize: compile rule %q: %w", target, err)
			}
			rules = append(rules, rule{re: re, replacement: table[target]})
		}
		return rules, nil
	}

	companies, err := compile(v.CompanyTargets(), v.Companies)
	if err != nil {
		return nil, err
	}
	people, err := compile(v.PeopleTargets(), v.People)
	if err != nil {
		return nil, err
	}
	return &Rewriter{companyRules: companies, personRules: people}, nil
}

// Rewrite scrubs identifying information from text. Absence of a match
// is a no-op; Rewrite never fails.
func (r *Rewriter) Rewrite(text string) string {
	for _, ru := range r.companyRules {
		text = ru.re.ReplaceAllString(text, ru.replacement)
	}
	for _, ru := range r.personRules {
		text = ru.re.ReplaceAllString(text, ru.replacement)
	}
	text = emailRe.ReplaceAllString(text, PlaceholderEmail)
	text = phoneRe.ReplaceAllString(text, PlaceholderPhone)
	text = pathRe.ReplaceAllString(text, PlaceholderPath)
	text = dollarRe.ReplaceAllStringFunc(text, bandDollar)
	text = urlRe.ReplaceAllString(text, PlaceholderURL)
	text = handleRe.ReplaceAllString(text, PlaceholderHandle)
	text = crmIDRe.ReplaceAllString(text, PlaceholderCRMID)
	return text
}

// bandDollar replaces an exact dollar figure with its categorical band.
// Banding preserves deal-size signal without leaking the figure.
func bandDollar(match string) string {
	if strings.HasSuffix(match, "+") {
		return match // already banded
	}
	raw := strings.TrimPrefix(match, "$")
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimSpace(raw)

	multiplier := 1.0
	switch {
	case strings.HasSuffix(raw, "k"), strings.HasSuffix(raw, "K"):
		multiplier = 1_000
		raw = strings.TrimSpace(raw[:len(raw)-1])
	case strings.HasSuffix(raw, "m"), strings.HasSuffix(raw, "M"):
		multiplier = 1_000_000
		raw = strings.TrimSpace(raw[:len(raw)-1])
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return match
	}
	return Band(value * multiplier)
}

// Band maps a numeric dollar value to its categorical band label.
func Band(value float64) string {
	switch {
	case value < 20_000:
		return BandUnder20K
	case value < 50_000:
		return Band20To50K
	case value < 100_000:
		return Band50To100K
	default:
		return BandOver100K
	}
}
