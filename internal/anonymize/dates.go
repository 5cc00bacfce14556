package anonymize

import (
	"regexp"
	"time"
)

// isoRe matches ISO-8601 date and date-time substrings inside arbitrary
// text, not just whole-field dates.
var isoRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?)?`)

// dateLayouts are tried in order; the matching layout is reused on
// output so the shifted substring keeps (or keeps lacking) its time
// component.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ShiftDates rewrites every ISO-8601 date or date-time substring in text
// by offsetDays whole days (UTC). Date-shaped substrings that fail to
// parse (e.g. 2026-02-30) are left untouched. A zero offset is the
// identity.
func ShiftDates(text string, offsetDays int) string {
	if offsetDays == 0 {
		return text
	}
	return isoRe.ReplaceAllStringFunc(text, func(match string) string {
		for _, layout := range dateLayouts {
			t, err := time.Parse(layout, match)
			if err != nil {
				continue
			}
			return t.AddDate(0, 0, offsetDays).Format(layout)
		}
		return match
	})
}
