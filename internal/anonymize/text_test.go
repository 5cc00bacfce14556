package anonymize

import (
	"strings"
	"testing"
)

func newTestRewriter(t *testing.T) *Rewriter {
	t.Helper()
	v, err := DefaultVocabulary()
	if err != nil {
		t.Fatalf("DefaultVocabulary: %v", err)
	}
	r, err := NewRewriter(v)
	if err != nil {
		t.Fatalf("NewRewriter: %v", err)
	}
	return r
}

func TestRewrite_CompanyAndPerson(t *testing.T) {
	r := newTestRewriter(t)

	got := r.Rewrite("Sarah from Acme Corp asked about pricing.")
	if strings.Contains(got, "Sarah") || strings.Contains(got, "Acme") {
		t.Errorf("identifying names survived: %q", got)
	}
	if !strings.Contains(got, "Avery") || !strings.Contains(got, "Northfield Systems") {
		t.Errorf("expected substitutes in output, got: %q", got)
	}
}

func TestRewrite_CaseInsensitiveWholeWord(t *testing.T) {
	r := newTestRewriter(t)

	if got := r.Rewrite("SARAH and sarah"); strings.Contains(strings.ToLower(got), "sarah") {
		t.Errorf("case-insensitive match failed: %q", got)
	}
	// "Sarahs" is a different word; whole-word matching must leave it alone.
	if got := r.Rewrite("the Sarahsville office"); !strings.Contains(got, "Sarahsville") {
		t.Errorf("whole-word boundary violated: %q", got)
	}
}

func TestRewrite_StructuralPatterns(t *testing.T) {
	r := newTestRewriter(t)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"email", "reach me at jane.doe@bigco.com today", "reach me at " + PlaceholderEmail + " today"},
		{"phone dashes", "call 555-123-4567", "call " + PlaceholderPhone},
		{"phone parens", "call (555) 123-4567 now", "call " + PlaceholderPhone + " now"},
		{"home path", "saved to /home/jdoe/deals/notes.txt", "saved to " + PlaceholderPath},
		{"url", "see https://bigco.com/pricing for details", "see " + PlaceholderURL + " for details"},
		{"handle", "ping @jdoe about it", "ping " + PlaceholderHandle + " about it"},
		{"crm id", "record 123456789 updated", "record " + PlaceholderCRMID + " updated"},
		{"no match", "nothing identifying here", "nothing identifying here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Rewrite(tt.in); got != tt.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRewrite_DollarBanding(t *testing.T) {
	r := newTestRewriter(t)

	tests := []struct {
		in   string
		want string
	}{
		{"$125,000", BandOver100K},
		{"$35,000", Band20To50K},
		{"$15,000", BandUnder20K},
		{"$75,000", Band50To100K},
		{"$35000", Band20To50K},
		{"$45k", Band20To50K},
		{"$1.2M", BandOver100K},
	}
	for _, tt := range tests {
		if got := r.Rewrite(tt.in); got != tt.want {
			t.Errorf("Rewrite(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRewrite_Idempotent(t *testing.T) {
	r := newTestRewriter(t)

	inputs := []string{
		"Sarah from Acme Corp asked about pricing.",
		"Mike (mike@globex.com, 555-123-4567) pushed back on the $125,000 quote.",
		"ping @sarah re https://initech.com/contract and /home/sarah/notes",
		"record 987654321 shows Jennifer approved $35,000",
	}
	for _, in := range inputs {
		once := r.Rewrite(in)
		twice := r.Rewrite(once)
		if once != twice {
			t.Errorf("not idempotent:\n in: %q\nonce: %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestBand(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{9_000, BandUnder20K},
		{19_999, BandUnder20K},
		{20_000, Band20To50K},
		{49_999, Band20To50K},
		{50_000, Band50To100K},
		{99_999, Band50To100K},
		{100_000, BandOver100K},
		{2_500_000, BandOver100K},
	}
	for _, tt := range tests {
		if got := Band(tt.value); got != tt.want {
			t.Errorf("Band(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
