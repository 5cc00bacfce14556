// Package artifact defines the closed union of evidence record types that
// describe a business relationship over time: call transcripts, email
// threads, CRM snapshots, documents, chat threads, and calendar events.
//
// The union is deliberately sealed: every dispatch site (anonymizer,
// linker, validator) type-switches over the six concrete variants, so
// adding a seventh variant is a compile-visible change at each site.
package artifact

// Type tags the six artifact variants.
type Type string

const (
	TypeTranscript    Type = "transcript"
	TypeEmail         Type = "email"
	TypeCRMSnapshot   Type = "crm_snapshot"
	TypeDocument      Type = "document"
	TypeSlackThread   Type = "slack_thread"
	TypeCalendarEvent Type = "calendar_event"
)

// AllTypes lists every variant tag, in declaration order.
func AllTypes() []Type {
	return []Type{
		TypeTranscript,
		TypeEmail,
		TypeCRMSnapshot,
		TypeDocument,
		TypeSlackThread,
		TypeCalendarEvent,
	}
}

// Meta is the header shared by all artifact variants. ID is immutable and
// used as the dictionary key everywhere an artifact is stored.
type Meta struct {
	ID         string `json:"id"`
	DealID     string `json:"deal_id"`
	CreatedAt  string `json:"created_at"`
	Anonymized bool   `json:"anonymized"`
}

// Artifact is the sealed interface over the six variants.
type Artifact interface {
	Type() Type
	Header() *Meta
	sealed()
}

// Turn is one speaker turn inside a transcript.
type Turn struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Transcript is a call transcript with ordered speaker turns.
type Transcript struct {
	Meta
	Title           string   `json:"title"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	Participants    []string `json:"participants,omitempty"`
	Turns           []Turn   `json:"turns"`
}

// EmailMessage is one message inside an email thread.
type EmailMessage struct {
	From string   `json:"from"`
	To   []string `json:"to,omitempty"`
	Body string   `json:"body"`
	Date string   `json:"date"`
}

// EmailThread is an ordered email exchange.
type EmailThread struct {
	Meta
	Subject  string         `json:"subject"`
	Messages []EmailMessage `json:"messages"`
}

// Contact is a person attached to a CRM snapshot.
type Contact struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
}

// ActivityEntry is one row of a CRM activity log. Category is a
// categorical code ("call", "meeting", "note", "email", "stage_change")
// and is never rewritten by the anonymizer.
type ActivityEntry struct {
	Date        string `json:"date"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// CRMSnapshot captures deal-stage properties, contacts, free-text notes,
// and the chronologically meaningful activity log.
type CRMSnapshot struct {
	Meta
	Stage      string            `json:"stage,omitempty"`
	Amount     string            `json:"amount,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Contacts   []Contact         `json:"contacts,omitempty"`
	Notes      []string          `json:"notes,omitempty"`
	Activity   []ActivityEntry   `json:"activity"`
}

// Document is an already-extracted plain-text document. DocType is a
// categorical code ("proposal", "contract", "deck") left untouched by
// the anonymizer.
type Document struct {
	Meta
	Title   string `json:"title"`
	DocType string `json:"doc_type,omitempty"`
	Content string `json:"content"`
}

// SlackMessage is one message inside a chat thread.
type SlackMessage struct {
	User      string `json:"user"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// SlackThread is an ordered chat exchange.
type SlackThread struct {
	Meta
	Channel  string         `json:"channel,omitempty"`
	Messages []SlackMessage `json:"messages"`
}

// CalendarEvent is a scheduled meeting with attendees.
type CalendarEvent struct {
	Meta
	Title           string   `json:"title"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	Attendees       []string `json:"attendees,omitempty"`
	Description     string   `json:"description,omitempty"`
}

func (t *Transcript) Type() Type     { return TypeTranscript }
func (e *EmailThread) Type() Type    { return TypeEmail }
func (c *CRMSnapshot) Type() Type    { return TypeCRMSnapshot }
func (d *Document) Type() Type       { return TypeDocument }
func (s *SlackThread) Type() Type    { return TypeSlackThread }
func (ce *CalendarEvent) Type() Type { return TypeCalendarEvent }

func (t *Transcript) Header() *Meta     { return &t.Meta }
func (e *EmailThread) Header() *Meta    { return &e.Meta }
func (c *CRMSnapshot) Header() *Meta    { return &c.Meta }
func (d *Document) Header() *Meta       { return &d.Meta }
func (s *SlackThread) Header() *Meta    { return &s.Meta }
func (ce *CalendarEvent) Header() *Meta { return &ce.Meta }

func (t *Transcript) sealed()     {}
func (e *EmailThread) sealed()    {}
func (c *CRMSnapshot) sealed()    {}
func (d *Document) sealed()       {}
func (s *SlackThread) sealed()    {}
func (ce *CalendarEvent) sealed() {}

// Title returns a human-readable label for the artifact, used in
// lightweight references.
func Title(a Artifact) string {
	switch v := a.(type) {
	case *Transcript:
		return v.Title
	case *EmailThread:
		return v.Subject
	case *CRMSnapshot:
		if v.Stage != "" {
			return "CRM snapshot (" + v.Stage + ")"
		}
		return "CRM snapshot"
	case *Document:
		return v.Title
	case *SlackThread:
		if v.Channel != "" {
			return "#" + v.Channel
		}
		return "Chat thread"
	case *CalendarEvent:
		return v.Title
	}
	return ""
}
