package anonymize

import (
	"dealbench/internal/artifact"
)

// Artifact returns a deep, anonymized copy of the artifact; the input is
// never mutated, so concurrent callers may anonymize distinct artifacts
// from the same deal in parallel.
//
// Every free-text field is rewritten, every date field (including
// per-turn, per-message, and per-activity-entry dates) is shifted by
// offsetDays, and the Anonymized flag is set. Categorical fields
// (artifact type, activity categories, contact roles, document types,
// deal stages) pass through untouched. The type switch is exhaustive
// over the closed union.
func (r *Rewriter) Artifact(a artifact.Artifact, offsetDays int) artifact.Artifact {
	c := artifact.Clone(a)
	meta := c.Header()
	meta.Anonymized = true
	meta.CreatedAt = ShiftDates(meta.CreatedAt, offsetDays)

	switch v := c.(type) {
	case *artifact.Transcript:
		v.Title = r.Rewrite(v.Title)
		v.Date = ShiftDates(v.Date, offsetDays)
		for i := range v.Participants {
			v.Participants[i] = r.Rewrite(v.Participants[i])
		}
		for i := range v.Turns {
			v.Turns[i].Speaker = r.Rewrite(v.Turns[i].Speaker)
			v.Turns[i].Text = ShiftDates(r.Rewrite(v.Turns[i].Text), offsetDays)
			v.Turns[i].Timestamp = ShiftDates(v.Turns[i].Timestamp, offsetDays)
		}
	case *artifact.EmailThread:
		v.Subject = r.Rewrite(v.Subject)
		for i := range v.Messages {
			m := &v.Messages[i]
			m.From = r.Rewrite(m.From)
			for j := range m.To {
				m.To[j] = r.Rewrite(m.To[j])
			}
			m.Body = ShiftDates(r.Rewrite(m.Body), offsetDays)
			m.Date = ShiftDates(m.Date, offsetDays)
		}
	case *artifact.CRMSnapshot:
		v.Amount = r.Rewrite(v.Amount)
		for k, val := range v.Properties {
			v.Properties[k] = r.Rewrite(val)
		}
		for i := range v.Contacts {
			v.Contacts[i].Name = r.Rewrite(v.Contacts[i].Name)
			v.Contacts[i].Email = r.Rewrite(v.Contacts[i].Email)
		}
		for i := range v.Notes {
			v.Notes[i] = ShiftDates(r.Rewrite(v.Notes[i]), offsetDays)
		}
		for i := range v.Activity {
			v.Activity[i].Date = ShiftDates(v.Activity[i].Date, offsetDays)
			v.Activity[i].Description = ShiftDates(r.Rewrite(v.Activity[i].Description), offsetDays)
		}
	case *artifact.Document:
		v.Title = r.Rewrite(v.Title)
		v.Content = ShiftDates(r.Rewrite(v.Content), offsetDays)
	case *artifact.SlackThread:
		v.Channel = r.Rewrite(v.Channel)
		for i := range v.Messages {
			v.Messages[i].User = r.Rewrite(v.Messages[i].User)
			v.Messages[i].Text = ShiftDates(r.Rewrite(v.Messages[i].Text), offsetDays)
			v.Messages[i].Timestamp = ShiftDates(v.Messages[i].Timestamp, offsetDays)
		}
	case *artifact.CalendarEvent:
		v.Title = r.Rewrite(v.Title)
		v.Date = ShiftDates(v.Date, offsetDays)
		v.Description = ShiftDates(r.Rewrite(v.Description), offsetDays)
		for i := range v.Attendees {
			v.Attendees[i] = r.Rewrite(v.Attendees[i])
		}
	}
	return c
}
