package artifact

// Clone returns a deep, independent copy of the artifact. Nested slices
// and maps are duplicated, so mutating the copy never touches the
// original. Concurrent callers may clone distinct or identical artifacts
// safely.
func Clone(a Artifact) Artifact {
	switch v := a.(type) {
	case *Transcript:
		c := *v
		c.Participants = cloneStrings(v.Participants)
		c.Turns = append([]Turn(nil), v.Turns...)
		return &c
	case *EmailThread:
		c := *v
		c.Messages = make([]EmailMessage, len(v.Messages))
		for i, m := range v.Messages {
			m.To = cloneStrings(m.To)
			c.Messages[i] = m
		}
		return &c
	case *CRMSnapshot:
		c := *v
		if v.Properties != nil {
			c.Properties = make(map[string]string, len(v.Properties))
			for k, val := range v.Properties {
				c.Properties[k] = val
			}
		}
		c.Contacts = append([]Contact(nil), v.Contacts...)
		c.Notes = cloneStrings(v.Notes)
		c.Activity = append([]ActivityEntry(nil), v.Activity...)
		return &c
	case *Document:
		c := *v
		return &c
	case *SlackThread:
		c := *v
		c.Messages = append([]SlackMessage(nil), v.Messages...)
		return &c
	case *CalendarEvent:
		c := *v
		c.Attendees = cloneStrings(v.Attendees)
		return &c
	}
	return nil
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
