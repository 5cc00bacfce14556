package artifact

import (
	"encoding/json"
	"fmt"
)

// envelope is the persisted wire form: the variant's own fields plus a
// "type" discriminator.
type envelope struct {
	Type Type `json:"type"`
}

// Encode serializes an artifact as a JSON envelope with a "type" tag.
func Encode(a Artifact) ([]byte, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("artifact: encode %q: %w", a.Header().ID, err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("artifact: encode %q: %w", a.Header().ID, err)
	}
	tag, _ := json.Marshal(a.Type())
	m["type"] = tag
	return json.Marshal(m)
}

// Decode parses a JSON envelope into the concrete variant named by its
// "type" tag. An unknown or missing tag is an error.
func Decode(data []byte) (Artifact, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("artifact: decode envelope: %w", err)
	}

	var a Artifact
	switch env.Type {
	case TypeTranscript:
		a = &Transcript{}
	case TypeEmail:
		a = &EmailThread{}
	case TypeCRMSnapshot:
		a = &CRMSnapshot{}
	case TypeDocument:
		a = &Document{}
	case TypeSlackThread:
		a = &SlackThread{}
	case TypeCalendarEvent:
		a = &CalendarEvent{}
	default:
		return nil, fmt.Errorf("artifact: decode: unknown type %q", env.Type)
	}

	if err := json.Unmarshal(data, a); err != nil {
		return nil, fmt.Errorf("artifact: decode %s: %w", env.Type, err)
	}
	return a, nil
}
