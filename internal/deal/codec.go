package deal

import (
	"encoding/json"
	"fmt"

	"dealbench/internal/artifact"
)

// persisted mirrors Deal on the wire, with artifacts as type-tagged
// envelopes keyed by id.
type persisted struct {
	ID            string                     `json:"id"`
	Name          string                     `json:"name"`
	SchemaVersion string                     `json:"schema_version"`
	Artifacts     map[string]json.RawMessage `json:"artifacts"`
	Checkpoints   []Checkpoint               `json:"checkpoints"`
	Outcome       Outcome                    `json:"outcome,omitempty"`
	Summary       Summary                    `json:"summary"`
}

// MarshalJSON writes the deal with each artifact encoded as a
// type-tagged envelope.
func (d *Deal) MarshalJSON() ([]byte, error) {
	p := persisted{
		ID:            d.ID,
		Name:          d.Name,
		SchemaVersion: d.SchemaVersion,
		Artifacts:     make(map[string]json.RawMessage, len(d.Artifacts)),
		Checkpoints:   d.Checkpoints,
		Outcome:       d.Outcome,
		Summary:       d.Summary,
	}
	for id, a := range d.Artifacts {
		data, err := artifact.Encode(a)
		if err != nil {
			return nil, fmt.Errorf("deal %q: %w", d.ID, err)
		}
		p.Artifacts[id] = data
	}
	return json.Marshal(p)
}

// UnmarshalJSON restores a deal document, decoding each artifact
// envelope into its concrete variant.
func (d *Deal) UnmarshalJSON(data []byte) error {
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("deal: unmarshal: %w", err)
	}
	d.ID = p.ID
	d.Name = p.Name
	d.SchemaVersion = p.SchemaVersion
	d.Checkpoints = p.Checkpoints
	d.Outcome = p.Outcome
	d.Summary = p.Summary
	d.Artifacts = make(map[string]artifact.Artifact, len(p.Artifacts))
	for id, raw := range p.Artifacts {
		a, err := artifact.Decode(raw)
		if err != nil {
			return fmt.Errorf("deal %q: artifact %q: %w", p.ID, id, err)
		}
		d.Artifacts[id] = a
	}
	return nil
}
