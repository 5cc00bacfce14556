package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"dealbench/internal/artifact"
	"dealbench/internal/logging"
)

// Manifest is the raw deal.json sidecar describing one source directory.
type Manifest struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Stage        string  `json:"stage,omitempty"`
	Amount       float64 `json:"amount,omitempty"`
	FirstContact string  `json:"first_contact,omitempty"`
}

// Source is one loaded deal directory: its manifest plus every artifact
// that decoded cleanly.
type Source struct {
	Manifest  Manifest
	Artifacts []artifact.Artifact
	Skipped   int
}

// LoadDeal reads deal.json and artifacts.json from dir. Records that
// fail to decode are skipped with a warning rather than failing the
// deal; artifacts missing an id or deal id get one assigned.
func LoadDeal(dir string) (*Source, error) {
	logger := logging.New("ingest")

	data, err := os.ReadFile(filepath.Join(dir, "deal.json"))
	if err != nil {
		return nil, fmt.Errorf("pipeline: read manifest in %q: %w", dir, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("pipeline: parse manifest in %q: %w", dir, err)
	}
	if m.ID == "" {
		m.ID = filepath.Base(dir)
	}
	if m.Name == "" {
		m.Name = m.ID
	}

	data, err = os.ReadFile(filepath.Join(dir, "artifacts.json"))
	if err != nil {
		return nil, fmt.Errorf("pipeline: read artifacts in %q: %w", dir, err)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("pipeline: parse artifacts in %q: %w", dir, err)
	}

	src := &Source{Manifest: m}
	for i, rec := range raw {
		a, err := artifact.Decode(rec)
		if err != nil {
			logger.Warn("skipping undecodable artifact",
				"deal", m.ID, "index", i, "error", err)
			src.Skipped++
			continue
		}
		h := a.Header()
		if h.ID == "" {
			h.ID = uuid.NewString()
		}
		if h.DealID == "" {
			h.DealID = m.ID
		}
		src.Artifacts = append(src.Artifacts, a)
	}
	return src, nil
}
