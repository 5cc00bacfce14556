// Package export writes finished deals to durable storage: one JSON
// document per deal, partitioned into public and private directories by
// a fixed deal-id allow-list, plus a single summary document per run.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dealbench/internal/artifact"
	"dealbench/internal/deal"
)

// Writer persists deal documents under Root. Deals on the allow-list
// land in public/, everything else in private/.
type Writer struct {
	Root      string
	publicIDs map[string]bool
}

// NewWriter creates the output directory layout rooted at dir.
func NewWriter(dir string, publicIDs []string) (*Writer, error) {
	for _, sub := range []string{"public", "private"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("export: create %s dir: %w", sub, err)
		}
	}
	ids := make(map[string]bool, len(publicIDs))
	for _, id := range publicIDs {
		ids[id] = true
	}
	return &Writer{Root: dir, publicIDs: ids}, nil
}

// allowList is the YAML shape of the public deal-id configuration.
type allowList struct {
	Public []string `yaml:"public"`
}

// LoadAllowList reads the public deal-id allow-list from a YAML file. A
// missing path yields an empty list: with no allow-list every deal is
// private.
func LoadAllowList(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("export: read allow-list %q: %w", path, err)
	}
	var al allowList
	if err := yaml.Unmarshal(data, &al); err != nil {
		return nil, fmt.Errorf("export: parse allow-list %q: %w", path, err)
	}
	return al.Public, nil
}

// IsPublic reports whether a deal id is on the allow-list.
func (w *Writer) IsPublic(dealID string) bool { return w.publicIDs[dealID] }

// WriteDeal persists one validated deal. Deals whose validation carries
// errors are refused; warnings do not block.
func (w *Writer) WriteDeal(d *deal.Deal, res deal.ValidationResult) (string, error) {
	if !res.Valid() {
		return "", fmt.Errorf("export: deal %q failed validation with %d errors", d.ID, len(res.Errors))
	}

	sub := "private"
	if w.IsPublic(d.ID) {
		sub = "public"
	}
	path := filepath.Join(w.Root, sub, d.ID+".json")

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export: marshal deal %q: %w", d.ID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("export: write deal %q: %w", d.ID, err)
	}
	return path, nil
}

// DealReport is one deal's row in the run summary.
type DealReport struct {
	DealID      string `json:"deal_id"`
	Name        string `json:"name,omitempty"`
	Artifacts   int    `json:"artifacts"`
	Checkpoints int    `json:"checkpoints"`
	Tasks       int    `json:"tasks"`
	Warnings    int    `json:"warnings"`
	Public      bool   `json:"public"`
	Error       string `json:"error,omitempty"`
}

// RunSummary aggregates per-deal counts and the artifact-type
// distribution across one pipeline run.
type RunSummary struct {
	RunID       string                `json:"run_id"`
	GeneratedAt string                `json:"generated_at"`
	Deals       []DealReport          `json:"deals"`
	TypeCounts  map[artifact.Type]int `json:"type_counts,omitempty"`
}

// WriteSummary persists the run summary at the output root.
func (w *Writer) WriteSummary(s *RunSummary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal summary: %w", err)
	}
	path := filepath.Join(w.Root, "summary.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: write summary: %w", err)
	}
	return nil
}

// ReadDeal loads a previously exported deal document.
func ReadDeal(path string) (*deal.Deal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("export: read deal %q: %w", path, err)
	}
	var d deal.Deal
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("export: parse deal %q: %w", path, err)
	}
	return &d, nil
}
