package anonymize

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed vocab/*.yaml
var vocabFS embed.FS

// Vocabulary holds the curated replacement tables: identifying names
// observed in raw source data mapped to their fixed substitutes.
type Vocabulary struct {
	Companies map[string]string `yaml:"companies"`
	People    map[string]string `yaml:"people"`
}

// LoadVocabulary parses replacement-table YAML bytes.
func LoadVocabulary(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("anonymize: parse vocabulary: %w", err)
	}
	return &v, nil
}

// DefaultVocabulary loads the embedded replacement tables.
func DefaultVocabulary() (*Vocabulary, error) {
	data, err := vocabFS.ReadFile("vocab/replacements.yaml")
	if err != nil {
		return nil, fmt.Errorf("anonymize: read embedded vocabulary: %w", err)
	}
	return LoadVocabulary(data)
}

// Targets returns the identifying names of one table, longest first so
// multi-word entries win over their single-word prefixes, then
// alphabetical for determinism.
func sortedTargets(table map[string]string) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// CompanyTargets returns company names in deterministic rule order.
func (v *Vocabulary) CompanyTargets() []string { return sortedTargets(v.Companies) }

// PeopleTargets returns person names in deterministic rule order.
func (v *Vocabulary) PeopleTargets() []string { return sortedTargets(v.People) }
