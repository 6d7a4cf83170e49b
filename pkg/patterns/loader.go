package patterns

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is the serializable form of a pattern set. Operators ship these as
// YAML files to extend or replace the built-in catalogue without a rebuild;
// tests build them inline for fixture registries.
type Spec struct {
	Categories map[string][]PatternSpec `yaml:"categories"`
	Phrases    []PhraseSpec             `yaml:"phrases"`
}

// PatternSpec describes one regex pattern in a Spec.
type PatternSpec struct {
	Name        string  `yaml:"name"`
	Pattern     string  `yaml:"pattern"`
	Weight      float64 `yaml:"weight"`
	Description string  `yaml:"description"`
}

// PhraseSpec describes one literal phrase in a Spec.
type PhraseSpec struct {
	Text   string  `yaml:"text"`
	Weight float64 `yaml:"weight"`
}

// LoadFile reads a YAML pattern spec and compiles it into a registry.
// Any malformed YAML or regex is a startup configuration error; callers
// should treat it as fatal rather than falling back silently.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern file: %w", err)
	}

	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse pattern file %s: %w", path, err)
	}

	reg, err := NewFromSpec(&spec)
	if err != nil {
		return nil, fmt.Errorf("compile pattern file %s: %w", path, err)
	}
	return reg, nil
}
