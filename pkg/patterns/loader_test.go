package patterns

import (
	"os"
	"path/filepath"
	"testing"
)

const fixtureYAML = `
categories:
  banking:
    - name: pin_ask
      pattern: '(?i)tell\s+me\s+your\s+pin'
      weight: 0.9
      description: PIN request
  urgency:
    - name: deadline
      pattern: '(?i)within\s+\d+\s+minutes'
      weight: 0.6
phrases:
  - text: "kindly do the needful"
    weight: 0.4
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	if err := os.WriteFile(path, []byte(fixtureYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if reg.TotalPatterns() != 2 {
		t.Errorf("TotalPatterns() = %d, want 2", reg.TotalPatterns())
	}
	if reg.CategoryCount(CategoryBanking) != 1 {
		t.Errorf("banking count = %d, want 1", reg.CategoryCount(CategoryBanking))
	}
	if p := reg.MatchAny("please tell me your PIN", CategoryBanking); p == nil {
		t.Error("loaded pattern should match")
	}
	if len(reg.Phrases()) != 1 {
		t.Errorf("Phrases() = %d, want 1", len(reg.Phrases()))
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile() on missing file should fail")
	}
}

func TestLoadFileBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("categories: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() on malformed YAML should fail")
	}
}
