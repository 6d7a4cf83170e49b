// Package patterns provides the centralized pattern registry for scam
// detection. All regex patterns are compiled once at load and shared across
// every scoring layer and the conversation state machine.
//
// Design principles:
// - COMPILE ONCE: All patterns compiled at load, not per-message
// - DRY: Single source of truth for all fraud patterns
// - CATEGORIZED: Patterns organized by scam category for targeted scans
// - IMMUTABLE: A registry never changes after construction, so tests can
//   substitute fixture pattern sets without touching scoring logic
package patterns

import (
	"fmt"
	"regexp"
	"sync"
)

// Category represents a scam pattern category.
type Category string

const (
	CategoryBanking       Category = "banking"
	CategoryPhishing      Category = "phishing"
	CategoryFakeOffer     Category = "fake_offer"
	CategoryUrgency       Category = "urgency"
	CategoryContactReq    Category = "contact_request"
	CategoryEmotional     Category = "emotional_manipulation"
	CategoryAuthority     Category = "authority_validation"
	CategoryMultilingual  Category = "multilingual"
	CategoryBrandImpers   Category = "brand_impersonation"
	CategorySensitiveData Category = "sensitive_data"
)

// AllCategories lists every category in deterministic order. Scoring
// iterates this slice, never a map, so identical input always produces
// identical match ordering.
var AllCategories = []Category{
	CategoryBanking,
	CategoryPhishing,
	CategoryFakeOffer,
	CategoryUrgency,
	CategoryContactReq,
	CategoryEmotional,
	CategoryAuthority,
	CategoryMultilingual,
	CategoryBrandImpers,
	CategorySensitiveData,
}

// Pattern holds a compiled regex with metadata.
type Pattern struct {
	Name        string         // Human-readable name for logging
	Regex       *regexp.Regexp // Compiled regex (never nil after load)
	Category    Category       // Scam category
	Weight      float64        // Sub-score contribution (0.0-1.0)
	Description string         // What this pattern detects
}

// Phrase is a literal scam phrase. Phrase hits weigh more than regex hits
// because an exact known-scam wording is stronger evidence than a loose
// structural match.
type Phrase struct {
	Text   string  // Matched case-insensitively as a substring
	Weight float64 // Sub-score contribution (0.0-1.0)
}

// Registry holds all compiled patterns, organized by category.
// Immutable after construction.
type Registry struct {
	byCategory map[Category][]*Pattern
	all        []*Pattern
	phrases    []Phrase
}

// global singleton - initialized once at first use
var (
	globalRegistry *Registry
	initOnce       sync.Once
)

// Get returns the global pattern registry (singleton).
// Thread-safe and guaranteed to be initialized.
func Get() *Registry {
	initOnce.Do(func() {
		globalRegistry = newRegistry()
	})
	return globalRegistry
}

// newRegistry creates and populates the default registry.
func newRegistry() *Registry {
	r := &Registry{
		byCategory: make(map[Category][]*Pattern),
		all:        make([]*Pattern, 0, 128),
	}

	r.registerBankingPatterns()
	r.registerPhishingPatterns()
	r.registerFakeOfferPatterns()
	r.registerUrgencyPatterns()
	r.registerContactRequestPatterns()
	r.registerEmotionalPatterns()
	r.registerAuthorityPatterns()
	r.registerMultilingualPatterns()
	r.registerBrandImpersonationPatterns()
	r.registerSensitiveDataPatterns()
	r.phrases = defaultPhrases()

	return r
}

// register adds a pattern to the registry (construction only).
func (r *Registry) register(name, pattern string, category Category, weight float64, description string) {
	compiled := regexp.MustCompile(pattern)
	p := &Pattern{
		Name:        name,
		Regex:       compiled,
		Category:    category,
		Weight:      weight,
		Description: description,
	}

	r.byCategory[category] = append(r.byCategory[category], p)
	r.all = append(r.all, p)
}

// NewFromSpec builds a registry from an explicit spec. Tests use this to
// substitute small fixture pattern sets; operators use it through the YAML
// loader. A malformed regex is a configuration error and fails construction.
func NewFromSpec(spec *Spec) (*Registry, error) {
	r := &Registry{
		byCategory: make(map[Category][]*Pattern),
	}
	for _, cat := range AllCategories {
		for _, ps := range spec.Categories[string(cat)] {
			compiled, err := regexp.Compile(ps.Pattern)
			if err != nil {
				return nil, fmt.Errorf("pattern %q in category %s: %w", ps.Name, cat, err)
			}
			p := &Pattern{
				Name:        ps.Name,
				Regex:       compiled,
				Category:    cat,
				Weight:      ps.Weight,
				Description: ps.Description,
			}
			r.byCategory[cat] = append(r.byCategory[cat], p)
			r.all = append(r.all, p)
		}
	}
	for _, ph := range spec.Phrases {
		r.phrases = append(r.phrases, Phrase{Text: ph.Text, Weight: ph.Weight})
	}
	return r, nil
}

// GetByCategory returns all patterns for a specific category.
// Returns empty slice if category not found (never nil).
func (r *Registry) GetByCategory(cat Category) []*Pattern {
	if patterns, ok := r.byCategory[cat]; ok {
		return patterns
	}
	return []*Pattern{}
}

// MatchAny checks if text matches any pattern in the given categories.
// Returns the first matching pattern or nil, iterating categories in the
// order given and patterns in registration order.
func (r *Registry) MatchAny(text string, cats ...Category) *Pattern {
	for _, cat := range cats {
		for _, p := range r.byCategory[cat] {
			if p.Regex.MatchString(text) {
				return p
			}
		}
	}
	return nil
}

// MatchAll returns all patterns that match the text in the given categories,
// in deterministic registration order.
func (r *Registry) MatchAll(text string, cats ...Category) []*Pattern {
	var matches []*Pattern
	for _, cat := range cats {
		for _, p := range r.byCategory[cat] {
			if p.Regex.MatchString(text) {
				matches = append(matches, p)
			}
		}
	}
	return matches
}

// Phrases returns the flat scam phrase list.
func (r *Registry) Phrases() []Phrase {
	return r.phrases
}

// TotalPatterns returns the total count of registered regex patterns.
func (r *Registry) TotalPatterns() int {
	return len(r.all)
}

// CategoryCount returns the number of patterns in a category.
func (r *Registry) CategoryCount(cat Category) int {
	return len(r.byCategory[cat])
}
