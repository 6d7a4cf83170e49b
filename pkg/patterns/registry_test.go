package patterns

import (
	"reflect"
	"testing"
)

func TestGetSingleton(t *testing.T) {
	r1 := Get()
	r2 := Get()
	if r1 != r2 {
		t.Error("Get() should return the same registry instance")
	}
	if r1.TotalPatterns() == 0 {
		t.Error("built-in registry should not be empty")
	}
}

func TestEveryCategoryPopulated(t *testing.T) {
	r := Get()
	for _, cat := range AllCategories {
		if r.CategoryCount(cat) == 0 {
			t.Errorf("category %s has no patterns", cat)
		}
	}
}

func TestMatchAny(t *testing.T) {
	r := Get()

	tests := []struct {
		name     string
		text     string
		cats     []Category
		wantHit  bool
		wantName string
	}{
		{
			name:     "otp request hits banking",
			text:     "please share your OTP to verify",
			cats:     []Category{CategoryBanking},
			wantHit:  true,
			wantName: "otp_request",
		},
		{
			name:    "otp request misses phishing-only search",
			text:    "please share your OTP to verify",
			cats:    []Category{CategoryPhishing},
			wantHit: false,
		},
		{
			name:     "lottery win",
			text:     "Congratulations! You have won the mega lottery",
			cats:     []Category{CategoryFakeOffer},
			wantHit:  true,
			wantName: "lottery_win",
		},
		{
			name:    "benign text",
			text:    "see you at lunch tomorrow",
			cats:    AllCategories,
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := r.MatchAny(tt.text, tt.cats...)
			if tt.wantHit && p == nil {
				t.Fatalf("MatchAny(%q) = nil, want a match", tt.text)
			}
			if !tt.wantHit && p != nil {
				t.Fatalf("MatchAny(%q) = %s, want no match", tt.text, p.Name)
			}
			if tt.wantHit && p.Name != tt.wantName {
				t.Errorf("MatchAny(%q) = %s, want %s", tt.text, p.Name, tt.wantName)
			}
		})
	}
}

func TestMatchAllDeterministic(t *testing.T) {
	r := Get()
	text := "Act now! Your account will be suspended. Share your OTP immediately."

	first := r.MatchAll(text, AllCategories...)
	if len(first) < 2 {
		t.Fatalf("expected multiple matches, got %d", len(first))
	}

	names := func(ps []*Pattern) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name
		}
		return out
	}

	for i := 0; i < 10; i++ {
		again := r.MatchAll(text, AllCategories...)
		if !reflect.DeepEqual(names(first), names(again)) {
			t.Fatalf("MatchAll order changed between runs: %v vs %v", names(first), names(again))
		}
	}
}

func TestNewFromSpec(t *testing.T) {
	spec := &Spec{
		Categories: map[string][]PatternSpec{
			"banking": {
				{Name: "test_pat", Pattern: `(?i)magic\s+word`, Weight: 0.5},
			},
		},
		Phrases: []PhraseSpec{
			{Text: "open sesame", Weight: 0.4},
		},
	}

	r, err := NewFromSpec(spec)
	if err != nil {
		t.Fatalf("NewFromSpec() error = %v", err)
	}
	if r.TotalPatterns() != 1 {
		t.Errorf("TotalPatterns() = %d, want 1", r.TotalPatterns())
	}
	if p := r.MatchAny("say the Magic Word", CategoryBanking); p == nil || p.Name != "test_pat" {
		t.Errorf("fixture pattern did not match")
	}
	if len(r.Phrases()) != 1 {
		t.Errorf("Phrases() = %d, want 1", len(r.Phrases()))
	}
}

func TestNewFromSpecBadRegex(t *testing.T) {
	spec := &Spec{
		Categories: map[string][]PatternSpec{
			"banking": {
				{Name: "broken", Pattern: `([`, Weight: 0.5},
			},
		},
	}
	if _, err := NewFromSpec(spec); err == nil {
		t.Error("NewFromSpec() with invalid regex should fail")
	}
}
