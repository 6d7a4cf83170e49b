package detect

import (
	"reflect"
	"testing"

	"github.com/DecoyDeskAI/warden/pkg/config"
)

func newTestScorer() *Scorer {
	return NewScorer(config.DefaultScoringConfig(), nil)
}

func hasMatch(result DetectionResult, name string) bool {
	for _, m := range result.MatchedPatterns {
		if m == name {
			return true
		}
	}
	return false
}

func TestScoreEmptyMessage(t *testing.T) {
	s := newTestScorer()
	for _, msg := range []string{"", "   ", "\n\t"} {
		got := s.Score(msg, nil)
		if got.Confidence != 0 || got.IsScam || got.RiskTier != TierSafe {
			t.Errorf("Score(%q) = %+v, want zero-risk result", msg, got)
		}
	}
}

func TestScoreBenignMessage(t *testing.T) {
	s := newTestScorer()
	got := s.Score("see you at lunch then, thanks for the help", nil)

	if got.IsScam {
		t.Errorf("benign message flagged as scam: %+v", got)
	}
	if got.RiskTier != TierSafe {
		t.Errorf("RiskTier = %s, want SAFE", got.RiskTier)
	}
	if len(got.MatchedPatterns) != 0 {
		t.Errorf("MatchedPatterns = %v, want none", got.MatchedPatterns)
	}
}

func TestScoreOTPDemand(t *testing.T) {
	s := newTestScorer()
	got := s.Score("Share your OTP now or your account will be blocked", nil)

	if !got.IsScam {
		t.Fatalf("OTP demand not flagged as scam: %+v", got)
	}
	if got.RiskTier != TierCritical {
		t.Errorf("RiskTier = %s, want CRITICAL", got.RiskTier)
	}
	if got.Confidence < 0.8 {
		t.Errorf("Confidence = %v, want >= 0.8", got.Confidence)
	}
	if !hasMatch(got, "otp_request") {
		t.Errorf("MatchedPatterns = %v, want otp_request", got.MatchedPatterns)
	}
	if got.LayerScores.Pattern < 0.3 || got.LayerScores.Urgency < 0.3 {
		t.Errorf("expected alerting pattern and urgency layers, got %+v", got.LayerScores)
	}
}

func TestScoreSingleLayerFloor(t *testing.T) {
	// Only the context layer alerts here (early sensitive-data mention);
	// the weighted sum alone would land well under the floor.
	s := newTestScorer()
	got := s.Score("aadhaar is required for registration", nil)

	if got.Confidence != 0.35 {
		t.Errorf("Confidence = %v, want floored 0.35", got.Confidence)
	}
	if !got.IsScam {
		t.Error("floored confidence should still cross the scam threshold")
	}
	if got.RiskTier != TierLow {
		t.Errorf("RiskTier = %s, want LOW", got.RiskTier)
	}
	if !hasMatch(got, "context:early_sensitive_request") {
		t.Errorf("MatchedPatterns = %v, want context:early_sensitive_request", got.MatchedPatterns)
	}
}

func TestScoreRepetitionBehavior(t *testing.T) {
	s := newTestScorer()
	history := []Turn{
		{Role: RoleUser, Content: "send me the gift card codes"},
		{Role: RoleAgent, Content: "which codes do you mean"},
	}

	got := s.Score("send me the gift card codes", history)
	if !hasMatch(got, "behavior:repetition") {
		t.Errorf("MatchedPatterns = %v, want behavior:repetition", got.MatchedPatterns)
	}
	if got.LayerScores.Behavior < 0.3 {
		t.Errorf("Behavior layer = %v, want >= 0.3", got.LayerScores.Behavior)
	}
}

func TestScoreIntelligenceLayer(t *testing.T) {
	s := newTestScorer()
	got := s.Score("transfer the fee to winner2024@ybl or call +91 98765 43210", nil)

	if got.LayerScores.Intelligence < 0.3 {
		t.Errorf("Intelligence layer = %v, want >= 0.3", got.LayerScores.Intelligence)
	}
	if !hasMatch(got, "intel:multi_type") {
		t.Errorf("MatchedPatterns = %v, want intel:multi_type", got.MatchedPatterns)
	}
	if len(got.Intel.PaymentHandles) != 1 || len(got.Intel.PhoneNumbers) != 1 {
		t.Errorf("Intel = %+v, want one handle and one phone", got.Intel)
	}
}

func TestScoreComplianceContradiction(t *testing.T) {
	s := newTestScorer()
	history := []Turn{
		{Role: RoleUser, Content: "this prize is completely free, nothing to pay"},
		{Role: RoleAgent, Content: "that sounds nice"},
	}

	got := s.Score("just transfer a small processing fee first", history)
	if !hasMatch(got, "context:compliance_contradiction") {
		t.Errorf("MatchedPatterns = %v, want context:compliance_contradiction", got.MatchedPatterns)
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := newTestScorer()
	msg := "Congratulations! You have won the lottery. Pay the processing fee now at http://claim-prize.xyz"
	history := []Turn{{Role: RoleUser, Content: "hello dear customer"}}

	first := s.Score(msg, history)
	for i := 0; i < 20; i++ {
		again := s.Score(msg, history)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Score not deterministic:\nfirst: %+v\nagain: %+v", first, again)
		}
	}
}

func TestTierBoundaries(t *testing.T) {
	s := newTestScorer()
	tests := []struct {
		confidence float64
		want       RiskTier
	}{
		{0.85, TierCritical},
		{0.80, TierCritical},
		{0.79, TierHigh},
		{0.60, TierHigh},
		{0.45, TierMedium},
		{0.40, TierMedium},
		{0.25, TierLow},
		{0.20, TierLow},
		{0.10, TierSafe},
		{0.0, TierSafe},
	}
	for _, tt := range tests {
		if got := s.tierFor(tt.confidence); got != tt.want {
			t.Errorf("tierFor(%v) = %s, want %s", tt.confidence, got, tt.want)
		}
	}
}

func TestCombineBoostCapped(t *testing.T) {
	s := newTestScorer()
	got := s.combine(LayerScores{Pattern: 1, Behavior: 1, Context: 1, Intelligence: 1, Urgency: 1})
	if got != 1.0 {
		t.Errorf("combine(all max) = %v, want capped at 1.0", got)
	}
}
