package detect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DecoyDeskAI/warden/pkg/config"
	"github.com/DecoyDeskAI/warden/pkg/intel"
	"github.com/DecoyDeskAI/warden/pkg/patterns"
)

// Scorer combines five independent signal layers into one scam-confidence
// value and a risk tier. Safe for concurrent use: it holds only immutable
// configuration and the immutable pattern registry.
type Scorer struct {
	cfg      config.ScoringConfig
	registry *patterns.Registry
}

// NewScorer creates a scorer with the given knobs and pattern registry.
// Pass patterns.Get() for the built-in catalogue, or a fixture registry in
// tests.
func NewScorer(cfg config.ScoringConfig, registry *patterns.Registry) *Scorer {
	if registry == nil {
		registry = patterns.Get()
	}
	return &Scorer{cfg: cfg, registry: registry}
}

// Score classifies one inbound message against the session history.
// An empty message is an input error handled locally: the engine must
// always produce a decision, so it returns a zero-risk result rather than
// failing the pipeline.
func (s *Scorer) Score(message string, history []Turn) DetectionResult {
	if strings.TrimSpace(message) == "" {
		return DetectionResult{RiskTier: TierSafe}
	}

	normalized := intel.Normalize(message)
	lower := strings.ToLower(normalized)
	userTurns := UserTurns(history)
	extracted := intel.Extract(normalized)

	var matched []string
	categorySet := make(map[string]bool)

	patternScore := s.patternLayer(normalized, lower, &matched, categorySet)
	behaviorScore := s.behaviorLayer(normalized, lower, userTurns, &matched, categorySet)
	contextScore := s.contextLayer(lower, userTurns, &matched, categorySet)
	intelScore := s.intelligenceLayer(extracted, &matched, categorySet)
	urgencyScore := s.urgencyLayer(lower, &matched, categorySet)

	layers := LayerScores{
		Pattern:      patternScore,
		Behavior:     behaviorScore,
		Context:      contextScore,
		Intelligence: intelScore,
		Urgency:      urgencyScore,
	}

	confidence := s.combine(layers)

	categories := make([]string, 0, len(categorySet))
	for cat := range categorySet {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	return DetectionResult{
		Confidence:      confidence,
		IsScam:          confidence >= s.cfg.ScamThreshold,
		RiskTier:        s.tierFor(confidence),
		Categories:      categories,
		MatchedPatterns: matched,
		LayerScores:     layers,
		Intel:           extracted,
	}
}

// combine applies the weighted sum, then the floor and boost rules:
// any single layer at or above the alert threshold floors the total; two
// or more such layers multiply it (capped at 1.0).
func (s *Scorer) combine(l LayerScores) float64 {
	cfg := s.cfg
	total := l.Pattern*cfg.PatternWeight +
		l.Behavior*cfg.BehaviorWeight +
		l.Context*cfg.ContextWeight +
		l.Intelligence*cfg.IntelligenceWeight +
		l.Urgency*cfg.UrgencyWeight

	alerting := 0
	for _, sub := range []float64{l.Pattern, l.Behavior, l.Context, l.Intelligence, l.Urgency} {
		if sub >= cfg.LayerAlertThreshold {
			alerting++
		}
	}

	if alerting >= 2 {
		total *= cfg.MultiLayerBoost
	}
	if alerting >= 1 && total < cfg.FlooredConfidence {
		total = cfg.FlooredConfidence
	}
	return clamp01(total)
}

func (s *Scorer) tierFor(confidence float64) RiskTier {
	cfg := s.cfg
	switch {
	case confidence >= cfg.TierCritical:
		return TierCritical
	case confidence >= cfg.TierHigh:
		return TierHigh
	case confidence >= cfg.TierMedium:
		return TierMedium
	case confidence >= cfg.TierLow:
		return TierLow
	default:
		return TierSafe
	}
}

// patternLayer matches the message against the category catalogue and the
// flat phrase list. Phrase hits weigh more than regex hits.
func (s *Scorer) patternLayer(text, lower string, matched *[]string, cats map[string]bool) float64 {
	score := 0.0

	for _, p := range s.registry.MatchAll(text, patterns.AllCategories...) {
		score += p.Weight * s.cfg.RegexHitWeight
		*matched = append(*matched, p.Name)
		cats[string(p.Category)] = true
	}

	for _, ph := range s.registry.Phrases() {
		if strings.Contains(lower, ph.Text) {
			score += ph.Weight * s.cfg.PhraseHitWeight
			*matched = append(*matched, "phrase:"+ph.Text)
		}
	}

	return clamp01(score)
}

// behaviorLayer detects conversational tactics that only show up across
// turns: repetition, rapid-fire requests, escalating pressure, slow-burn
// urgency and emotional-manipulation phrasing.
func (s *Scorer) behaviorLayer(text, lower string, userTurns []string, matched *[]string, cats map[string]bool) float64 {
	score := 0.0

	if RepetitionCount(text, userTurns, s.cfg.RepetitionSimilarity) >= 1 {
		score += 0.35
		*matched = append(*matched, "behavior:repetition")
	}

	if countOccurrences(lower, requestVerbs) >= 2 {
		score += 0.25
		*matched = append(*matched, "behavior:rapid_fire_requests")
	}

	if escalatingPressure(userTurns, text) {
		score += 0.30
		*matched = append(*matched, "behavior:escalating_pressure")
	}

	if slowBurn(userTurns, lower) {
		score += 0.25
		*matched = append(*matched, "behavior:slow_burn")
	}

	if s.registry.MatchAny(text, patterns.CategoryEmotional) != nil {
		score += 0.20
		*matched = append(*matched, "behavior:emotional_phrasing")
		cats[string(patterns.CategoryEmotional)] = true
	}

	return clamp01(score)
}

// escalatingPressure reports whether pressure-word density in the latest
// turns meaningfully exceeds the early-conversation baseline.
func escalatingPressure(userTurns []string, current string) bool {
	if len(userTurns) < 2 {
		return false
	}
	half := len(userTurns) / 2
	early := averageDensity(userTurns[:half])
	late := averageDensity(append(append([]string{}, userTurns[half:]...), current))
	return late > 0 && late > early*1.5 && late-early > 0.01
}

// slowBurn reports the classic long-con shape: no urgency in the early
// turns, urgency present now.
func slowBurn(userTurns []string, currentLower string) bool {
	if len(userTurns) < 2 {
		return false
	}
	half := len(userTurns) / 2
	for _, t := range userTurns[:half] {
		if containsAny(strings.ToLower(t), pressureWords) {
			return false
		}
	}
	return containsAny(currentLower, pressureWords)
}

func averageDensity(turns []string) float64 {
	if len(turns) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range turns {
		sum += pressureDensity(t)
	}
	return sum / float64(len(turns))
}

// contextLayer flags situational red flags that depend on where in the
// conversation the message lands, not just what it says.
func (s *Scorer) contextLayer(lower string, userTurns []string, matched *[]string, cats map[string]bool) float64 {
	score := 0.0
	turnNumber := len(userTurns) + 1

	if turnNumber <= 2 && containsAny(lower, rewardWords) {
		score += 0.40
		*matched = append(*matched, "context:early_reward_mention")
	}

	if turnNumber <= 3 && containsAny(lower, sensitiveAskWords) {
		score += 0.45
		*matched = append(*matched, "context:early_sensitive_request")
	}

	if containsAny(lower, rewardWords) && containsAny(lower, paymentWords) {
		score += 0.40
		*matched = append(*matched, "context:prize_payment_combo")
	}

	if containsAny(lower, rewardWords) && strings.Contains(lower, "http") {
		score += 0.35
		*matched = append(*matched, "context:reward_link_combo")
	}

	if complianceContradiction(userTurns, lower) {
		score += 0.50
		*matched = append(*matched, "context:compliance_contradiction")
	}

	if score > 0 {
		cats["contextual"] = true
	}
	return clamp01(score)
}

// complianceContradiction detects a no-payment-needed claim in an earlier
// turn followed by a payment ask now.
func complianceContradiction(userTurns []string, currentLower string) bool {
	if !containsAny(currentLower, paymentWords) {
		return false
	}
	for _, t := range userTurns {
		if containsAny(strings.ToLower(t), noPaymentClaims) {
			return true
		}
	}
	return false
}

// intelligenceLayer scores extracted entities. Two or more distinct
// intelligence types in one message boost the score further.
func (s *Scorer) intelligenceLayer(extracted intel.Intelligence, matched *[]string, cats map[string]bool) float64 {
	score := 0.0

	if len(extracted.PaymentHandles) > 0 {
		score += 0.50
		*matched = append(*matched, fmt.Sprintf("intel:payment_handles(%d)", len(extracted.PaymentHandles)))
	}
	if len(extracted.PhoneNumbers) > 0 {
		score += 0.30
		*matched = append(*matched, fmt.Sprintf("intel:phone_numbers(%d)", len(extracted.PhoneNumbers)))
	}
	if len(extracted.URLs) > 0 {
		score += 0.40
		*matched = append(*matched, fmt.Sprintf("intel:urls(%d)", len(extracted.URLs)))
	}
	if extracted.TypeCount() >= 2 {
		score += 0.25
		*matched = append(*matched, "intel:multi_type")
	}

	if score > 0 {
		cats["intelligence"] = true
	}
	return clamp01(score)
}

// urgencyLayer scores co-occurrence of temporal pressure, threat of loss
// and call-to-action wording. Two or more categories present adds a bonus.
func (s *Scorer) urgencyLayer(lower string, matched *[]string, cats map[string]bool) float64 {
	score := 0.0
	groups := 0

	if containsAny(lower, temporalPressureWords) {
		score += 0.30
		groups++
		*matched = append(*matched, "urgency:temporal_pressure")
	}
	if containsAny(lower, threatOfLossWords) {
		score += 0.30
		groups++
		*matched = append(*matched, "urgency:threat_of_loss")
	}
	if containsAny(lower, callToActionWords) {
		score += 0.30
		groups++
		*matched = append(*matched, "urgency:call_to_action")
	}
	if groups >= 2 {
		score += 0.20
		*matched = append(*matched, "urgency:compound")
	}

	if groups > 0 {
		cats[string(patterns.CategoryUrgency)] = true
	}
	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
