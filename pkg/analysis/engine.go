// Package analysis derives auxiliary judgments from a scored message:
// explanation, remediation advice, escalation velocity, victim-vulnerability
// estimate, scam archetype, and a legitimacy-claim confidence adjustment.
//
// Everything here is a pure function of (message, history, DetectionResult).
// The bundle is advisory; only AdjustedConfidence feeds back into risk.
package analysis

import (
	"strings"

	"github.com/DecoyDeskAI/warden/pkg/config"
	"github.com/DecoyDeskAI/warden/pkg/detect"
)

// PressureVelocity describes how fast the counterpart is escalating.
type PressureVelocity string

const (
	VelocitySlow   PressureVelocity = "slow"
	VelocityMedium PressureVelocity = "medium"
	VelocityFast   PressureVelocity = "fast"
)

// Vulnerability estimates how susceptible the engaged party appears.
type Vulnerability string

const (
	VulnerabilityLow    Vulnerability = "low"
	VulnerabilityMedium Vulnerability = "medium"
	VulnerabilityHigh   Vulnerability = "high"
)

// Bundle is the per-turn analysis output.
type Bundle struct {
	Reasoning          []string         `json:"reasoning,omitempty"`
	SafetyAdvice       []string         `json:"safety_advice,omitempty"`
	PressureVelocity   PressureVelocity `json:"pressure_velocity"`
	UserVulnerability  Vulnerability    `json:"user_vulnerability"`
	ScamArchetype      string           `json:"scam_archetype"`
	LegitimacyClaim    bool             `json:"legitimacy_claim"`
	AdjustedConfidence float64          `json:"adjusted_confidence"`
}

// Engine derives analysis bundles. Stateless and safe for concurrent use.
type Engine struct {
	cfg config.ScoringConfig
}

// NewEngine creates an analysis engine with the given scoring knobs.
func NewEngine(cfg config.ScoringConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Analyze derives the full bundle for one scored message. priorDetected
// says whether any earlier turn in the session already carried a scam
// signal; stateless callers pass false.
func (e *Engine) Analyze(message string, history []detect.Turn, result detect.DetectionResult, priorDetected bool) Bundle {
	lower := strings.ToLower(message)
	userTurns := detect.UserTurns(history)

	claim := hasLegitimacyClaim(lower)

	return Bundle{
		Reasoning:          buildReasoning(result),
		SafetyAdvice:       buildAdvice(result),
		PressureVelocity:   pressureVelocity(userTurns, message),
		UserVulnerability:  estimateVulnerability(lower, userTurns),
		ScamArchetype:      classifyArchetype(lower, history),
		LegitimacyClaim:    claim,
		AdjustedConfidence: e.adjustConfidence(result, claim, priorDetected),
	}
}

// adjustConfidence applies the legitimacy-claim reduction. An unprompted
// "this is genuine" lowers instantaneous confidence, but once any scam
// signal existed, this turn or earlier in the session, the adjusted value
// never drops below the configured floor. This is the only analysis output
// that feeds back into risk; the ledger's all-time maximum is untouched
// by it.
func (e *Engine) adjustConfidence(result detect.DetectionResult, claim, priorDetected bool) float64 {
	if !claim {
		return result.Confidence
	}
	adjusted := result.Confidence * (1 - e.cfg.LegitimacyReduction)
	scamSignal := priorDetected || result.IsScam || len(result.MatchedPatterns) > 0
	if scamSignal && adjusted < e.cfg.LegitimacyFloor {
		adjusted = e.cfg.LegitimacyFloor
	}
	return adjusted
}

func hasLegitimacyClaim(lower string) bool {
	for _, phrase := range legitimacyClaimPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// buildReasoning looks up one explanation sentence per matched category,
// in the result's sorted category order.
func buildReasoning(result detect.DetectionResult) []string {
	var out []string
	for _, cat := range result.Categories {
		if reason, ok := categoryReasons[cat]; ok {
			out = append(out, reason)
		}
	}
	return out
}

// buildAdvice assembles safety advice from the condition table. Advice is
// only emitted when confidence is high enough to act on, and duplicates
// are removed while preserving table order.
func buildAdvice(result detect.DetectionResult) []string {
	if result.Confidence <= 0.5 {
		return nil
	}

	matched := make(map[string]bool, len(result.Categories))
	for _, cat := range result.Categories {
		matched[cat] = true
	}

	seen := make(map[string]bool)
	var out []string
	for _, rule := range adviceRules {
		for _, cat := range rule.categories {
			if matched[cat] && !seen[rule.advice] {
				seen[rule.advice] = true
				out = append(out, rule.advice)
				break
			}
		}
	}
	return out
}

// pressureVelocity compares pressure-word counts in the first half of the
// counterpart's turns against the second half (including the current
// message). With two or fewer turns there is no trend yet, so an absolute
// threshold on the current message decides.
func pressureVelocity(userTurns []string, current string) PressureVelocity {
	turns := append(append([]string{}, userTurns...), current)

	if len(turns) <= 2 {
		hits := pressureHits(current)
		switch {
		case hits >= 3:
			return VelocityFast
		case hits >= 1:
			return VelocityMedium
		default:
			return VelocitySlow
		}
	}

	half := len(turns) / 2
	early := averageHits(turns[:half])
	late := averageHits(turns[half:])
	delta := late - early
	switch {
	case delta > 1.5:
		return VelocityFast
	case delta > 0.5:
		return VelocityMedium
	default:
		return VelocitySlow
	}
}

func pressureHits(text string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, w := range pressureIndicatorWords {
		if strings.Contains(lower, w) {
			hits++
		}
	}
	return hits
}

// pressureIndicatorWords mirrors the scorer's urgency vocabulary; kept
// separate so analysis thresholds can evolve without shifting scores.
var pressureIndicatorWords = []string{
	"now", "immediately", "urgent", "hurry", "quick", "asap", "deadline",
	"expires", "last chance", "final", "today only", "right away",
}

func averageHits(turns []string) float64 {
	if len(turns) == 0 {
		return 0
	}
	total := 0
	for _, t := range turns {
		total += pressureHits(t)
	}
	return float64(total) / float64(len(turns))
}

// estimateVulnerability counts fear, confusion and help-seeking phrases in
// the current message and the last three user turns.
func estimateVulnerability(currentLower string, userTurns []string) Vulnerability {
	window := []string{currentLower}
	start := len(userTurns) - 3
	if start < 0 {
		start = 0
	}
	for _, t := range userTurns[start:] {
		window = append(window, strings.ToLower(t))
	}

	highHits, mediumHits := 0, 0
	for _, text := range window {
		for _, p := range highVulnerabilityPhrases {
			if strings.Contains(text, p) {
				highHits++
			}
		}
		for _, p := range mediumVulnerabilityPhrases {
			if strings.Contains(text, p) {
				mediumHits++
			}
		}
	}

	switch {
	case highHits >= 2:
		return VulnerabilityHigh
	case highHits >= 1 || mediumHits >= 3:
		return VulnerabilityMedium
	default:
		return VulnerabilityLow
	}
}

// classifyArchetype runs the priority-ordered rule cascade over the
// current message, falling back to the session history so an archetype
// established earlier in the conversation sticks. First match wins.
func classifyArchetype(currentLower string, history []detect.Turn) string {
	if label := archetypeOf(currentLower); label != ArchetypeUnknown {
		return label
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != detect.RoleUser {
			continue
		}
		if label := archetypeOf(strings.ToLower(history[i].Content)); label != ArchetypeUnknown {
			return label
		}
	}
	return ArchetypeUnknown
}

func archetypeOf(lower string) string {
	cascade := []struct {
		words []string
		label string
	}{
		{otpArchetypeWords, ArchetypeOTP},
		{bankArchetypeWords, ArchetypeBankImpers},
		{techArchetypeWords, ArchetypeTechSupport},
		{prizeArchetypeWords, ArchetypePrize},
		{legalArchetypeWords, ArchetypeLegalThreat},
		{emergencyArchetypeWords, ArchetypeEmergency},
	}
	for _, rule := range cascade {
		for _, w := range rule.words {
			if strings.Contains(lower, w) {
				return rule.label
			}
		}
	}
	return ArchetypeUnknown
}
