// Package detect implements the multi-layer scam scorer. Five independent
// signal layers (pattern, behavior, context, intelligence, urgency) each
// produce a bounded sub-score; a weighted combination with floor and boost
// rules yields one scam-confidence value and a risk tier.
//
// Scoring is deterministic: identical (message, history) always yields an
// identical DetectionResult. No randomness, no wall-clock reads, ordered
// pattern iteration, sorted output sets.
package detect

import "github.com/DecoyDeskAI/warden/pkg/intel"

// RiskTier is the discretized confidence band.
type RiskTier string

const (
	TierSafe     RiskTier = "SAFE"
	TierLow      RiskTier = "LOW"
	TierMedium   RiskTier = "MEDIUM"
	TierHigh     RiskTier = "HIGH"
	TierCritical RiskTier = "CRITICAL"
)

// LayerScores holds the bounded [0,1] sub-score of each signal layer.
type LayerScores struct {
	Pattern      float64 `json:"pattern"`
	Behavior     float64 `json:"behavior"`
	Context      float64 `json:"context"`
	Intelligence float64 `json:"intelligence"`
	Urgency      float64 `json:"urgency"`
}

// DetectionResult is the scorer's verdict for one inbound message.
// Immutable once produced; every downstream component consumes it.
type DetectionResult struct {
	Confidence      float64            `json:"confidence"` // [0,1]
	IsScam          bool               `json:"is_scam"`
	RiskTier        RiskTier           `json:"risk_tier"`
	Categories      []string           `json:"categories,omitempty"`       // sorted set
	MatchedPatterns []string           `json:"matched_patterns,omitempty"` // ordered
	LayerScores     LayerScores        `json:"layer_scores"`
	Intel           intel.Intelligence `json:"intel"`
}

// Role identifies who produced a conversation turn.
type Role string

const (
	// RoleUser is the counterpart being engaged (the suspected fraud actor).
	RoleUser Role = "user"
	// RoleAgent is the decoy agent's side of the conversation.
	RoleAgent Role = "agent"
)

// Turn is one prior message in the session, oldest first.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserTurns filters history down to the counterpart's turns, oldest first.
func UserTurns(history []Turn) []string {
	var out []string
	for _, t := range history {
		if t.Role == RoleUser {
			out = append(out, t.Content)
		}
	}
	return out
}
