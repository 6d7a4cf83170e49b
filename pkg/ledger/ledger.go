// Package ledger holds the per-session record of all-time monotonic risk
// facts. Every field only moves forward for the lifetime of a session:
// the detected flag latches, the probability floor only rises, and phase
// and response mode only advance along their total orders.
//
// The monotonicity is expressed as an explicit Merge(prior, current)
// taking max/boolean-or per field, called once per turn, so the invariant
// is unit-testable in isolation.
package ledger

import (
	"fmt"

	"github.com/DecoyDeskAI/warden/pkg/detect"
)

// Phase is the engagement phase implied by accumulated risk.
type Phase int

const (
	PhaseEarly Phase = iota
	PhaseMid
	PhaseLate
	PhaseFinal
)

var phaseNames = map[Phase]string{
	PhaseEarly: "early",
	PhaseMid:   "mid",
	PhaseLate:  "late",
	PhaseFinal: "final",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText serializes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a phase name.
func (p *Phase) UnmarshalText(b []byte) error {
	for phase, name := range phaseNames {
		if name == string(b) {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", string(b))
}

// ResponseMode is the governor's one-way reply-constraint ladder.
type ResponseMode int

const (
	ModeNormal ResponseMode = iota
	ModeDefensive
	ModeBlocking
	ModeTerminate
)

var modeNames = map[ResponseMode]string{
	ModeNormal:    "NORMAL",
	ModeDefensive: "DEFENSIVE",
	ModeBlocking:  "BLOCKING",
	ModeTerminate: "TERMINATE",
}

func (m ResponseMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ResponseMode(%d)", int(m))
}

// MarshalText serializes the mode by name.
func (m ResponseMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a mode name.
func (m *ResponseMode) UnmarshalText(b []byte) error {
	for mode, name := range modeNames {
		if name == string(b) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown response mode %q", string(b))
}

// Ledger is the session's all-time monotonic risk record.
type Ledger struct {
	ScamEverDetected   bool         `json:"scam_ever_detected"`
	MaxScamProbability int          `json:"max_scam_probability"` // 0-100
	HighestPhase       Phase        `json:"highest_phase"`
	ResponseMode       ResponseMode `json:"response_mode"`
}

// New returns a ledger with all-minimal values, as created at session start.
func New() Ledger {
	return Ledger{}
}

// Merge folds the current turn's facts into the prior record under strict
// monotonic rules: or for the flag, max for everything else. Merge never
// returns a ledger that regresses any field of prior.
func Merge(prior, current Ledger) Ledger {
	merged := Ledger{
		ScamEverDetected:   prior.ScamEverDetected || current.ScamEverDetected,
		MaxScamProbability: prior.MaxScamProbability,
		HighestPhase:       prior.HighestPhase,
		ResponseMode:       prior.ResponseMode,
	}
	if current.MaxScamProbability > merged.MaxScamProbability {
		merged.MaxScamProbability = current.MaxScamProbability
	}
	if current.HighestPhase > merged.HighestPhase {
		merged.HighestPhase = current.HighestPhase
	}
	if current.ResponseMode > merged.ResponseMode {
		merged.ResponseMode = current.ResponseMode
	}
	return merged
}

// TurnFacts computes the current turn's ledger contribution from the
// detection result. A scam-detected turn floors the probability at
// probabilityFloor; a terminated conversation forces the final phase.
func TurnFacts(result detect.DetectionResult, terminated bool, probabilityFloor int) Ledger {
	probability := int(result.Confidence * 100)
	if result.IsScam && probability < probabilityFloor {
		probability = probabilityFloor
	}

	return Ledger{
		ScamEverDetected:   result.IsScam,
		MaxScamProbability: probability,
		HighestPhase:       phaseFor(result, terminated),
	}
}

func phaseFor(result detect.DetectionResult, terminated bool) Phase {
	if terminated {
		return PhaseFinal
	}
	switch {
	case result.RiskTier == detect.TierCritical || result.RiskTier == detect.TierHigh:
		return PhaseLate
	case result.RiskTier == detect.TierMedium || result.IsScam:
		return PhaseMid
	default:
		return PhaseEarly
	}
}
