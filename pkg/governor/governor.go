// Package governor is the terminal authority over outgoing replies. It
// takes the session's accumulated risk, the conversation state and a
// proposed reply, and either passes the reply through or substitutes a
// fixed safe reply, escalating through an irreversible mode ladder
// NORMAL -> DEFENSIVE -> BLOCKING -> TERMINATE.
//
// Whatever the upstream generator produced, nothing leaves the engine
// without passing through Govern.
package governor

import (
	"github.com/DecoyDeskAI/warden/pkg/config"
	"github.com/DecoyDeskAI/warden/pkg/conversation"
	"github.com/DecoyDeskAI/warden/pkg/ledger"
)

// Fixed replies. The refusal deliberately contains no questions and no
// information requests.
const (
	// RefusalReply is the fixed safe reply used in TERMINATE mode.
	RefusalReply = "I am not able to continue this conversation. If you believe you are a victim of fraud, contact your bank and your local cybercrime helpline."

	// BlockedAcknowledgement replaces a reply that was entirely
	// information-seeking once BLOCKING mode strips it.
	BlockedAcknowledgement = "I see. I will think about it."
)

// Guardrail labels recorded in decisions for audit.
const (
	GuardrailAggression     = "aggression"
	GuardrailRepetition     = "repetition_limit"
	GuardrailConfidence     = "confidence_terminate"
	GuardrailStateConfirmed = "state_confirmed_scam"
	GuardrailBlockingScrub  = "blocking_scrub"
	GuardrailDefensiveFlag  = "defensive_flag"
)

// Input carries the per-turn context the governor needs beyond the
// accumulated probability and the proposed reply.
type Input struct {
	State           conversation.State
	Scenario        string
	UserMessage     string
	Aggression      bool
	RepetitionCount int
	PriorMode       ledger.ResponseMode // highest mode a previous turn reached
}

// Decision is the governor's verdict for one turn. Produced once per turn
// and audit-logged; not stored beyond that.
type Decision struct {
	FinalReply         string              `json:"final_reply"`
	Mode               ledger.ResponseMode `json:"mode"`
	Overridden         bool                `json:"overridden"`
	GuardrailTriggered string              `json:"guardrail_triggered,omitempty"`
	AggressionDetected bool                `json:"aggression_detected"`
}

// Governor applies the mode ladder. Stateless: the session's lockstep
// mode lives in the ledger and is passed in via Input.PriorMode.
type Governor struct {
	cfg config.GovernorConfig
}

// New creates a governor with the given thresholds.
func New(cfg config.GovernorConfig) *Governor {
	return &Governor{cfg: cfg}
}

// Govern selects the response mode and produces the final reply.
// accumulatedProbability is the session's all-time maximum scam
// probability in [0,1], already merged with this turn's adjusted
// confidence. The returned mode never ranks below Input.PriorMode: the
// ladder is one-directional within a session.
func (g *Governor) Govern(accumulatedProbability float64, proposedReply string, in Input) Decision {
	// Rule 1: aggression or repetition force immediate termination,
	// regardless of confidence.
	if in.Aggression {
		return g.terminate(proposedReply, GuardrailAggression, true)
	}
	if in.RepetitionCount >= g.cfg.MaxRepetition {
		return g.terminate(proposedReply, GuardrailRepetition, false)
	}

	mode, guardrail := g.modeFor(accumulatedProbability, in.State)

	// The ladder never moves backward within a session.
	if in.PriorMode > mode {
		mode = in.PriorMode
		guardrail = ""
	}

	switch mode {
	case ledger.ModeTerminate:
		if guardrail == "" {
			guardrail = GuardrailConfidence
		}
		return g.terminate(proposedReply, guardrail, false)

	case ledger.ModeBlocking:
		scrubbed, changed := ScrubInformationSeeking(proposedReply)
		if guardrail == "" && changed {
			guardrail = GuardrailBlockingScrub
		}
		return Decision{
			FinalReply:         scrubbed,
			Mode:               ledger.ModeBlocking,
			Overridden:         changed,
			GuardrailTriggered: guardrail,
		}

	case ledger.ModeDefensive:
		// Reply passes through unchanged but the turn is flagged.
		return Decision{
			FinalReply:         proposedReply,
			Mode:               ledger.ModeDefensive,
			GuardrailTriggered: GuardrailDefensiveFlag,
		}

	default:
		return Decision{
			FinalReply: proposedReply,
			Mode:       ledger.ModeNormal,
		}
	}
}

// modeFor maps accumulated probability and conversation state to a mode.
// A CONFIRMED_SCAM state constrains replies even if the numeric
// probability lags; TERMINATED always terminates.
func (g *Governor) modeFor(probability float64, state conversation.State) (ledger.ResponseMode, string) {
	var mode ledger.ResponseMode
	switch {
	case probability >= g.cfg.TerminateThreshold:
		mode = ledger.ModeTerminate
	case probability >= g.cfg.BlockingThreshold:
		mode = ledger.ModeBlocking
	case probability >= g.cfg.DefensiveThreshold:
		mode = ledger.ModeDefensive
	default:
		mode = ledger.ModeNormal
	}

	switch {
	case state >= conversation.StateTerminated:
		return ledger.ModeTerminate, GuardrailStateConfirmed
	case state >= conversation.StateConfirmedScam && mode < ledger.ModeBlocking:
		return ledger.ModeBlocking, GuardrailStateConfirmed
	}
	return mode, ""
}

func (g *Governor) terminate(proposedReply, guardrail string, aggression bool) Decision {
	return Decision{
		FinalReply:         RefusalReply,
		Mode:               ledger.ModeTerminate,
		Overridden:         proposedReply != RefusalReply,
		GuardrailTriggered: guardrail,
		AggressionDetected: aggression,
	}
}
