// Package conversation tracks how far a session has escalated toward
// confirmed fraud. A small state machine maps message content plus prior
// state into a conversation risk state; non-negotiable trigger phrases
// force-jump the state regardless of numeric score.
package conversation

import "fmt"

// State is the conversation risk state. States are totally ordered and a
// session's state never regresses.
type State int

const (
	StateSafe State = iota
	StateSuspicious
	StateHighRisk
	StateConfirmedScam
	StateTerminated
)

var stateNames = map[State]string{
	StateSafe:          "SAFE",
	StateSuspicious:    "SUSPICIOUS",
	StateHighRisk:      "HIGH_RISK",
	StateConfirmedScam: "CONFIRMED_SCAM",
	StateTerminated:    "TERMINATED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText serializes the state by name for JSON and storage.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name. Unknown names error rather than
// silently mapping to SAFE: a corrupt stored state must not reset risk.
func (s *State) UnmarshalText(b []byte) error {
	for state, name := range stateNames {
		if name == string(b) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown conversation state %q", string(b))
}

// Max returns the higher-ranked of two states.
func Max(a, b State) State {
	if a > b {
		return a
	}
	return b
}
