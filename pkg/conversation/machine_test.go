package conversation

import "testing"

func TestTransitionTriggers(t *testing.T) {
	tests := []struct {
		name         string
		message      string
		confidence   float64
		current      State
		wantState    State
		wantScenario string
	}{
		{
			name:         "otp request jumps straight to confirmed",
			message:      "please share your OTP to complete verification",
			confidence:   0.1,
			current:      StateSafe,
			wantState:    StateConfirmedScam,
			wantScenario: "otp_request",
		},
		{
			name:         "payment request confirms",
			message:      "transfer the money today",
			confidence:   0.0,
			current:      StateSuspicious,
			wantState:    StateConfirmedScam,
			wantScenario: "payment_request",
		},
		{
			name:         "abusive language terminates",
			message:      "do it or go to hell",
			confidence:   0.0,
			current:      StateSafe,
			wantState:    StateTerminated,
			wantScenario: "abusive_language",
		},
		{
			name:         "link lure raises to high risk",
			message:      "click on this link to claim",
			confidence:   0.0,
			current:      StateSafe,
			wantState:    StateHighRisk,
			wantScenario: "link_lure",
		},
		{
			name:         "authority claim raises to suspicious",
			message:      "I am calling from the bank security department",
			confidence:   0.0,
			current:      StateSafe,
			wantState:    StateSuspicious,
			wantScenario: "authority_claim",
		},
		{
			name:         "trigger below current state is ignored",
			message:      "I am calling from the bank security department",
			confidence:   0.0,
			current:      StateHighRisk,
			wantState:    StateHighRisk,
			wantScenario: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, scenario := Transition(tt.message, tt.confidence, tt.current)
			if got != tt.wantState {
				t.Errorf("Transition() state = %s, want %s", got, tt.wantState)
			}
			if scenario != tt.wantScenario {
				t.Errorf("Transition() scenario = %q, want %q", scenario, tt.wantScenario)
			}
		})
	}
}

func TestTransitionConfidenceBands(t *testing.T) {
	tests := []struct {
		confidence float64
		current    State
		want       State
	}{
		{0.85, StateSafe, StateConfirmedScam},
		{0.81, StateSafe, StateConfirmedScam},
		{0.80, StateSafe, StateHighRisk}, // band is strictly greater-than
		{0.50, StateSafe, StateHighRisk},
		{0.25, StateSafe, StateSuspicious},
		{0.20, StateSafe, StateSafe},
		{0.10, StateSafe, StateSafe},
	}

	for _, tt := range tests {
		got, _ := Transition("nothing special here", tt.confidence, tt.current)
		if got != tt.want {
			t.Errorf("Transition(conf=%v) = %s, want %s", tt.confidence, got, tt.want)
		}
	}
}

func TestTransitionNeverRegresses(t *testing.T) {
	// A calm, low-confidence message must not lower an escalated state.
	for _, current := range []State{StateSuspicious, StateHighRisk, StateConfirmedScam, StateTerminated} {
		got, scenario := Transition("thank you, talk later", 0.0, current)
		if got != current {
			t.Errorf("state regressed from %s to %s", current, got)
		}
		if scenario != "" {
			t.Errorf("unexpected scenario %q for no-op transition", scenario)
		}
	}
}

func TestAggressionDetected(t *testing.T) {
	if !AggressionDetected("you are a piece of shit") {
		t.Error("aggression not detected")
	}
	if AggressionDetected("thank you for your patience") {
		t.Error("false aggression on polite message")
	}
}
