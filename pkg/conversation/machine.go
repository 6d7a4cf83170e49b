package conversation

import (
	"regexp"

	"github.com/DecoyDeskAI/warden/pkg/intel"
)

// trigger is a non-negotiable state-transition rule: a regex that forces
// the session to the target state regardless of numeric score.
type trigger struct {
	scenario string
	re       *regexp.Regexp
	target   State
}

// nonNegotiableTriggers is the ordered trigger table, highest-severity
// targets first. Scanning stops at the first trigger whose target
// outranks the current state, so identical inputs always yield identical
// transitions.
var nonNegotiableTriggers = []trigger{
	{
		scenario: "abusive_language",
		re:       regexp.MustCompile(`(?i)\b(f[u*]ck(er|ing)?|b[i1]tch|bastard|asshole|motherf[u*]cker|go\s+to\s+hell|piece\s+of\s+sh[i1]t)\b`),
		target:   StateTerminated,
	},
	{
		scenario: "otp_request",
		re:       regexp.MustCompile(`(?i)(send|share|tell|give|enter|read|confirm)\s+(me\s+|us\s+)?(the\s+|your\s+)?(otp|one[\s-]?time\s+(password|passcode|pin)|verification\s+code|security\s+code)`),
		target:   StateConfirmedScam,
	},
	{
		scenario: "payment_request",
		re:       regexp.MustCompile(`(?i)((send|transfer|pay|deposit)\s+(me\s+|us\s+)?(the\s+)?(money|amount|fee|rs\.?|inr|usd|\$|₹)|(make|complete)\s+(the\s+)?payment|gift\s+card\s+code)`),
		target:   StateConfirmedScam,
	},
	{
		scenario: "link_lure",
		re:       regexp.MustCompile(`(?i)(click|tap|open|visit)\s+(on\s+)?(this|the|below|following)\s+link|https?://\S+`),
		target:   StateHighRisk,
	},
	{
		scenario: "lottery_bait",
		re:       regexp.MustCompile(`(?i)(you\s+(have\s+)?won|lottery|lucky\s+draw|jackpot|claim\s+(your\s+)?prize)`),
		target:   StateHighRisk,
	},
	{
		scenario: "legal_threat",
		re:       regexp.MustCompile(`(?i)(legal\s+action|arrest|warrant|police\s+(case|complaint)|court|lawsuit|sue\s+you)`),
		target:   StateHighRisk,
	},
	{
		scenario: "urgency_deadline",
		re:       regexp.MustCompile(`(?i)(within\s+\d+\s+(minutes?|hours?)|(expires?|act|pay|respond)\s+(now|today|immediately)|last\s+(chance|warning))`),
		target:   StateHighRisk,
	},
	{
		scenario: "authority_claim",
		re:       regexp.MustCompile(`(?i)(i\s+am|i'?m|this\s+is|calling\s+from)\s+.{0,30}(bank|officer|official|government|police|department|support\s+team)`),
		target:   StateSuspicious,
	},
}

// Transition maps message content plus prior state into the next
// conversation state. Non-negotiable triggers are tested first; the first
// trigger whose target outranks the current state wins and the scenario
// label is returned with it. Otherwise confidence bands decide. The
// machine never regresses: the result is always >= current.
func Transition(message string, confidence float64, current State) (State, string) {
	normalized := intel.Normalize(message)

	for _, t := range nonNegotiableTriggers {
		if t.target > current && t.re.MatchString(normalized) {
			return t.target, t.scenario
		}
	}

	banded := bandFor(confidence)
	if banded > current {
		return banded, "confidence_band"
	}
	return current, ""
}

// bandFor maps a confidence value to its fallback state band.
func bandFor(confidence float64) State {
	switch {
	case confidence > 0.8:
		return StateConfirmedScam
	case confidence > 0.4:
		return StateHighRisk
	case confidence > 0.20:
		return StateSuspicious
	default:
		return StateSafe
	}
}

// AggressionDetected reports whether the message trips the abusive
// language trigger. The governor uses this to force termination even when
// confidence is low.
func AggressionDetected(message string) bool {
	return nonNegotiableTriggers[0].re.MatchString(intel.Normalize(message))
}
