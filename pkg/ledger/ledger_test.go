package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DecoyDeskAI/warden/pkg/detect"
)

func TestMergeMonotonic(t *testing.T) {
	prior := Ledger{
		ScamEverDetected:   true,
		MaxScamProbability: 70,
		HighestPhase:       PhaseLate,
		ResponseMode:       ModeBlocking,
	}

	// A quiet turn must not regress anything.
	quiet := Ledger{MaxScamProbability: 5}
	merged := Merge(prior, quiet)
	assert.Equal(t, prior, merged, "quiet turn regressed the ledger")

	// A hotter turn advances each field independently.
	hot := Ledger{
		ScamEverDetected:   true,
		MaxScamProbability: 90,
		HighestPhase:       PhaseFinal,
		ResponseMode:       ModeTerminate,
	}
	merged = Merge(prior, hot)
	assert.Equal(t, 90, merged.MaxScamProbability)
	assert.Equal(t, PhaseFinal, merged.HighestPhase)
	assert.Equal(t, ModeTerminate, merged.ResponseMode)
	assert.True(t, merged.ScamEverDetected)
}

func TestMergeDetectedFlagLatches(t *testing.T) {
	merged := Merge(Ledger{ScamEverDetected: true}, Ledger{})
	assert.True(t, merged.ScamEverDetected, "detected flag must latch")

	merged = Merge(Ledger{}, Ledger{ScamEverDetected: true})
	assert.True(t, merged.ScamEverDetected)
}

func TestMergeIdempotent(t *testing.T) {
	l := Ledger{ScamEverDetected: true, MaxScamProbability: 55, HighestPhase: PhaseMid, ResponseMode: ModeDefensive}
	assert.Equal(t, l, Merge(l, l), "merging a ledger with itself must be a no-op")
}

func TestTurnFacts(t *testing.T) {
	tests := []struct {
		name       string
		result     detect.DetectionResult
		terminated bool
		wantProb   int
		wantPhase  Phase
		wantFlag   bool
	}{
		{
			name:      "clean turn",
			result:    detect.DetectionResult{Confidence: 0.05, RiskTier: detect.TierSafe},
			wantProb:  5,
			wantPhase: PhaseEarly,
		},
		{
			name:      "detected low confidence gets floor",
			result:    detect.DetectionResult{Confidence: 0.18, IsScam: true, RiskTier: detect.TierSafe},
			wantProb:  30,
			wantPhase: PhaseMid,
			wantFlag:  true,
		},
		{
			name:      "high tier maps to late phase",
			result:    detect.DetectionResult{Confidence: 0.72, IsScam: true, RiskTier: detect.TierHigh},
			wantProb:  72,
			wantPhase: PhaseLate,
			wantFlag:  true,
		},
		{
			name:       "terminated forces final phase",
			result:     detect.DetectionResult{Confidence: 0.9, IsScam: true, RiskTier: detect.TierCritical},
			terminated: true,
			wantProb:   90,
			wantPhase:  PhaseFinal,
			wantFlag:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := TurnFacts(tt.result, tt.terminated, 30)
			assert.Equal(t, tt.wantProb, facts.MaxScamProbability)
			assert.Equal(t, tt.wantPhase, facts.HighestPhase)
			assert.Equal(t, tt.wantFlag, facts.ScamEverDetected)
		})
	}
}

func TestLegitimacyClaimCannotLowerLedger(t *testing.T) {
	// Turn 1: strong scam signal.
	strong := TurnFacts(detect.DetectionResult{Confidence: 0.9, IsScam: true, RiskTier: detect.TierCritical}, false, 30)
	session := Merge(New(), strong)
	require.Equal(t, 90, session.MaxScamProbability)

	// Turn 2: the counterpart claims legitimacy and the adjusted
	// confidence drops. The all-time maximum must not move.
	weak := TurnFacts(detect.DetectionResult{Confidence: 0.3, IsScam: true, RiskTier: detect.TierLow}, false, 30)
	session = Merge(session, weak)
	assert.Equal(t, 90, session.MaxScamProbability)
	assert.True(t, session.ScamEverDetected)
	assert.Equal(t, PhaseLate, session.HighestPhase)
}

func TestPhaseAndModeJSONRoundTrip(t *testing.T) {
	for _, p := range []Phase{PhaseEarly, PhaseMid, PhaseLate, PhaseFinal} {
		data, err := p.MarshalText()
		require.NoError(t, err)
		var back Phase
		require.NoError(t, back.UnmarshalText(data))
		assert.Equal(t, p, back)
	}
	for _, m := range []ResponseMode{ModeNormal, ModeDefensive, ModeBlocking, ModeTerminate} {
		data, err := m.MarshalText()
		require.NoError(t, err)
		var back ResponseMode
		require.NoError(t, back.UnmarshalText(data))
		assert.Equal(t, m, back)
	}

	var p Phase
	assert.Error(t, p.UnmarshalText([]byte("nope")))
	var m ResponseMode
	assert.Error(t, m.UnmarshalText([]byte("nope")))
}
