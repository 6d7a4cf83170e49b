package conversation

import (
	"encoding/json"
	"testing"
)

func TestStateOrdering(t *testing.T) {
	ordered := []State{StateSafe, StateSuspicious, StateHighRisk, StateConfirmedScam, StateTerminated}
	for i := 1; i < len(ordered); i++ {
		if !(ordered[i-1] < ordered[i]) {
			t.Errorf("%s should rank below %s", ordered[i-1], ordered[i])
		}
	}
	if Max(StateSafe, StateHighRisk) != StateHighRisk {
		t.Error("Max should return the higher state")
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	for _, s := range []State{StateSafe, StateSuspicious, StateHighRisk, StateConfirmedScam, StateTerminated} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("marshal %s: %v", s, err)
		}
		var back State
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != s {
			t.Errorf("round trip %s -> %s", s, back)
		}
	}

	var s State
	if err := json.Unmarshal([]byte(`"NOT_A_STATE"`), &s); err == nil {
		t.Error("unknown state name should fail to parse")
	}
}
