package telemetry

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DecoyDeskAI/warden/pkg/governor"
	"github.com/DecoyDeskAI/warden/pkg/ledger"
)

func TestRecordTurnWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	a := NewAuditorWriter(&buf)

	a.RecordTurn(TurnEvent{
		SessionID:   "s1",
		Turn:        3,
		State:       "CONFIRMED_SCAM",
		Phase:       ledger.PhaseLate,
		Confidence:  0.84,
		Probability: 84,
		Decision: governor.Decision{
			FinalReply:         governor.RefusalReply,
			Mode:               ledger.ModeTerminate,
			Overridden:         true,
			GuardrailTriggered: governor.GuardrailConfidence,
		},
	})

	line := strings.TrimSpace(buf.String())
	var event map[string]any
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		t.Fatalf("audit line is not JSON: %v\n%s", err, line)
	}

	if event["session_id"] != "s1" {
		t.Errorf("session_id = %v", event["session_id"])
	}
	if event["mode"] != "TERMINATE" {
		t.Errorf("mode = %v, want TERMINATE", event["mode"])
	}
	if event["phase"] != "late" {
		t.Errorf("phase = %v, want late", event["phase"])
	}
	if event["guardrail"] != governor.GuardrailConfidence {
		t.Errorf("guardrail = %v", event["guardrail"])
	}
}

func TestAuditorAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	a, err := NewAuditor(path)
	if err != nil {
		t.Fatal(err)
	}
	a.RecordSessionEnd("s1", 5, true)
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen and append a second event.
	a, err = NewAuditor(path)
	if err != nil {
		t.Fatal(err)
	}
	a.RecordSessionEnd("s2", 2, false)
	_ = a.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("audit file has %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		var event map[string]any
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Errorf("line not JSON: %s", line)
		}
	}
}

func TestNilAuditorIsSafe(t *testing.T) {
	var a *Auditor
	a.RecordTurn(TurnEvent{SessionID: "s1"})
	a.RecordSessionEnd("s1", 1, false)
	if err := a.Close(); err != nil {
		t.Errorf("Close on nil auditor = %v", err)
	}
}
