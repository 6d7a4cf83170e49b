// Package telemetry records an append-only audit trail of governed turns.
// Every decision the governor makes is written as one JSON line, so an
// operator can reconstruct why a session was escalated or terminated.
package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/DecoyDeskAI/warden/pkg/governor"
	"github.com/DecoyDeskAI/warden/pkg/ledger"
)

// Auditor writes structured audit events. Safe for concurrent use; slog
// handlers serialize writes.
type Auditor struct {
	log    *slog.Logger
	closer io.Closer
}

// NewAuditor opens (or creates, append mode) the audit file at path and
// returns an auditor writing JSON lines to it. An empty path audits to
// stderr.
func NewAuditor(path string) (*Auditor, error) {
	if path == "" {
		return &Auditor{log: slog.New(slog.NewJSONHandler(os.Stderr, nil))}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open audit log: %w", err)
	}
	return &Auditor{
		log:    slog.New(slog.NewJSONHandler(f, nil)),
		closer: f,
	}, nil
}

// NewAuditorWriter returns an auditor writing to w. Used in tests.
func NewAuditorWriter(w io.Writer) *Auditor {
	return &Auditor{log: slog.New(slog.NewJSONHandler(w, nil))}
}

// TurnEvent is the audit record for one governed turn.
type TurnEvent struct {
	SessionID   string
	Turn        int
	State       string
	Phase       ledger.Phase
	Confidence  float64
	Probability int
	Decision    governor.Decision
}

// RecordTurn appends one turn event to the audit trail.
func (a *Auditor) RecordTurn(ev TurnEvent) {
	if a == nil {
		return
	}
	a.log.Info("turn_governed",
		slog.String("session_id", ev.SessionID),
		slog.Int("turn", ev.Turn),
		slog.String("state", ev.State),
		slog.String("phase", ev.Phase.String()),
		slog.Float64("confidence", ev.Confidence),
		slog.Int("max_probability", ev.Probability),
		slog.String("mode", ev.Decision.Mode.String()),
		slog.Bool("overridden", ev.Decision.Overridden),
		slog.String("guardrail", ev.Decision.GuardrailTriggered),
		slog.Bool("aggression", ev.Decision.AggressionDetected),
	)
}

// RecordSessionEnd appends a session termination event.
func (a *Auditor) RecordSessionEnd(sessionID string, turns int, archived bool) {
	if a == nil {
		return
	}
	a.log.Info("session_ended",
		slog.String("session_id", sessionID),
		slog.Int("turns", turns),
		slog.Bool("archived", archived),
	)
}

// Close releases the underlying file, if any.
func (a *Auditor) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
