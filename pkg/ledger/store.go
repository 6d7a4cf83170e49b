package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/DecoyDeskAI/warden/pkg/conversation"
	"github.com/DecoyDeskAI/warden/pkg/detect"
)

// ErrConflict signals a ledger write conflict: another turn updated the
// session between this turn's read and write. The caller must retry with
// fresh prior values; the store never silently overwrites, because a lost
// update could regress the monotonic fields.
var ErrConflict = errors.New("ledger write conflict")

// SessionRecord is the durable per-session state: the conversation risk
// state, the monotonic ledger, and the turn history the scorer reads.
type SessionRecord struct {
	SessionID  string             `json:"session_id"`
	State      conversation.State `json:"state"`
	Ledger     Ledger             `json:"ledger"`
	History    []detect.Turn      `json:"history,omitempty"`
	TurnCount  int                `json:"turn_count"`
	CreatedAt  time.Time          `json:"created_at"`
	LastTurnAt time.Time          `json:"last_turn_at"`

	// Version is the optimistic concurrency token. Save only succeeds if
	// the stored version still equals the version this record was read at.
	Version int64 `json:"version"`
}

// NewSessionRecord creates a fresh record with all-minimal risk values.
func NewSessionRecord(sessionID string) *SessionRecord {
	now := time.Now().UTC()
	return &SessionRecord{
		SessionID: sessionID,
		State:     conversation.StateSafe,
		Ledger:    New(),
		CreatedAt: now,
	}
}

// Store persists session records with atomic read-then-write semantics.
// Implementations must reject stale writes with ErrConflict so concurrent
// turns for one session serialize through caller retries.
type Store interface {
	// Get retrieves a session by ID. Returns nil, nil if not found.
	Get(ctx context.Context, sessionID string) (*SessionRecord, error)

	// Save creates or updates a session, comparing record.Version against
	// the stored version. On success the record's Version is advanced; on
	// a stale version Save returns ErrConflict.
	Save(ctx context.Context, record *SessionRecord) error

	// Delete removes a session after archival.
	Delete(ctx context.Context, sessionID string) error

	// Close releases store resources.
	Close() error
}
