package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Archiver persists ended sessions to Postgres. Live sessions stay in the
// hot store; the archive is the durable record for reporting and
// cross-session review. Ledger facts are never reset mid-session, so the
// archived row is the session's final, maximal risk record.
type Archiver struct {
	pool *pgxpool.Pool
}

const archiveSchema = `
CREATE TABLE IF NOT EXISTS session_archive (
	session_id           TEXT PRIMARY KEY,
	state                TEXT NOT NULL,
	scam_ever_detected   BOOLEAN NOT NULL,
	max_scam_probability INT NOT NULL,
	highest_phase        TEXT NOT NULL,
	response_mode        TEXT NOT NULL,
	turn_count           INT NOT NULL,
	history              JSONB,
	created_at           TIMESTAMPTZ NOT NULL,
	ended_at             TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// NewArchiver connects a pgx pool to the archive database.
func NewArchiver(ctx context.Context, dsn string) (*Archiver, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect archive db: %w", err)
	}
	a := &Archiver{pool: pool}
	if err := a.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return a, nil
}

func (a *Archiver) ensureSchema(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, archiveSchema); err != nil {
		return fmt.Errorf("create archive schema: %w", err)
	}
	return nil
}

// Archive writes the session's final record. Idempotent: re-archiving a
// session overwrites with the latest (and by monotonicity, maximal) facts.
func (a *Archiver) Archive(ctx context.Context, record *SessionRecord) error {
	history, err := json.Marshal(record.History)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	_, err = a.pool.Exec(ctx, `
		INSERT INTO session_archive
			(session_id, state, scam_ever_detected, max_scam_probability,
			 highest_phase, response_mode, turn_count, history, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (session_id) DO UPDATE SET
			state = EXCLUDED.state,
			scam_ever_detected = EXCLUDED.scam_ever_detected,
			max_scam_probability = EXCLUDED.max_scam_probability,
			highest_phase = EXCLUDED.highest_phase,
			response_mode = EXCLUDED.response_mode,
			turn_count = EXCLUDED.turn_count,
			history = EXCLUDED.history,
			ended_at = now()`,
		record.SessionID,
		record.State.String(),
		record.Ledger.ScamEverDetected,
		record.Ledger.MaxScamProbability,
		record.Ledger.HighestPhase.String(),
		record.Ledger.ResponseMode.String(),
		record.TurnCount,
		history,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("archive session %s: %w", record.SessionID, err)
	}
	return nil
}

// Close releases the pool.
func (a *Archiver) Close() {
	a.pool.Close()
}
