// Package engine wires the detection pipeline end to end: score the
// incoming message, derive the analysis bundle, advance the conversation
// state, merge the monotonic risk ledger, draft a reply and pass it
// through the governor, then persist the session with optimistic
// concurrency.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/DecoyDeskAI/warden/pkg/analysis"
	"github.com/DecoyDeskAI/warden/pkg/config"
	"github.com/DecoyDeskAI/warden/pkg/conversation"
	"github.com/DecoyDeskAI/warden/pkg/detect"
	"github.com/DecoyDeskAI/warden/pkg/governor"
	"github.com/DecoyDeskAI/warden/pkg/ledger"
	"github.com/DecoyDeskAI/warden/pkg/patterns"
	"github.com/DecoyDeskAI/warden/pkg/telemetry"
)

// ErrSessionNotFound is returned by EndSession for an unknown session.
var ErrSessionNotFound = errors.New("engine: session not found")

// TurnResult is everything one processed turn produced.
type TurnResult struct {
	SessionID string                 `json:"session_id"`
	Turn      int                    `json:"turn"`
	Reply     string                 `json:"reply"`
	State     conversation.State     `json:"state"`
	Scenario  string                 `json:"scenario,omitempty"`
	Detection detect.DetectionResult `json:"detection"`
	Analysis  analysis.Bundle        `json:"analysis"`
	Ledger    ledger.Ledger          `json:"ledger"`
	Decision  governor.Decision      `json:"decision"`
}

// ScanResult is the stateless single-message variant, with no session,
// reply, or ledger attached.
type ScanResult struct {
	Detection detect.DetectionResult `json:"detection"`
	Analysis  analysis.Bundle        `json:"analysis"`
}

// Engine runs the per-turn pipeline against a session store.
type Engine struct {
	cfg      *config.Config
	scorer   *detect.Scorer
	analyzer *analysis.Engine
	gov      *governor.Governor
	store    ledger.Store
	archiver *ledger.Archiver
	auditor  *telemetry.Auditor
	replies  ReplyGenerator
	fallback *FallbackGenerator
	log      *slog.Logger
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithArchiver attaches a session archiver used by EndSession.
func WithArchiver(a *ledger.Archiver) Option {
	return func(e *Engine) { e.archiver = a }
}

// WithAuditor attaches the audit trail writer.
func WithAuditor(a *telemetry.Auditor) Option {
	return func(e *Engine) { e.auditor = a }
}

// WithReplyGenerator overrides the primary reply generator. The local
// fallback still backs it up on error.
func WithReplyGenerator(g ReplyGenerator) Option {
	return func(e *Engine) { e.replies = g }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New builds an engine from config, a pattern registry (nil for the
// built-in catalogue) and a session store.
func New(cfg *config.Config, registry *patterns.Registry, store ledger.Store, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		scorer:   detect.NewScorer(cfg.Scoring, registry),
		analyzer: analysis.NewEngine(cfg.Scoring),
		gov:      governor.New(cfg.Governor),
		store:    store,
		fallback: NewFallbackGenerator(10),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.replies == nil {
		e.replies = e.fallback
	}
	return e
}

// NewSessionID mints a session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Scan runs detection and analysis over one message with optional prior
// history, touching no session state.
func (e *Engine) Scan(message string, history []detect.Turn) ScanResult {
	result := e.scorer.Score(message, history)
	bundle := e.analyzer.Analyze(message, history, result, false)
	return ScanResult{Detection: result, Analysis: bundle}
}

// ProcessMessage runs the full pipeline for one incoming message. An
// empty sessionID starts a new session. Concurrent turns for the same
// session serialize through the store's version check; on conflict the
// whole turn is recomputed against the fresh record, up to the
// configured retry budget.
func (e *Engine) ProcessMessage(ctx context.Context, sessionID, message string) (*TurnResult, error) {
	if sessionID == "" {
		sessionID = NewSessionID()
	}

	attempts := e.cfg.LedgerRetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		record, err := e.store.Get(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("engine: load session: %w", err)
		}
		if record == nil {
			record = ledger.NewSessionRecord(sessionID)
		}

		result, err := e.runTurn(ctx, record, message)
		if err != nil {
			return nil, err
		}

		if err := e.store.Save(ctx, record); err != nil {
			if errors.Is(err, ledger.ErrConflict) {
				lastErr = err
				e.log.Warn("session write conflict, retrying",
					slog.String("session_id", sessionID),
					slog.Int("attempt", attempt+1))
				continue
			}
			return nil, fmt.Errorf("engine: save session: %w", err)
		}

		e.audit(record, result)
		return result, nil
	}
	return nil, fmt.Errorf("engine: session %s: retries exhausted: %w", sessionID, lastErr)
}

// runTurn computes one turn against the given record and mutates the
// record in place. It does no I/O besides reply generation.
func (e *Engine) runTurn(ctx context.Context, record *ledger.SessionRecord, message string) (*TurnResult, error) {
	history := record.History

	result := e.scorer.Score(message, history)
	bundle := e.analyzer.Analyze(message, history, result, record.Ledger.ScamEverDetected)

	// The ledger and state machine consume the adjusted confidence so a
	// legitimacy-claim reduction is applied consistently.
	adjusted := result
	adjusted.Confidence = bundle.AdjustedConfidence

	newState, scenario := conversation.Transition(message, bundle.AdjustedConfidence, record.State)

	facts := ledger.TurnFacts(adjusted, newState >= conversation.StateTerminated, e.cfg.Scoring.DetectedProbabilityFloor)
	merged := ledger.Merge(record.Ledger, facts)

	repetition := detect.RepetitionCount(message, detect.UserTurns(history), e.cfg.Scoring.RepetitionSimilarity)
	if repetition > 0 {
		// The current message is one of the near-duplicates, so the
		// third identical message carries a count of 3.
		repetition++
	}
	aggression := conversation.AggressionDetected(message)

	accumulated := bundle.AdjustedConfidence
	if p := float64(merged.MaxScamProbability) / 100; p > accumulated {
		accumulated = p
	}

	proposed := e.draftReply(ctx, ReplyRequest{
		SessionID:   record.SessionID,
		UserMessage: message,
		State:       newState.String(),
		Archetype:   bundle.ScamArchetype,
		Turn:        record.TurnCount,
	})

	decision := e.gov.Govern(accumulated, proposed, governor.Input{
		State:           newState,
		Scenario:        scenario,
		UserMessage:     message,
		Aggression:      aggression,
		RepetitionCount: repetition,
		PriorMode:       merged.ResponseMode,
	})

	// The mode ladder and the state machine advance independently: a
	// governor termination latches ModeTerminate on the ledger but does
	// not rewrite the conversation state or its phase.
	merged = ledger.Merge(merged, ledger.Ledger{ResponseMode: decision.Mode})

	record.State = conversation.Max(record.State, newState)
	record.Ledger = merged
	record.History = append(record.History,
		detect.Turn{Role: detect.RoleUser, Content: message},
		detect.Turn{Role: detect.RoleAgent, Content: decision.FinalReply},
	)
	record.TurnCount++

	return &TurnResult{
		SessionID: record.SessionID,
		Turn:      record.TurnCount,
		Reply:     decision.FinalReply,
		State:     record.State,
		Scenario:  scenario,
		Detection: result,
		Analysis:  bundle,
		Ledger:    merged,
		Decision:  decision,
	}, nil
}

// draftReply asks the primary generator, falling back to the local one.
// Reply drafting never fails a turn; worst case the governor governs a
// canned stall.
func (e *Engine) draftReply(ctx context.Context, req ReplyRequest) string {
	reply, err := e.replies.Generate(ctx, req)
	if err == nil {
		return reply
	}
	e.log.Warn("reply generator failed, using local fallback",
		slog.String("session_id", req.SessionID),
		slog.String("error", err.Error()))
	reply, err = e.fallback.Generate(ctx, req)
	if err != nil {
		return governor.BlockedAcknowledgement
	}
	return reply
}

// GetSession returns the stored record for a session, or nil if absent.
func (e *Engine) GetSession(ctx context.Context, sessionID string) (*ledger.SessionRecord, error) {
	return e.store.Get(ctx, sessionID)
}

// EndSession archives (when an archiver is configured) and deletes a
// session. Archival failure aborts the delete so no record is lost.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	record, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("engine: load session: %w", err)
	}
	if record == nil {
		return ErrSessionNotFound
	}

	archived := false
	if e.archiver != nil {
		if err := e.archiver.Archive(ctx, record); err != nil {
			return fmt.Errorf("engine: archive session: %w", err)
		}
		archived = true
	}
	if err := e.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("engine: delete session: %w", err)
	}
	e.auditor.RecordSessionEnd(sessionID, record.TurnCount, archived)
	return nil
}

func (e *Engine) audit(record *ledger.SessionRecord, result *TurnResult) {
	e.auditor.RecordTurn(telemetry.TurnEvent{
		SessionID:   record.SessionID,
		Turn:        result.Turn,
		State:       result.State.String(),
		Phase:       result.Ledger.HighestPhase,
		Confidence:  result.Analysis.AdjustedConfidence,
		Probability: result.Ledger.MaxScamProbability,
		Decision:    result.Decision,
	})
}
