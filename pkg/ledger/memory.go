package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DecoyDeskAI/warden/pkg/detect"
)

// MemoryStore implements Store with in-memory storage. Suitable for
// single-node deployments and tests; distributed deployments use the
// Redis-backed store.
//
// Features:
//   - Concurrent-safe session access
//   - Automatic TTL expiration (default: 1 hour)
//   - Optimistic version check so concurrent turns cannot clobber the
//     monotonic ledger fields
type MemoryStore struct {
	sessions map[string]*SessionRecord
	mu       sync.RWMutex

	maxAge     time.Duration // Session TTL (default: 1 hour)
	cleanupTTL time.Duration // Cleanup interval (default: 5 minutes)

	stopCleanup chan struct{}
	cleanupOnce sync.Once
}

// MemoryStoreOption is a functional option for configuring MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithMaxAge sets the maximum idle age for sessions before cleanup.
func WithMaxAge(d time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.maxAge = d
	}
}

// WithCleanupInterval sets how often the cleanup routine runs.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.cleanupTTL = d
	}
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		sessions:    make(map[string]*SessionRecord),
		maxAge:      1 * time.Hour,
		cleanupTTL:  5 * time.Minute,
		stopCleanup: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	go s.cleanupLoop()

	return s
}

// Get retrieves a session by ID. Returns nil, nil if not found.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}

	// Stale sessions are treated as not found; actual removal happens in
	// the cleanup loop.
	if !record.LastTurnAt.IsZero() && time.Since(record.LastTurnAt) > s.maxAge {
		return nil, nil
	}

	return copyRecord(record), nil
}

// Save creates or updates a session with an optimistic version check.
func (s *MemoryStore) Save(_ context.Context, record *SessionRecord) error {
	if record == nil {
		return fmt.Errorf("session record is nil")
	}
	if record.SessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.sessions[record.SessionID]
	switch {
	case !exists && record.Version != 0:
		return ErrConflict
	case exists && stored.Version != record.Version:
		return ErrConflict
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	record.LastTurnAt = time.Now().UTC()
	record.Version++

	s.sessions[record.SessionID] = copyRecord(record)
	return nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.cleanupOnce.Do(func() {
		close(s.stopCleanup)
	})
	return nil
}

// Len returns the current session count.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, record := range s.sessions {
		if !record.LastTurnAt.IsZero() && now.Sub(record.LastTurnAt) > s.maxAge {
			delete(s.sessions, id)
		}
	}
}

// copyRecord returns a deep copy so callers never share history slices
// with the stored record.
func copyRecord(r *SessionRecord) *SessionRecord {
	cp := *r
	if r.History != nil {
		cp.History = append([]detect.Turn{}, r.History...)
	}
	return &cp
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
