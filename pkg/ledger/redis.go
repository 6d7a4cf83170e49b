package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix namespaces session records in Redis.
const sessionKeyPrefix = "warden:session:"

// RedisStore implements Store on Redis for multi-node deployments.
// Optimistic concurrency uses WATCH: a competing write between read and
// commit fails the transaction and surfaces as ErrConflict, so the
// caller retries with fresh prior values and the monotonic invariants
// survive concurrent turns.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store. ttl <= 0 disables
// key expiry.
func NewRedisStore(addr, password string, db int, ttl time.Duration) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisStoreWithClient wraps an existing client (used by tests with
// miniredis).
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Ping verifies connectivity at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get retrieves a session by ID. Returns nil, nil if not found.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*SessionRecord, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var record SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &record, nil
}

// Save writes the record inside a WATCHed transaction, comparing the
// stored version against the version this record was read at.
func (s *RedisStore) Save(ctx context.Context, record *SessionRecord) error {
	if record == nil {
		return fmt.Errorf("session record is nil")
	}
	if record.SessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	key := sessionKeyPrefix + record.SessionID
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	record.LastTurnAt = time.Now().UTC()

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			if record.Version != 0 {
				return ErrConflict
			}
		case err != nil:
			return fmt.Errorf("redis read for cas: %w", err)
		default:
			var stored SessionRecord
			if err := json.Unmarshal(data, &stored); err != nil {
				return fmt.Errorf("decode stored session: %w", err)
			}
			if stored.Version != record.Version {
				return ErrConflict
			}
		}

		next := *record
		next.Version++
		payload, err := json.Marshal(&next)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		return err
	}

	err := s.client.Watch(ctx, txn, key)
	if errors.Is(err, redis.TxFailedErr) {
		// Another turn committed between our read and write.
		return ErrConflict
	}
	if err != nil {
		return err
	}

	record.Version++
	return nil
}

// Delete removes a session.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
