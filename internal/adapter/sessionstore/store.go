package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/observability/telemetry"
	"github.com/seu-repo/concierge-ai/internal/ports"
)

const keyPrefix = "session:"

// Store persists sessions as JSON through the shared cache, so the same
// code runs over Redis in production and the in-memory cache in
// development. TTL doubles as a storage-level backstop for the engine's
// idle-abandonment policy.
type Store struct {
	cache ports.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewStore(cache ports.Cache, ttl time.Duration, log *zap.Logger) ports.SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{cache: cache, ttl: ttl, log: log}
}

func (s *Store) Load(ctx context.Context, id string) (*domain.Session, error) {
	start := time.Now()
	defer func() {
		telemetry.SessionStoreLatency.Observe(time.Since(start).Seconds())
	}()

	raw, err := s.cache.Get(ctx, keyPrefix+id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		// a corrupt record is unrecoverable; treat as absent rather than
		// wedging the conversation forever
		s.log.Warn("discarding corrupt session record",
			zap.String("session_id", id),
			zap.Error(err))
		return nil, nil
	}
	return &sess, nil
}

func (s *Store) Save(ctx context.Context, session *domain.Session) error {
	start := time.Now()
	defer func() {
		telemetry.SessionStoreLatency.Observe(time.Since(start).Seconds())
	}()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", session.ID, err)
	}
	if err := s.cache.Set(ctx, keyPrefix+session.ID, data, s.ttl); err != nil {
		return fmt.Errorf("failed to save session %s: %w", session.ID, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, keyPrefix+id); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// isNotFound matches both redis.Nil and the local cache's miss errors
func isNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "redis: nil") ||
		strings.Contains(msg, "key not found") ||
		strings.Contains(msg, "key expired")
}
