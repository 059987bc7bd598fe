package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const contextKeyFmt = "convctx:%s"

// RedisStore keeps contexts as JSON blobs in redis with a TTL, for
// deployments where sessions must outlive a single process.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Context, error) {
	raw, err := s.rdb.Get(ctx, fmt.Sprintf(contextKeyFmt, sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("context lookup failed: %w", err)
	}
	var convCtx Context
	if err := json.Unmarshal(raw, &convCtx); err != nil {
		return nil, fmt.Errorf("corrupt context for session %s: %w", sessionID, err)
	}
	return &convCtx, nil
}

func (s *RedisStore) GetEnhanced(ctx context.Context, sessionID string) (*Context, error) {
	convCtx, err := s.Get(ctx, sessionID)
	if err != nil || convCtx == nil {
		return nil, err
	}
	// Get already unmarshals a fresh copy; the overlay clone keeps the
	// contract aligned with MemoryStore.
	return enhancedCopy(convCtx), nil
}

func (s *RedisStore) Put(ctx context.Context, convCtx *Context) error {
	raw, err := json.Marshal(convCtx)
	if err != nil {
		return fmt.Errorf("failed to marshal context: %w", err)
	}
	key := fmt.Sprintf(contextKeyFmt, convCtx.SessionID)
	return s.rdb.Set(ctx, key, raw, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, fmt.Sprintf(contextKeyFmt, sessionID)).Err()
}
