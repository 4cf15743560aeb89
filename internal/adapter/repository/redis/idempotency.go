package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/hausledger/internal/infrastructure/metrics"
)

const idempotencyPrefix = "hausledger:idem:"

// placeholder marks a key that is claimed but whose response is not
// yet known. CheckAndSet returns it as a nil response so callers can
// distinguish "in flight" from "completed".
const placeholder = "processing"

// IdempotencyStore implements usecase.IdempotencyStore on Redis.
type IdempotencyStore struct {
	client  *redis.Client
	metrics *metrics.Metrics
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client, m *metrics.Metrics) *IdempotencyStore {
	return &IdempotencyStore{client: client, metrics: m}
}

// CheckAndSet atomically claims the key. If a response is already
// stored it is returned with exists=true; otherwise the key is locked
// with a placeholder (or the given response, when non-nil) and
// exists=false is returned.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := idempotencyPrefix + key
	s.observe("get")

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err == nil {
		if string(existing) == placeholder {
			return true, nil, nil
		}
		return true, existing, nil
	}
	if err != redis.Nil {
		s.observeErr("get")
		return false, nil, err
	}

	value := response
	if value == nil {
		value = []byte(placeholder)
	}

	s.observe("setnx")
	set, err := s.client.SetNX(ctx, fullKey, value, ttl).Result()
	if err != nil {
		s.observeErr("setnx")
		return false, nil, err
	}
	if !set {
		// Lost the race; surface whatever the winner stored.
		existing, err := s.client.Get(ctx, fullKey).Bytes()
		if err != nil && err != redis.Nil {
			s.observeErr("get")
			return false, nil, err
		}
		if string(existing) == placeholder {
			return true, nil, nil
		}
		return true, existing, nil
	}

	return false, nil, nil
}

// Update stores the final response for a previously claimed key.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.observe("set")
	if err := s.client.Set(ctx, idempotencyPrefix+key, response, ttl).Err(); err != nil {
		s.observeErr("set")
		return err
	}
	return nil
}

func (s *IdempotencyStore) observe(op string) {
	if s.metrics != nil {
		s.metrics.RedisOperations.WithLabelValues(op).Inc()
	}
}

func (s *IdempotencyStore) observeErr(op string) {
	if s.metrics != nil {
		s.metrics.RedisErrors.WithLabelValues(op).Inc()
	}
}
