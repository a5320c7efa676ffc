package idgen

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

var ErrNilRedisClient = errors.New("redis client is nil")

// Sequence hands out strictly increasing record ids, starting at 1.
type Sequence interface {
	Next(ctx context.Context) (int64, error)
}

// AtomicSequence is an in-process counter.
type AtomicSequence struct {
	last atomic.Int64
}

func NewAtomicSequence() *AtomicSequence {
	return &AtomicSequence{}
}

func (s *AtomicSequence) Next(_ context.Context) (int64, error) {
	return s.last.Add(1), nil
}

// RedisSequence uses INCR on a single key so that every process sharing the
// Redis instance draws from the same counter.
type RedisSequence struct {
	client redis.UniversalClient
	key    string
}

func NewRedisSequence(client redis.UniversalClient, key string) (*RedisSequence, error) {
	if client == nil {
		return nil, ErrNilRedisClient
	}
	return &RedisSequence{
		client: client,
		key:    key,
	}, nil
}

func (r *RedisSequence) Next(ctx context.Context) (int64, error) {
	return r.client.Incr(ctx, r.key).Result()
}
