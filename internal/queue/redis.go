package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis list jobs are dispatched through.
const DefaultKey = "leadpipe:jobs"

// dequeueBlock bounds each BRPOP so the worker loop can observe context
// cancellation between polls.
const dequeueBlock = 5 * time.Second

// Redis is a Queue backed by a Redis list (LPUSH/BRPOP). Durability follows
// the Redis persistence configuration. A consumer that crashes after BRPOP
// drops that delivery; the job stays in a non-terminal state and comes back
// through an explicit retry.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis creates a Redis-backed queue. An empty key falls back to
// DefaultKey.
func NewRedis(client *redis.Client, key string) *Redis {
	if key == "" {
		key = DefaultKey
	}
	return &Redis{client: client, key: key}
}

func (r *Redis) Enqueue(ctx context.Context, jobID string) error {
	if err := r.client.LPush(ctx, r.key, jobID).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", r.key, err)
	}
	return nil
}

func (r *Redis) Dequeue(ctx context.Context) (string, error) {
	res, err := r.client.BRPop(ctx, dequeueBlock, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil // idle, caller loops
		}
		return "", fmt.Errorf("brpop %s: %w", r.key, err)
	}
	// BRPOP returns [key, value].
	return res[1], nil
}
