// Package locations stores driver position reports.
package locations

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "driver:location:"

// RedisLocationSink keeps the latest position report per driver in Redis.
// Only the most recent report matters for dispatching, so each write
// overwrites the previous one and expires on its own.
type RedisLocationSink struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocationSink creates a sink writing to the given Redis client.
// Reports older than ttl disappear; a zero ttl keeps them indefinitely.
func NewRedisLocationSink(client *redis.Client, ttl time.Duration) *RedisLocationSink {
	return &RedisLocationSink{client: client, ttl: ttl}
}

// Record stores the raw report body under the driver's key. The body is kept
// opaque: consumers parse it on the way out.
func (s *RedisLocationSink) Record(ctx context.Context, driverID kernel.ID, body []byte) error {
	return s.client.Set(ctx, keyPrefix+driverID.String(), body, s.ttl).Err()
}
