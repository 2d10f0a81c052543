// Package cache provides the short-TTL byte cache backing report endpoints.
// Reports are recomputed from transactional rows on every miss, so a lost
// cache never changes results, only latency.
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache: key not found")

// BytesCache stores rendered report payloads keyed by their query shape.
type BytesCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}
