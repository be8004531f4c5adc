package cache

import (
	"context"
	"time"
)

// WithMaxTTL wraps c so that no entry outlives max. A non-positive max
// returns c unchanged.
func WithMaxTTL(c Cache, max time.Duration) Cache {
	if max <= 0 {
		return c
	}
	return &limited{Cache: c, max: max}
}

type limited struct {
	Cache
	max time.Duration
}

func (l *limited) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > l.max {
		ttl = l.max
	}
	return l.Cache.Set(ctx, key, data, ttl)
}
