// Package cache stores search outcomes and rendered artifacts between runs.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for the HTTP server, and [NullCache] when caching is disabled. Keys are
// built by a [Keyer] so that every input affecting the cached value is part
// of the key.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// A miss is reported as (nil, false, nil), never as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes. Layout outcomes depend only on their key, so they live
// long; artifacts are large and expire sooner.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// GetJSON reads key and decodes it into v. It returns [ErrCacheMiss] when
// the key is absent or holds undecodable data.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok || json.Unmarshal(data, v) != nil {
		return ErrCacheMiss
	}
	return nil
}

// SetJSON encodes v and stores it under key. It returns the encoded size.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return len(data), c.Set(ctx, key, data, ttl)
}
