// Package kv is the key-value persistence layer with per-key TTL. Every
// record the service keeps outside Mongo goes through a Store.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by MustGet when the key is absent or expired.
var ErrNotFound = errors.New("kv: key not found")

// Store persists JSON-encodable values under string keys. A zero ttl means
// the key never expires.
type Store interface {
	// Get decodes the value at key into dest. It reports false when the key
	// does not exist.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// TTL returns the remaining lifetime of key, or zero when the key has no
	// expiry or does not exist.
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// MustGet is Get with a missing key turned into ErrNotFound.
func MustGet(ctx context.Context, s Store, key string, dest any) error {
	ok, err := s.Get(ctx, key, dest)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
