// Package kvx is a small keyed store abstraction with per-entry TTLs.
//
// Correctness-sensitive transient state (the verified-token cache and the
// revocation block-list) must never live in a process-global map: the store
// is injected so a multi-process deployment can point it at a shared Redis
// without touching callers.
package kvx

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports a missing or expired key.
var ErrNotFound = errors.New("kvx: not found")

// Store is a keyed byte store with explicit TTLs. Implementations must be
// safe for concurrent use; redundant writes of equivalent values are benign.
type Store interface {
	// Get returns the value for key, or ErrNotFound on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A ttl <= 0 stores without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}
