// Package store provides the key/value persistence used by the ledgers:
// a Valkey-backed implementation for deployments and a process-lifetime
// in-memory implementation used as fallback so the pipeline stays operable
// without the external store (at the cost of losing state across restarts).
package store

import (
	"context"
	"time"
)

// Store is a minimal key/value contract. Values are serialized documents;
// a zero TTL means the key never expires.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores the value, expiring it after ttl when ttl > 0.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
