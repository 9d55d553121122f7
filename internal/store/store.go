// Package store persists the cancellation-link resolution cache. The
// cache is the only state that outlives an analysis run: transaction
// data itself is never persisted.
package store

import (
	"context"
	"time"
)

// Entry is one cached resolution: the discovered cancellation URL and
// when it was resolved. Entries never expire automatically; callers
// that want a fresh lookup delete the key.
type Entry struct {
	URL        string    `json:"url" firestore:"url"`
	ResolvedAt time.Time `json:"resolvedAt" firestore:"resolvedAt"`
}

// CacheStore defines the operations the link resolver needs from its
// cache. Keys are normalized merchant keys. Implementations must be
// safe for concurrent use; simultaneous first-resolution of the same
// merchant may race, and last-write-wins is acceptable.
type CacheStore interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, entry Entry) error
	Delete(ctx context.Context, key string) error
	Entries(ctx context.Context) (map[string]Entry, error)

	// Flush forces any buffered state to durable storage. Backends
	// that write through on Put may treat it as a no-op.
	Flush(ctx context.Context) error
}
