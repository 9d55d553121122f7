package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const linkCacheCollection = "linkCache"

// FirestoreCache implements CacheStore on Firestore, one document per
// normalized merchant key. Writes go through immediately, so the cache
// is shared across processes and survives restarts without a Flush.
type FirestoreCache struct {
	client *firestore.Client
}

// NewFirestoreCache creates a Firestore-backed cache.
func NewFirestoreCache(client *firestore.Client) *FirestoreCache {
	return &FirestoreCache{client: client}
}

func (c *FirestoreCache) Get(ctx context.Context, key string) (Entry, bool, error) {
	if key == "" {
		// Firestore forbids empty document IDs; an empty merchant key
		// simply never hits the durable cache.
		return Entry{}, false, nil
	}
	doc, err := c.client.Collection(linkCacheCollection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("get link cache entry %q: %w", key, err)
	}

	var e Entry
	if err := doc.DataTo(&e); err != nil {
		return Entry{}, false, fmt.Errorf("decode link cache entry %q: %w", key, err)
	}
	return e, true, nil
}

func (c *FirestoreCache) Put(ctx context.Context, key string, entry Entry) error {
	if key == "" {
		return nil
	}
	if _, err := c.client.Collection(linkCacheCollection).Doc(key).Set(ctx, entry); err != nil {
		return fmt.Errorf("put link cache entry %q: %w", key, err)
	}
	return nil
}

func (c *FirestoreCache) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if _, err := c.client.Collection(linkCacheCollection).Doc(key).Delete(ctx); err != nil {
		return fmt.Errorf("delete link cache entry %q: %w", key, err)
	}
	return nil
}

func (c *FirestoreCache) Entries(ctx context.Context) (map[string]Entry, error) {
	out := make(map[string]Entry)
	iter := c.client.Collection(linkCacheCollection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list link cache entries: %w", err)
		}
		var e Entry
		if err := doc.DataTo(&e); err != nil {
			return nil, fmt.Errorf("decode link cache entry %q: %w", doc.Ref.ID, err)
		}
		out[doc.Ref.ID] = e
	}
	return out, nil
}

// Flush is a no-op: Firestore writes are durable on Put.
func (c *FirestoreCache) Flush(_ context.Context) error {
	return nil
}
