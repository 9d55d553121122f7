// Package links resolves merchant names to cancellation URLs: a
// curated known-merchant table first, then a persistent resolution
// cache, then a rate-limited web lookup, and finally a constructed
// search URL so resolution always produces something clickable.
package links

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/unsubby/backend/internal/engine"
	"github.com/unsubby/backend/internal/store"
)

// Config assembles a Resolver. Zero values get sensible defaults.
type Config struct {
	// Table maps merchant names to curated cancellation URLs. Nil
	// means the builtin table.
	Table map[string]string

	// Cache is the persistent resolution cache. Nil means a
	// process-local in-memory cache.
	Cache store.CacheStore

	// Threshold is the fuzzy-match boundary for table lookups.
	Threshold int

	// MinInterval is the process-wide spacing between external
	// lookups; MaxWait bounds how long one Resolve call may wait for
	// a lookup slot before degrading to the generic URL.
	MinInterval time.Duration
	MaxWait     time.Duration

	// LookupTimeout bounds a single external lookup call.
	LookupTimeout time.Duration

	// LookupBaseURL overrides the search endpoint (tests).
	LookupBaseURL string

	// DisableLookup turns off external lookups entirely; resolution
	// uses only the table, the cache and the generic URL.
	DisableLookup bool

	Logger zerolog.Logger
}

type tableEntry struct {
	name string // original table key, for logging
	key  string // normalized form, compared against lookups
	url  string
}

// Resolver owns the known-merchant table, the resolution cache and the
// lookup rate limiter. One Resolver is built at startup and shared by
// every analysis run in the process.
type Resolver struct {
	table     []tableEntry
	cache     store.CacheStore
	threshold int
	limiter   *Limiter
	client    *http.Client
	lookupURL string
	noLookup  bool
	log       zerolog.Logger
}

// NewResolver builds a Resolver from cfg.
func NewResolver(cfg Config) *Resolver {
	table := cfg.Table
	if table == nil {
		table, _ = LoadKnownMerchants("")
	}
	entries := make([]tableEntry, 0, len(table))
	for name, u := range table {
		entries = append(entries, tableEntry{
			name: name,
			key:  engine.NormalizeKey(name),
			url:  u,
		})
	}

	cache := cfg.Cache
	if cache == nil {
		cache = store.NewMemoryCache()
	}
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = engine.DefaultSimilarityThreshold
	}
	minInterval := cfg.MinInterval
	if minInterval <= 0 {
		minInterval = 2 * time.Second
	}
	maxWait := cfg.MaxWait
	if maxWait <= 0 {
		maxWait = 5 * time.Second
	}
	lookupTimeout := cfg.LookupTimeout
	if lookupTimeout <= 0 {
		lookupTimeout = 10 * time.Second
	}
	lookupURL := cfg.LookupBaseURL
	if lookupURL == "" {
		lookupURL = defaultLookupURL
	}

	return &Resolver{
		table:     entries,
		cache:     cache,
		threshold: threshold,
		limiter:   NewLimiter(minInterval, maxWait),
		client:    &http.Client{Timeout: lookupTimeout},
		lookupURL: lookupURL,
		noLookup:  cfg.DisableLookup,
		log:       cfg.Logger,
	}
}

// Resolve maps a merchant display name to a cancellation URL. It is
// total: every failure path degrades to the generic search URL, so the
// return value is never empty and resolution never surfaces an error.
//
// Resolution order, short-circuiting:
//  1. fuzzy best-match against the curated table (beats the cache, so
//     curated links win over previously discovered ones)
//  2. the resolution cache, by normalized merchant key
//  3. a rate-limited external lookup; discovered links are cached
//  4. the constructed search URL
func (r *Resolver) Resolve(ctx context.Context, merchant string) string {
	key := engine.NormalizeKey(merchant)

	if u, ok := r.lookupTable(key); ok {
		return u
	}

	if entry, ok, err := r.cache.Get(ctx, key); err != nil {
		r.log.Warn().Err(err).Str("merchant", merchant).Msg("link cache read failed")
	} else if ok {
		return entry.URL
	}

	if !r.noLookup && r.limiter.Acquire(ctx) {
		if u, err := r.discover(ctx, merchant); err != nil {
			r.log.Debug().Err(err).Str("merchant", merchant).Msg("external link lookup failed")
		} else if u != "" {
			if err := r.cache.Put(ctx, key, store.Entry{URL: u, ResolvedAt: time.Now()}); err != nil {
				r.log.Warn().Err(err).Str("merchant", merchant).Msg("link cache write failed")
			}
			return u
		}
	} else {
		r.log.Debug().Str("merchant", merchant).Msg("lookup rate limited, using generic link")
	}

	return GenericSearchURL(merchant)
}

// lookupTable scans the curated table for the best fuzzy match against
// the normalized merchant key.
func (r *Resolver) lookupTable(key string) (string, bool) {
	bestScore := 0
	bestURL := ""
	for _, e := range r.table {
		if score := engine.Similarity(key, e.key); score > bestScore {
			bestScore = score
			bestURL = e.url
		}
	}
	if bestScore > r.threshold {
		return bestURL, true
	}
	return "", false
}

// Invalidate drops a cached resolution so the next Resolve performs a
// fresh lookup.
func (r *Resolver) Invalidate(ctx context.Context, merchant string) {
	key := engine.NormalizeKey(merchant)
	if err := r.cache.Delete(ctx, key); err != nil {
		r.log.Warn().Err(err).Str("merchant", merchant).Msg("link cache invalidation failed")
	}
}

// Close flushes the resolution cache. Call on shutdown so file-backed
// caches persist what this run discovered.
func (r *Resolver) Close(ctx context.Context) error {
	return r.cache.Flush(ctx)
}
