package links

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a process-wide minimum spacing between external
// lookup calls so the upstream search provider never sees a burst from
// this process. Acquire is timeout-bounded: instead of stalling a
// caller until a slot frees up, it refuses when the wait would exceed
// maxWait, and the resolver degrades to the generic search URL.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	maxWait  time.Duration
	next     time.Time
}

// NewLimiter creates a Limiter with the given minimum spacing between
// calls and the longest a single Acquire is allowed to wait.
func NewLimiter(interval, maxWait time.Duration) *Limiter {
	return &Limiter{interval: interval, maxWait: maxWait}
}

// Acquire reserves the next call slot. It returns false without
// blocking when the wait would exceed maxWait, and waits out the
// spacing otherwise. The reservation is made under the lock, so
// spacing holds globally even with concurrent callers; the wait itself
// happens outside it. A context cancellation during the wait also
// returns false.
func (l *Limiter) Acquire(ctx context.Context) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	now := time.Now()
	wait := l.next.Sub(now)
	if wait > l.maxWait {
		l.mu.Unlock()
		return false
	}
	if wait < 0 {
		wait = 0
		l.next = now.Add(l.interval)
	} else {
		l.next = l.next.Add(l.interval)
	}
	l.mu.Unlock()

	if wait == 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(wait):
		return true
	}
}
