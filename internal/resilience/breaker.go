// Package resilience guards sources against wasted calls once they are
// known to be failing for the rest of a run.
package resilience

import "sync"

// Breaker disables a source after sustained tripping failures. Unlike a
// classic circuit breaker there is no half-open probe: within one collection
// run a source that is blocking or rejecting credentials stays disabled, and
// remaining venues are marked skipped instead of hammering it.
type Breaker struct {
	mu        sync.Mutex
	threshold int

	consecutiveFailures int
	open                bool
	reason              string
}

// NewBreaker creates a Breaker that opens after threshold consecutive
// tripping failures. A non-positive threshold defaults to 3.
func NewBreaker(threshold int) *Breaker {
	if threshold <= 0 {
		threshold = 3
	}
	return &Breaker{threshold: threshold}
}

// Allow reports whether the source may still be called.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.open
}

// RecordFailure counts one tripping failure and opens the breaker once the
// threshold of consecutive failures is reached.
func (b *Breaker) RecordFailure(reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.open {
		return
	}
	b.consecutiveFailures++
	if b.consecutiveFailures >= b.threshold {
		b.open = true
		b.reason = reason
	}
}

// RecordSuccess resets the consecutive failure count. Any non-tripping
// outcome breaks a blocked streak.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.open {
		b.consecutiveFailures = 0
	}
}

// ForceOpen disables the source immediately, regardless of the failure
// count. Used on the first credential rejection: every later call would fail
// identically and burn quota for nothing.
func (b *Breaker) ForceOpen(reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.open {
		b.open = true
		b.reason = reason
	}
}

// Reason returns why the breaker opened, or "" while it is closed.
func (b *Breaker) Reason() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reason
}

// Counters exposes the failure count and open state for observability.
func (b *Breaker) Counters() (consecutiveFailures int, open bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.consecutiveFailures, b.open
}
