package resilience

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreaker_OpensAtThreshold(t *testing.T) {
	b := NewBreaker(3)

	b.RecordFailure("blocked")
	b.RecordFailure("blocked")
	assert.True(t, b.Allow())

	b.RecordFailure("blocked")
	assert.False(t, b.Allow())
	assert.Equal(t, "blocked", b.Reason())
}

func TestBreaker_SuccessResetsStreak(t *testing.T) {
	b := NewBreaker(2)

	b.RecordFailure("blocked")
	b.RecordSuccess()
	b.RecordFailure("blocked")
	assert.True(t, b.Allow())

	b.RecordFailure("blocked")
	assert.False(t, b.Allow())
}

func TestBreaker_ForceOpen(t *testing.T) {
	b := NewBreaker(5)

	b.ForceOpen("auth rejected")
	assert.False(t, b.Allow())
	assert.Equal(t, "auth rejected", b.Reason())

	// First reason sticks.
	b.ForceOpen("something else")
	assert.Equal(t, "auth rejected", b.Reason())
}

func TestBreaker_NoReopenWithinRun(t *testing.T) {
	b := NewBreaker(1)
	b.RecordFailure("blocked")
	assert.False(t, b.Allow())

	b.RecordSuccess()
	assert.False(t, b.Allow(), "an open breaker stays open for the run")
}

func TestBreaker_DefaultThreshold(t *testing.T) {
	b := NewBreaker(0)
	b.RecordFailure("x")
	b.RecordFailure("x")
	assert.True(t, b.Allow())
	b.RecordFailure("x")
	assert.False(t, b.Allow())
}

func TestBreaker_Counters(t *testing.T) {
	b := NewBreaker(3)
	b.RecordFailure("x")
	failures, open := b.Counters()
	assert.Equal(t, 1, failures)
	assert.False(t, open)
}
