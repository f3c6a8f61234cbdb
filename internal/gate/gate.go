// Package gate enforces a randomized minimum interval between outbound
// requests to a rate-sensitive source.
package gate

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Gate blocks callers for a delay drawn uniformly from [min, max] before
// each outbound request. Each source owns its own Gate: a delay on one
// source must not influence another's cadence, since quotas are
// source-scoped.
type Gate struct {
	source string
	min    time.Duration
	max    time.Duration

	// injectable for tests
	randFloat func() float64
	sleep     func(ctx context.Context, d time.Duration) error
}

// New creates a Gate for the named source. A max below min is clamped to min.
func New(source string, min, max time.Duration) *Gate {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	return &Gate{
		source:    source,
		min:       min,
		max:       max,
		randFloat: rand.Float64,
		sleep:     sleepCtx,
	}
}

// Wait blocks for the drawn delay or until ctx is done. It has no side
// effects beyond elapsed time.
func (g *Gate) Wait(ctx context.Context) error {
	d := g.min + time.Duration(g.randFloat()*float64(g.max-g.min))
	if d > 0 {
		zap.L().Debug("politeness wait",
			zap.String("source", g.source),
			zap.Duration("delay", d),
		)
	}
	return g.sleep(ctx, d)
}

// Bounds returns the configured interval.
func (g *Gate) Bounds() (min, max time.Duration) {
	return g.min, g.max
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
