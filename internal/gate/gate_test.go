package gate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordSleeps(g *Gate, slept *[]time.Duration) {
	g.sleep = func(_ context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
}

func TestWait_DrawsWithinBounds(t *testing.T) {
	g := New("gsm", 5*time.Second, 10*time.Second)
	var slept []time.Duration
	recordSleeps(g, &slept)

	for i := 0; i < 50; i++ {
		require.NoError(t, g.Wait(context.Background()))
	}

	require.Len(t, slept, 50)
	for _, d := range slept {
		assert.GreaterOrEqual(t, d, 5*time.Second)
		assert.LessOrEqual(t, d, 10*time.Second)
	}
}

func TestWait_UniformEndpoints(t *testing.T) {
	g := New("gsm", 2*time.Second, 4*time.Second)
	var slept []time.Duration
	recordSleeps(g, &slept)

	g.randFloat = func() float64 { return 0 }
	require.NoError(t, g.Wait(context.Background()))
	g.randFloat = func() float64 { return 0.999999 }
	require.NoError(t, g.Wait(context.Background()))

	require.Len(t, slept, 2)
	assert.Equal(t, 2*time.Second, slept[0])
	assert.Greater(t, slept[1], 3900*time.Millisecond)
}

func TestWait_ZeroBoundsDoNotSleep(t *testing.T) {
	g := New("test", 0, 0)
	start := time.Now()
	require.NoError(t, g.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWait_ContextCancelled(t *testing.T) {
	g := New("gsm", time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_ClampsInvertedBounds(t *testing.T) {
	g := New("gsm", 10*time.Second, 5*time.Second)
	min, max := g.Bounds()
	assert.Equal(t, 10*time.Second, min)
	assert.Equal(t, 10*time.Second, max)
}

func TestGates_AreIndependent(t *testing.T) {
	// Separate gates per source: draining one gate's delay must not affect
	// the other's.
	a := New("scopus", time.Second, time.Second)
	b := New("wos", 2*time.Second, 2*time.Second)

	var sleptA, sleptB []time.Duration
	recordSleeps(a, &sleptA)
	recordSleeps(b, &sleptB)

	require.NoError(t, a.Wait(context.Background()))
	require.NoError(t, b.Wait(context.Background()))

	assert.Equal(t, []time.Duration{time.Second}, sleptA)
	assert.Equal(t, []time.Duration{2 * time.Second}, sleptB)
}
