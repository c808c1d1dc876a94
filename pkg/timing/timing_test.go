package timing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/timing"
)

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, timing.DefaultConfig().Validate())

	cfg := timing.DefaultConfig()
	cfg.ContemplationMin = 0
	assert.Error(t, cfg.Validate())

	cfg = timing.DefaultConfig()
	cfg.ContemplationMax = cfg.ContemplationMin - time.Millisecond
	assert.Error(t, cfg.Validate())

	cfg = timing.DefaultConfig()
	cfg.ExternalCallTimeout = 0
	assert.Error(t, cfg.Validate())

	// Degenerate window (min == max) is legal.
	cfg = timing.DefaultConfig()
	cfg.ContemplationMax = cfg.ContemplationMin
	assert.NoError(t, cfg.Validate())
}

func TestCoordinator_DrawWithinBounds(t *testing.T) {
	cfg := timing.Config{
		ContemplationMin:    100 * time.Millisecond,
		ContemplationMax:    400 * time.Millisecond,
		ExternalCallTimeout: time.Second,
	}
	coord, err := timing.NewCoordinator(cfg)
	require.NoError(t, err)

	seen := make(map[time.Duration]bool)
	for i := 0; i < 200; i++ {
		d := coord.Draw()
		assert.GreaterOrEqual(t, d, cfg.ContemplationMin)
		assert.LessOrEqual(t, d, cfg.ContemplationMax)
		seen[d] = true
	}
	// Statistical spread: 200 uniform draws over 300ms collapsing to a
	// couple of values would mean the source is broken.
	assert.Greater(t, len(seen), 10, "draws should not be constant")
}

func TestCoordinator_DrawDegenerateWindow(t *testing.T) {
	cfg := timing.Config{
		ContemplationMin:    250 * time.Millisecond,
		ContemplationMax:    250 * time.Millisecond,
		ExternalCallTimeout: time.Second,
	}
	coord, err := timing.NewCoordinator(cfg)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.Equal(t, 250*time.Millisecond, coord.Draw())
	}
}

func TestCoordinator_InjectedRand(t *testing.T) {
	cfg := timing.Config{
		ContemplationMin:    100 * time.Millisecond,
		ContemplationMax:    200 * time.Millisecond,
		ExternalCallTimeout: time.Second,
	}
	coord, err := timing.NewCoordinator(cfg, timing.WithRand(func() float64 { return 0.5 }))
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, coord.Draw())
}

func TestRemaining_FloorNotCeiling(t *testing.T) {
	// Fast call: the remainder tops up the window.
	assert.Equal(t, 900*time.Millisecond, timing.Remaining(time.Second, 100*time.Millisecond))

	// Slow call: window already exceeded, nothing is added.
	assert.Equal(t, time.Duration(0), timing.Remaining(time.Second, 5*time.Second))

	// Exact hit.
	assert.Equal(t, time.Duration(0), timing.Remaining(time.Second, time.Second))
}

func TestWait_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := timing.Wait(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)

	// Non-positive durations return without suspending.
	start := time.Now()
	assert.NoError(t, timing.Wait(context.Background(), 0))
	assert.NoError(t, timing.Wait(context.Background(), -time.Second))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestWait_Sleeps(t *testing.T) {
	start := time.Now()
	assert.NoError(t, timing.Wait(context.Background(), 60*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}
