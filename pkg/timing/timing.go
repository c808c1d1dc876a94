/*
Package timing implements the pacing side of a consultation: a randomized
contemplation window, the measured-latency reconciliation against it, and a
context-aware suspension.

The window is a floor, never a ceiling. A slow oracle is never cut short; a
fast one is held back until the window has passed.
*/
package timing

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Defaults for the pacing configuration.
const (
	DefaultContemplationMin    = 1500 * time.Millisecond
	DefaultContemplationMax    = 4 * time.Second
	DefaultCompleteToIdleHint  = 2 * time.Second
	DefaultExternalCallTimeout = 30 * time.Second
)

// Config holds the pacing knobs.
type Config struct {
	// ContemplationMin and ContemplationMax bound the randomized window.
	ContemplationMin time.Duration
	ContemplationMax time.Duration

	// CompleteToIdleHint is advisory for frontends that animate the
	// COMPLETE -> IDLE settling. The core never acts on it.
	CompleteToIdleHint time.Duration

	// ExternalCallTimeout bounds the response-generation call.
	ExternalCallTimeout time.Duration
}

// DefaultConfig returns the canonical pacing values.
func DefaultConfig() Config {
	return Config{
		ContemplationMin:    DefaultContemplationMin,
		ContemplationMax:    DefaultContemplationMax,
		CompleteToIdleHint:  DefaultCompleteToIdleHint,
		ExternalCallTimeout: DefaultExternalCallTimeout,
	}
}

// Validate checks the window invariants: 0 < min <= max, positive timeout.
func (c Config) Validate() error {
	if c.ContemplationMin <= 0 {
		return fmt.Errorf("contemplation_min must be positive, got %s", c.ContemplationMin)
	}
	if c.ContemplationMax < c.ContemplationMin {
		return fmt.Errorf("contemplation_max (%s) must not be below contemplation_min (%s)",
			c.ContemplationMax, c.ContemplationMin)
	}
	if c.ExternalCallTimeout <= 0 {
		return fmt.Errorf("external_call_timeout must be positive, got %s", c.ExternalCallTimeout)
	}
	return nil
}

// Coordinator draws contemplation windows for consultations.
type Coordinator struct {
	cfg    Config
	randFn func() float64
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRand injects the uniform source in [0, 1). Used by tests to pin draws.
func WithRand(fn func() float64) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.randFn = fn
		}
	}
}

// NewCoordinator validates cfg and returns a coordinator over it.
func NewCoordinator(cfg Config, opts ...Option) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timing config: %w", err)
	}
	c := &Coordinator{
		cfg:    cfg,
		randFn: rand.Float64,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the pacing configuration.
func (c *Coordinator) Config() Config {
	return c.cfg
}

// Draw returns a target delay drawn uniformly from [min, max].
// Every call is a fresh draw; nothing is memoized.
func (c *Coordinator) Draw() time.Duration {
	span := c.cfg.ContemplationMax - c.cfg.ContemplationMin
	if span == 0 {
		return c.cfg.ContemplationMin
	}
	return c.cfg.ContemplationMin + time.Duration(c.randFn()*float64(span))
}

// Remaining reconciles the drawn target against the measured elapsed time of
// the external call. It is the crux of the pacing algorithm: max(0, target -
// elapsed). A call slower than the window yields zero, never a negative hold
// and never a retroactively lengthened window.
func Remaining(target, elapsed time.Duration) time.Duration {
	if remaining := target - elapsed; remaining > 0 {
		return remaining
	}
	return 0
}
