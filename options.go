package oracle

import (
	"log/slog"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/session"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/timing"
)

// Option configures the Oracle.
type Option func(*Oracle)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Oracle) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTiming overrides the pacing configuration. It is validated by New.
func WithTiming(cfg timing.Config) Option {
	return func(o *Oracle) {
		o.timingCfg = cfg
	}
}

// WithObservers registers observers on every machine the oracle creates,
// in the given order. Ignored when WithRegistry supplies a registry.
func WithObservers(observers ...ritual.Observer) Option {
	return func(o *Oracle) {
		o.observers = append(o.observers, observers...)
	}
}

// WithRegistry injects a pre-built session registry instead of the
// oracle constructing its own.
func WithRegistry(registry *session.Registry) Option {
	return func(o *Oracle) {
		o.extRegistry = registry
	}
}
