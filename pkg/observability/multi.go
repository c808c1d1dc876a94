package observability

import (
	"context"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
)

// Multi fans an event out to multiple observers in order.
type Multi struct {
	observers []ritual.Observer
}

// NewMulti creates a fan-out over all non-nil observers.
func NewMulti(observers ...ritual.Observer) *Multi {
	filtered := make([]ritual.Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	return &Multi{observers: filtered}
}

func (m *Multi) OnTransition(ctx context.Context, event ritual.Event) {
	for _, o := range m.observers {
		o.OnTransition(ctx, event)
	}
}

// Noop is an observer that ignores every event.
type Noop struct{}

func (Noop) OnTransition(ctx context.Context, event ritual.Event) {}
