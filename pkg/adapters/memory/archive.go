// Package memory provides the in-process event archive adapter.
package memory

import (
	"context"
	"sync"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
)

// Archive implements ports.EventArchive in memory.
// Safe for concurrent use.
type Archive struct {
	mu   sync.RWMutex
	data map[string][]ritual.Event
	cap  int
}

// Option configures the archive.
type Option func(*Archive)

// WithCap bounds the number of events retained per session; oldest events
// are dropped first. Zero means unbounded.
func WithCap(n int) Option {
	return func(a *Archive) {
		if n > 0 {
			a.cap = n
		}
	}
}

// NewArchive creates an empty in-memory archive.
func NewArchive(opts ...Option) *Archive {
	a := &Archive{
		data: make(map[string][]ritual.Event),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Append records the event under its session id, enforcing the cap.
func (a *Archive) Append(ctx context.Context, event ritual.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	events := append(a.data[event.SessionID], event)
	if a.cap > 0 && len(events) > a.cap {
		events = events[len(events)-a.cap:]
	}
	a.data[event.SessionID] = events
	return nil
}

// Tail returns up to n events for the session, newest first.
func (a *Archive) Tail(ctx context.Context, sessionID string, n int64) ([]ritual.Event, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	events := a.data[sessionID]
	if n <= 0 || n > int64(len(events)) {
		n = int64(len(events))
	}
	out := make([]ritual.Event, 0, n)
	for i := len(events) - 1; i >= len(events)-int(n); i-- {
		out = append(out, events[i])
	}
	return out, nil
}

// Purge removes all events for the session.
func (a *Archive) Purge(ctx context.Context, sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.data, sessionID)
	return nil
}
