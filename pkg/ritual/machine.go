package ritual

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/internal/logging"
)

// Machine is the per-session ritual state machine. It owns the current state,
// the append-only event history, and the ordered observer list.
//
// Transitions are expected to be driven sequentially by the orchestration of
// one session; reads (Snapshot, Current, History) are safe from any
// goroutine, so inspection endpoints never race a consultation in flight.
type Machine struct {
	sessionID string

	mu        sync.Mutex
	current   State
	history   []Event
	observers []Observer

	logger *slog.Logger
}

// Snapshot is a read-only view of a machine for external reporting.
type Snapshot struct {
	CurrentState   State  `json:"current_state"`
	SessionID      string `json:"session_id"`
	AcceptingInput bool   `json:"accepting_input"`
	HistoryLength  int    `json:"history_length"`
}

// Option configures a Machine.
type Option func(*Machine)

// WithObserver registers an observer before the initialization event fires,
// so it sees the machine's entire life including construction.
func WithObserver(o Observer) Option {
	return func(m *Machine) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}

// WithLogger sets the logger used to report isolated observer failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New constructs a machine at IDLE and emits its initialization event.
// History is therefore never empty.
func New(ctx context.Context, sessionID string, opts ...Option) *Machine {
	m := &Machine{
		sessionID: sessionID,
		current:   StateIdle,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	event := newEvent(StateIdle, sessionID, Payload{"initialized": true})
	m.history = append(m.history, event)
	m.logger.Info("ritual machine initialized", "session_id", sessionID)
	m.notify(ctx, m.observers, event)
	return m
}

// SessionID returns the immutable session key.
func (m *Machine) SessionID() string {
	return m.sessionID
}

// Current returns the current ritual state.
func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsAcceptingInput reports whether a new consultation may begin,
// directly or via the COMPLETE -> INVOKED shortcut.
func (m *Machine) IsAcceptingInput() bool {
	return m.Current().Accepting()
}

// Transition moves the machine to target if the edge is legal.
// On success the event is appended to history and delivered to every
// observer in registration order. On an illegal edge it returns
// *InvalidTransitionError and nothing is mutated or delivered.
func (m *Machine) Transition(ctx context.Context, target State, payload Payload) (Event, error) {
	m.mu.Lock()
	if !CanTransition(m.current, target) {
		err := &InvalidTransitionError{From: m.current, To: target}
		m.mu.Unlock()
		return Event{}, err
	}

	from := m.current
	m.current = target
	event := newEvent(target, m.sessionID, payload)
	m.history = append(m.history, event)
	observers := append([]Observer(nil), m.observers...)
	m.mu.Unlock()

	m.logger.Info("ritual transition",
		"session_id", m.sessionID,
		"from", from,
		"to", target,
	)
	m.notify(ctx, observers, event)
	return event, nil
}

// ForceReset unconditionally returns the machine to IDLE, bypassing the
// transition table. The recorded event carries a forced marker. Used only to
// recover a session stuck mid-ritual.
func (m *Machine) ForceReset(ctx context.Context) Event {
	m.mu.Lock()
	from := m.current
	m.current = StateIdle
	event := newEvent(StateIdle, m.sessionID, Payload{PayloadKeyForced: true})
	m.history = append(m.history, event)
	observers := append([]Observer(nil), m.observers...)
	m.mu.Unlock()

	m.logger.Warn("ritual force reset",
		"session_id", m.sessionID,
		"from", from,
	)
	m.notify(ctx, observers, event)
	return event
}

// AddObserver registers an observer for subsequent transitions.
func (m *Machine) AddObserver(o Observer) {
	if o == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// History returns a copy of the event history, oldest first.
// The core never trims it; retention is an archive concern.
func (m *Machine) History() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.history))
	copy(out, m.history)
	return out
}

// Snapshot returns a read-only view of the machine.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		CurrentState:   m.current,
		SessionID:      m.sessionID,
		AcceptingInput: m.current.Accepting(),
		HistoryLength:  len(m.history),
	}
}

// notify delivers the event to each observer in order. A panicking observer
// is logged and skipped; it never unwinds the transition or starves the
// observers registered after it.
func (m *Machine) notify(ctx context.Context, observers []Observer, event Event) {
	for _, o := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.logger.Error("ritual observer panicked",
						"session_id", m.sessionID,
						"state", event.State,
						"panic", r,
					)
				}
			}()
			o.OnTransition(ctx, event)
		}()
	}
}
