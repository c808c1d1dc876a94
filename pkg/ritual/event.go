package ritual

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PayloadKeyForced marks an event recorded by a forced reset.
const PayloadKeyForced = "forced"

// PayloadKeyResponse carries the prophecy text on the REVEALING event.
const PayloadKeyResponse = "response"

// Payload holds free-form key/value data attached to an event.
type Payload map[string]any

// Event is the immutable record of one committed transition.
type Event struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   Payload   `json:"payload,omitempty"`
}

// newEvent stamps a fresh event. The payload is copied so later mutation by
// the caller cannot reach into recorded history.
func newEvent(state State, sessionID string, payload Payload) Event {
	var p Payload
	if len(payload) > 0 {
		p = make(Payload, len(payload))
		for k, v := range payload {
			p[k] = v
		}
	}
	return Event{
		ID:        uuid.NewString(),
		State:     state,
		SessionID: sessionID,
		Timestamp: time.Now(),
		Payload:   p,
	}
}

// Forced reports whether the event was recorded by a forced reset.
func (e Event) Forced() bool {
	forced, _ := e.Payload[PayloadKeyForced].(bool)
	return forced
}

// Observer receives every committed transition of a machine, including forced
// resets, in registration order. Delivery is synchronous: a slow observer
// stalls its own session, nothing else. A panicking observer is isolated and
// never aborts the transition.
type Observer interface {
	OnTransition(ctx context.Context, event Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx context.Context, event Event)

func (f ObserverFunc) OnTransition(ctx context.Context, event Event) {
	f(ctx, event)
}
