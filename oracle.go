package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/internal/logging"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ports"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/session"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/timing"
)

// Version of the service.
const Version = "1.0.0"

// DefaultSessionID is used when the caller does not scope the consultation.
const DefaultSessionID = "default"

// ExternalCallError wraps a failure of the response-generation collaborator,
// including timeouts. The session is left in CONTEMPLATING and recovers via
// forced reset on the next consultation.
type ExternalCallError struct {
	Err error
}

func (e *ExternalCallError) Error() string {
	return "external call failed: " + e.Err.Error()
}

func (e *ExternalCallError) Unwrap() error {
	return e.Err
}

// Oracle is the consultation orchestrator.
type Oracle struct {
	registry      *session.Registry
	responder     ports.Responder
	timing        *timing.Coordinator
	conversations *conversationStore
	logger        *slog.Logger

	// collected before the registry exists, see New
	observers   []ritual.Observer
	timingCfg   timing.Config
	extRegistry *session.Registry
}

// New creates an Oracle over the given responder.
func New(responder ports.Responder, opts ...Option) (*Oracle, error) {
	if responder == nil {
		return nil, fmt.Errorf("oracle: responder is required")
	}

	o := &Oracle{
		responder:     responder,
		conversations: newConversationStore(),
		logger:        logging.NewNop(),
		timingCfg:     timing.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}

	coord, err := timing.NewCoordinator(o.timingCfg)
	if err != nil {
		return nil, fmt.Errorf("oracle: %w", err)
	}
	o.timing = coord

	if o.extRegistry != nil {
		o.registry = o.extRegistry
	} else {
		o.registry = session.NewRegistry(
			session.WithLogger(o.logger),
			session.WithMachineObservers(o.observers...),
		)
	}
	return o, nil
}

// Registry exposes the session registry for inspection and tests.
func (o *Oracle) Registry() *session.Registry {
	return o.registry
}

// Timing returns the pacing configuration in effect.
func (o *Oracle) Timing() timing.Config {
	return o.timing.Config()
}

// Consult runs one full consultation for the session: validate or repair the
// entry state, walk INVOKED and CONTEMPLATING, invoke the responder while the
// contemplation window runs, sleep out whatever remains of the window, then
// reveal and complete. Returns the prophecy and a snapshot of the machine.
//
// Consultations of the same session are serialized; other sessions are never
// blocked, and the contemplation hold suspends only this session's goroutine.
func (o *Oracle) Consult(ctx context.Context, sessionID, message string) (string, ritual.Snapshot, error) {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	var (
		response string
		snap     ritual.Snapshot
	)
	err := o.registry.WithLock(ctx, sessionID, func(ctx context.Context) error {
		machine := o.registry.GetOrCreate(ctx, sessionID)

		// Self-healing: a session abandoned mid-ritual is reset rather
		// than rejected.
		if !machine.IsAcceptingInput() {
			o.logger.Warn("session stuck mid-ritual, forcing reset",
				"session_id", sessionID,
				"state", machine.Current(),
			)
			machine.ForceReset(ctx)
		}

		if _, err := machine.Transition(ctx, ritual.StateInvoked, nil); err != nil {
			return err
		}
		if _, err := machine.Transition(ctx, ritual.StateContemplating, nil); err != nil {
			return err
		}

		target := o.timing.Draw()
		conversation := o.conversations.withUser(sessionID, message)

		callCtx, cancel := context.WithTimeout(ctx, o.timing.Config().ExternalCallTimeout)
		start := time.Now()
		text, err := o.responder.Respond(callCtx, conversation)
		elapsed := time.Since(start)
		cancel()
		if err != nil {
			// Machine stays in CONTEMPLATING; the next consultation
			// recovers it through the reset above.
			return &ExternalCallError{Err: err}
		}

		if remaining := timing.Remaining(target, elapsed); remaining > 0 {
			o.logger.Debug("holding revelation",
				"session_id", sessionID,
				"target", target,
				"elapsed", elapsed,
				"remaining", remaining,
			)
			if err := timing.Wait(ctx, remaining); err != nil {
				return err
			}
		}

		if _, err := machine.Transition(ctx, ritual.StateRevealing, ritual.Payload{ritual.PayloadKeyResponse: text}); err != nil {
			return err
		}
		if _, err := machine.Transition(ctx, ritual.StateComplete, nil); err != nil {
			return err
		}

		o.conversations.commit(sessionID, message, text)
		response = text
		snap = machine.Snapshot()
		return nil
	})
	if err != nil {
		return "", ritual.Snapshot{}, fmt.Errorf("consult %q: %w", sessionID, err)
	}
	return response, snap, nil
}

// Snapshot returns the machine view for a session, or session.ErrNotFound.
func (o *Oracle) Snapshot(sessionID string) (ritual.Snapshot, error) {
	machine, err := o.registry.Get(sessionID)
	if err != nil {
		return ritual.Snapshot{}, err
	}
	return machine.Snapshot(), nil
}

// Sessions lists the known session ids.
func (o *Oracle) Sessions() []string {
	return o.registry.List()
}

// Transcript returns the committed conversation turns for a session,
// oldest first. Failed consultations leave no turns behind.
func (o *Oracle) Transcript(sessionID string) []ports.Message {
	return o.conversations.transcript(sessionID)
}

// Forget removes the session's machine and its conversation memory.
func (o *Oracle) Forget(sessionID string) {
	o.registry.Remove(sessionID)
	o.conversations.forget(sessionID)
}
