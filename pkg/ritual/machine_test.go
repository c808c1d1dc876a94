package ritual_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
)

func TestTransitionTable_Total(t *testing.T) {
	for _, s := range ritual.States {
		next := ritual.AllowedNext(s)
		assert.NotEmpty(t, next, "state %s must have at least one successor", s)
		for _, n := range next {
			assert.True(t, n.Valid(), "successor of %s must be canonical", s)
		}
	}
}

func TestTransitionTable_CompleteHasTwoExits(t *testing.T) {
	next := ritual.AllowedNext(ritual.StateComplete)
	assert.ElementsMatch(t, []ritual.State{ritual.StateIdle, ritual.StateInvoked}, next)

	// All the others are linear.
	for _, s := range []ritual.State{ritual.StateIdle, ritual.StateInvoked, ritual.StateContemplating, ritual.StateRevealing} {
		assert.Len(t, ritual.AllowedNext(s), 1, "state %s", s)
	}
}

func TestMachine_InitializationEvent(t *testing.T) {
	m := ritual.New(context.Background(), "s1")

	assert.Equal(t, ritual.StateIdle, m.Current())
	assert.True(t, m.IsAcceptingInput())

	history := m.History()
	assert.Len(t, history, 1)
	assert.Equal(t, ritual.StateIdle, history[0].State)
	assert.Equal(t, "s1", history[0].SessionID)
	assert.False(t, history[0].Timestamp.IsZero())
}

func TestMachine_InvalidTransitionLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	m := ritual.New(ctx, "s1")

	for _, target := range []ritual.State{ritual.StateContemplating, ritual.StateRevealing, ritual.StateComplete, ritual.StateIdle} {
		_, err := m.Transition(ctx, target, nil)

		var invalid *ritual.InvalidTransitionError
		assert.ErrorAs(t, err, &invalid)
		assert.Equal(t, ritual.StateIdle, invalid.From)
		assert.Equal(t, target, invalid.To)

		assert.Equal(t, ritual.StateIdle, m.Current())
		assert.Len(t, m.History(), 1, "failed transition must not record an event")
	}
}

func TestMachine_FullCycle(t *testing.T) {
	ctx := context.Background()
	m := ritual.New(ctx, "s1")

	steps := []ritual.State{
		ritual.StateInvoked,
		ritual.StateContemplating,
		ritual.StateRevealing,
		ritual.StateComplete,
	}
	for _, target := range steps {
		event, err := m.Transition(ctx, target, nil)
		assert.NoError(t, err)
		assert.Equal(t, target, event.State)
		assert.Equal(t, target, m.Current())
	}

	// n transitions on a fresh machine leave n+1 events.
	assert.Len(t, m.History(), len(steps)+1)
	assert.True(t, m.IsAcceptingInput())

	// COMPLETE allows immediate re-invocation without a reset.
	_, err := m.Transition(ctx, ritual.StateInvoked, nil)
	assert.NoError(t, err)
}

func TestMachine_TransitionPayloadIsCopied(t *testing.T) {
	ctx := context.Background()
	m := ritual.New(ctx, "s1")

	payload := ritual.Payload{ritual.PayloadKeyResponse: "know thyself"}
	_, err := m.Transition(ctx, ritual.StateInvoked, payload)
	assert.NoError(t, err)

	payload[ritual.PayloadKeyResponse] = "mutated"

	history := m.History()
	assert.Equal(t, "know thyself", history[1].Payload[ritual.PayloadKeyResponse])
}

func TestMachine_ForceResetFromEveryState(t *testing.T) {
	ctx := context.Background()

	drive := map[ritual.State][]ritual.State{
		ritual.StateIdle:          {},
		ritual.StateInvoked:       {ritual.StateInvoked},
		ritual.StateContemplating: {ritual.StateInvoked, ritual.StateContemplating},
		ritual.StateRevealing:     {ritual.StateInvoked, ritual.StateContemplating, ritual.StateRevealing},
		ritual.StateComplete:      {ritual.StateInvoked, ritual.StateContemplating, ritual.StateRevealing, ritual.StateComplete},
	}

	for from, steps := range drive {
		m := ritual.New(ctx, "s1")
		for _, target := range steps {
			_, err := m.Transition(ctx, target, nil)
			assert.NoError(t, err)
		}
		assert.Equal(t, from, m.Current())

		before := len(m.History())
		event := m.ForceReset(ctx)

		assert.Equal(t, ritual.StateIdle, m.Current())
		assert.True(t, event.Forced())
		assert.Len(t, m.History(), before+1, "force reset from %s appends exactly one event", from)
	}
}

func TestMachine_ObserverOrderAndDelivery(t *testing.T) {
	ctx := context.Background()

	var got []string
	m := ritual.New(ctx, "s1",
		ritual.WithObserver(ritual.ObserverFunc(func(ctx context.Context, e ritual.Event) {
			got = append(got, "first:"+string(e.State))
		})),
		ritual.WithObserver(ritual.ObserverFunc(func(ctx context.Context, e ritual.Event) {
			got = append(got, "second:"+string(e.State))
		})),
	)

	// Construction itself notifies.
	assert.Equal(t, []string{"first:IDLE", "second:IDLE"}, got)

	got = nil
	_, err := m.Transition(ctx, ritual.StateInvoked, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"first:INVOKED", "second:INVOKED"}, got)
}

func TestMachine_PanickingObserverIsIsolated(t *testing.T) {
	ctx := context.Background()
	m := ritual.New(ctx, "s1")

	m.AddObserver(ritual.ObserverFunc(func(ctx context.Context, e ritual.Event) {
		panic("observer on fire")
	}))

	var delivered []ritual.State
	m.AddObserver(ritual.ObserverFunc(func(ctx context.Context, e ritual.Event) {
		delivered = append(delivered, e.State)
	}))

	_, err := m.Transition(ctx, ritual.StateInvoked, nil)
	assert.NoError(t, err)
	assert.Equal(t, ritual.StateInvoked, m.Current())
	assert.Equal(t, []ritual.State{ritual.StateInvoked}, delivered)

	event := m.ForceReset(ctx)
	assert.True(t, event.Forced())
	assert.Equal(t, []ritual.State{ritual.StateInvoked, ritual.StateIdle}, delivered)
}

func TestMachine_SnapshotDoesNotExposeInternals(t *testing.T) {
	ctx := context.Background()
	m := ritual.New(ctx, "s1")
	_, err := m.Transition(ctx, ritual.StateInvoked, nil)
	assert.NoError(t, err)

	snap := m.Snapshot()
	assert.Equal(t, ritual.StateInvoked, snap.CurrentState)
	assert.Equal(t, "s1", snap.SessionID)
	assert.False(t, snap.AcceptingInput)
	assert.Equal(t, 2, snap.HistoryLength)

	// History copies are isolated from the machine.
	history := m.History()
	history[0].State = ritual.StateComplete
	assert.Equal(t, ritual.StateIdle, m.History()[0].State)
}
