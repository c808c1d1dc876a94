package memory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/adapters/memory"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
)

func event(session string, i int) ritual.Event {
	return ritual.Event{
		ID:        fmt.Sprintf("evt-%d", i),
		State:     ritual.StateInvoked,
		SessionID: session,
	}
}

func TestArchive_AppendAndTail(t *testing.T) {
	ctx := context.Background()
	archive := memory.NewArchive()

	for i := 0; i < 3; i++ {
		assert.NoError(t, archive.Append(ctx, event("s1", i)))
	}

	events, err := archive.Tail(ctx, "s1", 2)
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "evt-2", events[0].ID, "newest first")
	assert.Equal(t, "evt-1", events[1].ID)

	// n beyond the stored count returns everything.
	events, err = archive.Tail(ctx, "s1", 100)
	assert.NoError(t, err)
	assert.Len(t, events, 3)

	// Unknown session yields an empty tail.
	events, err = archive.Tail(ctx, "nope", 5)
	assert.NoError(t, err)
	assert.Empty(t, events)
}

func TestArchive_Cap(t *testing.T) {
	ctx := context.Background()
	archive := memory.NewArchive(memory.WithCap(2))

	for i := 0; i < 5; i++ {
		assert.NoError(t, archive.Append(ctx, event("s1", i)))
	}

	events, err := archive.Tail(ctx, "s1", 10)
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "evt-4", events[0].ID)
	assert.Equal(t, "evt-3", events[1].ID)
}

func TestArchive_Purge(t *testing.T) {
	ctx := context.Background()
	archive := memory.NewArchive()
	assert.NoError(t, archive.Append(ctx, event("s1", 0)))

	assert.NoError(t, archive.Purge(ctx, "s1"))
	events, err := archive.Tail(ctx, "s1", 10)
	assert.NoError(t, err)
	assert.Empty(t, events)
}
