package session_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/session"
)

func TestRegistry_GetOrCreate_Idempotent(t *testing.T) {
	ctx := context.Background()
	reg := session.NewRegistry()

	first := reg.GetOrCreate(ctx, "s1")
	second := reg.GetOrCreate(ctx, "s1")
	assert.Same(t, first, second)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_GetOrCreate_ConcurrentSingleMachine(t *testing.T) {
	ctx := context.Background()

	var inits atomic.Int32
	reg := session.NewRegistry(session.WithMachineObservers(
		ritual.ObserverFunc(func(ctx context.Context, e ritual.Event) {
			if e.State == ritual.StateIdle && !e.Forced() {
				inits.Add(1)
			}
		}),
	))

	const callers = 32
	machines := make([]*ritual.Machine, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			machines[i] = reg.GetOrCreate(ctx, "s2")
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Same(t, machines[0], machines[i])
	}
	assert.Equal(t, int32(1), inits.Load(), "exactly one initialization event")
	assert.Len(t, machines[0].History(), 1)
}

func TestRegistry_GetAndRemove(t *testing.T) {
	ctx := context.Background()
	reg := session.NewRegistry()

	_, err := reg.Get("missing")
	assert.ErrorIs(t, err, session.ErrNotFound)

	created := reg.GetOrCreate(ctx, "s1")
	got, err := reg.Get("s1")
	assert.NoError(t, err)
	assert.Same(t, created, got)

	reg.Remove("s1")
	_, err = reg.Get("s1")
	assert.ErrorIs(t, err, session.ErrNotFound)

	// Removing an absent session is a no-op.
	reg.Remove("s1")
}

func TestRegistry_List(t *testing.T) {
	ctx := context.Background()
	reg := session.NewRegistry()
	reg.GetOrCreate(ctx, "delphi")
	reg.GetOrCreate(ctx, "argos")

	assert.Equal(t, []string{"argos", "delphi"}, reg.List())
}

func TestRegistry_WithLock_SerializesSameSession(t *testing.T) {
	reg := session.NewRegistry()
	ctx := context.Background()

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.WithLock(ctx, "s1", func(ctx context.Context) error {
				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive, "same-session work must not overlap")
}

func TestRegistry_WithLock_IndependentSessions(t *testing.T) {
	reg := session.NewRegistry()
	ctx := context.Background()

	release := make(chan struct{})
	held := make(chan struct{})
	go func() {
		_ = reg.WithLock(ctx, "slow", func(ctx context.Context) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	// A different session is not blocked by the held lock.
	done := make(chan struct{})
	go func() {
		_ = reg.WithLock(ctx, "fast", func(ctx context.Context) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("independent session blocked behind another session's lock")
	}
	close(release)
}
