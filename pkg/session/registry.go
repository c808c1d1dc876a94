package session

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/internal/logging"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
)

// ErrNotFound is returned when a session id has no machine in the registry.
var ErrNotFound = errors.New("session not found")

// lockEntry holds the per-session mutex and its reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Registry maps session ids to their ritual state machines.
// All methods are safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	machines map[string]*ritual.Machine
	locks    map[string]*lockEntry

	machineOpts []ritual.Option
	logger      *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithMachineObservers registers observers on every machine the registry
// creates, before the machine's initialization event fires.
func WithMachineObservers(observers ...ritual.Observer) Option {
	return func(r *Registry) {
		for _, o := range observers {
			if o != nil {
				r.machineOpts = append(r.machineOpts, ritual.WithObserver(o))
			}
		}
	}
}

// WithLogger sets the logger passed down to created machines.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		machines: make(map[string]*ritual.Machine),
		locks:    make(map[string]*lockEntry),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetOrCreate returns the machine for sessionID, constructing it on first
// use. The lookup-else-create is atomic: concurrent first calls for the same
// id observe a single machine and a single initialization event.
func (r *Registry) GetOrCreate(ctx context.Context, sessionID string) *ritual.Machine {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.machines[sessionID]; ok {
		return m
	}

	opts := append([]ritual.Option{ritual.WithLogger(r.logger)}, r.machineOpts...)
	m := ritual.New(ctx, sessionID, opts...)
	r.machines[sessionID] = m
	return m
}

// Get returns the machine for sessionID, or ErrNotFound.
func (r *Registry) Get(sessionID string) (*ritual.Machine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.machines[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

// Remove deletes the machine for sessionID if present. The removed machine's
// observers are not notified; removal is not a transition.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.machines, sessionID)
}

// List returns the registered session ids, sorted.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.machines))
	for id := range r.machines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered machines.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.machines)
}

// WithLock runs fn while holding the lock for sessionID. Consultations of the
// same session are serialized; different sessions proceed independently. The
// lock entry is reference counted and dropped when the last holder leaves.
func (r *Registry) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := r.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		r.release(sessionID)
	}()
	return fn(ctx)
}

// acquire gets or creates a lock entry and increments its reference count.
func (r *Registry) acquire(sessionID string) *lockEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.locks[sessionID]
	if !ok {
		entry = &lockEntry{}
		r.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count, deleting the entry at zero.
func (r *Registry) release(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.locks[sessionID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(r.locks, sessionID)
	}
}
