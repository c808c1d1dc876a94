// Package redis provides the Redis-backed event archive adapter.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
)

const defaultPrefix = "oracle:ritual:"

// Archive implements ports.EventArchive on a Redis list per session.
// Events are LPUSHed so index 0 is always the most recent.
type Archive struct {
	client *backend.Client
	prefix string
	cap    int64
}

// Option configures the archive.
type Option func(*Archive)

// WithPrefix sets the key prefix for session lists.
func WithPrefix(prefix string) Option {
	return func(a *Archive) {
		a.prefix = prefix
	}
}

// WithCap trims each session list to the newest n events after every append.
// Zero means unbounded.
func WithCap(n int64) Option {
	return func(a *Archive) {
		if n > 0 {
			a.cap = n
		}
	}
}

// New creates an archive with its own client.
func New(address, password string, db int, opts ...Option) *Archive {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates an archive over an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Archive {
	a := &Archive{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Archive) key(sessionID string) string {
	return a.prefix + sessionID
}

// Append records the event, enforcing the cap with LTRIM.
func (a *Archive) Append(ctx context.Context, event ritual.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := a.client.Pipeline()
	pipe.LPush(ctx, a.key(event.SessionID), data)
	if a.cap > 0 {
		pipe.LTrim(ctx, a.key(event.SessionID), 0, a.cap-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// Tail returns up to n events for the session, newest first.
func (a *Archive) Tail(ctx context.Context, sessionID string, n int64) ([]ritual.Event, error) {
	end := n - 1
	if n <= 0 {
		end = -1 // full list in LRANGE terms
	}
	raw, err := a.client.LRange(ctx, a.key(sessionID), 0, end).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read from redis: %w", err)
	}

	events := make([]ritual.Event, 0, len(raw))
	for _, item := range raw {
		var event ritual.Event
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			return nil, fmt.Errorf("corrupt archived event: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

// Purge deletes the session's list.
func (a *Archive) Purge(ctx context.Context, sessionID string) error {
	if err := a.client.Del(ctx, a.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to purge redis archive: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (a *Archive) Close() error {
	return a.client.Close()
}
