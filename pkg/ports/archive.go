package ports

import (
	"context"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
)

// EventArchive persists transition events outside the machine's in-memory
// history. The machine itself never trims; an archive with a cap is the
// documented retention policy for long-lived processes.
type EventArchive interface {
	// Append records one event for its session.
	Append(ctx context.Context, event ritual.Event) error

	// Tail returns up to n archived events for the session, newest first.
	Tail(ctx context.Context, sessionID string, n int64) ([]ritual.Event, error)

	// Purge removes every archived event for the session.
	Purge(ctx context.Context, sessionID string) error
}
