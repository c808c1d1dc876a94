package observability

import (
	"context"
	"log/slog"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/internal/logging"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ports"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
)

// ArchiveObserver copies every transition into an event archive. Append
// failures are logged and swallowed; archiving must never fail a transition.
type ArchiveObserver struct {
	archive ports.EventArchive
	logger  *slog.Logger
}

// NewArchiveObserver creates the observer. A nil logger discards failures.
func NewArchiveObserver(archive ports.EventArchive, logger *slog.Logger) *ArchiveObserver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ArchiveObserver{archive: archive, logger: logger}
}

func (o *ArchiveObserver) OnTransition(ctx context.Context, event ritual.Event) {
	if err := o.archive.Append(ctx, event); err != nil {
		o.logger.Error("event archive append failed",
			"session_id", event.SessionID,
			"state", event.State,
			"err", err,
		)
	}
}
