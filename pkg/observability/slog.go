package observability

import (
	"context"
	"log/slog"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
)

// SlogObserver logs every transition through a slog.Logger.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates an observer emitting to logger.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) OnTransition(ctx context.Context, event ritual.Event) {
	level := slog.LevelInfo
	if event.Forced() {
		level = slog.LevelWarn
	}
	o.logger.Log(ctx, level, "ritual event",
		"session_id", event.SessionID,
		"state", event.State,
		"event_id", event.ID,
		"forced", event.Forced(),
	)
}
