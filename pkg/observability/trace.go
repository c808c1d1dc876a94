package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
)

// TraceObserver attaches ritual transitions as span events to the span
// active on the incoming context. With no recording span it does nothing.
type TraceObserver struct{}

// NewTraceObserver creates a trace observer.
func NewTraceObserver() *TraceObserver {
	return &TraceObserver{}
}

func (o *TraceObserver) OnTransition(ctx context.Context, event ritual.Event) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent("ritual.transition", trace.WithAttributes(
		attribute.String("ritual.state", string(event.State)),
		attribute.String("ritual.session_id", event.SessionID),
		attribute.Bool("ritual.forced", event.Forced()),
	))
}
