package ports

import "context"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a consultation conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Responder generates the oracle's answer to a conversation. Latency is
// unbounded unless the caller imposes a deadline through ctx; transport and
// provider failures are returned as errors.
type Responder interface {
	Respond(ctx context.Context, conversation []Message) (string, error)
}

// ResponderFunc adapts a plain function to the Responder interface.
type ResponderFunc func(ctx context.Context, conversation []Message) (string, error)

func (f ResponderFunc) Respond(ctx context.Context, conversation []Message) (string, error) {
	return f(ctx, conversation)
}
