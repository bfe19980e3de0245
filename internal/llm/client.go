package llm

import "context"

// Message is one turn in the prompt sequence sent to a completion
// provider. Sequences begin with a single system message; after that the
// roles strictly alternate between user and assistant (the prompt builder
// guarantees this before any client sees the slice).
type Message struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client is the completion-provider boundary. Implementations must bound
// the round trip with an explicit timeout; a hung provider surfaces as an
// error, never as a stuck turn.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}
