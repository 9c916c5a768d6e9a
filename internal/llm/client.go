package llm

import (
	"context"
)

// Role is the author of a chat message.
type Role string

// Chat roles sent to the completion endpoint.
const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one entry of a chat-completion request.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for the chat-completion transport.
type Client interface {
	// Complete sends messages and returns the raw text of the first choice.
	Complete(ctx context.Context, messages []Message) (string, error)
}
