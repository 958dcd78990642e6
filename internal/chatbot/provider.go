package chatbot

import (
	"context"
	"time"

	"github.com/espacovida/clinic-chatbot/internal/sentiment"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation as kept in the history store.
type ChatMessage struct {
	Role      string            `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Sentiment *sentiment.Result `json:"sentiment,omitempty"`
}

// GenerateRequest carries everything a provider needs for one completion.
// History holds prior turns oldest first and never includes Message.
type GenerateRequest struct {
	SystemPrompt string
	History      []ChatMessage
	Message      string
}

// Provider is a single AI backend. Generate returns the reply text or an
// error; it must not return an empty string with a nil error.
type Provider interface {
	Name() string
	Configured() bool
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
