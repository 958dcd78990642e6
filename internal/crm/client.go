// Package crm syncs chatbot leads to external CRM systems. Syncing is
// strictly best-effort: the chat pipeline never waits on a CRM verdict to
// answer the user.
package crm

import (
	"context"

	"github.com/espacovida/clinic-chatbot/internal/sentiment"
)

// Lead is the chatbot-side view of a potential patient contact.
type Lead struct {
	SessionID string            `json:"session_id"`
	Name      string            `json:"name,omitempty"`
	Email     string            `json:"email,omitempty"`
	Phone     string            `json:"phone,omitempty"`
	Message   string            `json:"message"`
	Urgency   string            `json:"urgency"`
	Source    string            `json:"source"`
	Sentiment *sentiment.Result `json:"sentiment,omitempty"`
}

// Client is one CRM backend.
type Client interface {
	Name() string
	Configured() bool
	SyncLead(ctx context.Context, lead Lead) error
}
