package tickets

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/espacovida/clinic-chatbot/internal/crm"
	"github.com/espacovida/clinic-chatbot/internal/notify"
	"github.com/espacovida/clinic-chatbot/internal/observability/metrics"
	"github.com/espacovida/clinic-chatbot/internal/sentiment"
	"github.com/espacovida/clinic-chatbot/internal/textutil"
	"github.com/espacovida/clinic-chatbot/pkg/logging"
)

var escalationTracer = otel.Tracer("clinic/escalation")

const titleMaxLen = 50

var highPriorityKeywords = []string{
	"emergência", "urgente", "socorro", "ajuda", "crise",
	"overdose", "suicídio", "morte", "morrer", "desespero",
	"não aguento", "vou me matar", "acabar com tudo",
}

var mediumPriorityKeywords = []string{
	"internação", "internar", "tratamento", "dependência",
	"vício", "drogas", "álcool", "bebida", "cocaína",
	"crack", "maconha", "remédio", "medicamento",
}

// DerivePriority is the single place a message's ticket priority comes
// from. Keyword matches set the base level; a strongly negative sentiment
// with crisis keywords forces alta, a moderately negative one lifts baixa
// to media.
func DerivePriority(message string, analysis sentiment.Result) string {
	priority := PriorityLow
	switch {
	case textutil.ContainsAnyKeyword(message, highPriorityKeywords):
		priority = PriorityHigh
	case textutil.ContainsAnyKeyword(message, mediumPriorityKeywords):
		priority = PriorityMedium
	}

	switch {
	case analysis.Polarity < -0.5 && analysis.HasEmergencyKeywords():
		priority = PriorityHigh
	case analysis.Polarity < -0.3 && priority == PriorityLow:
		priority = PriorityMedium
	}

	return priority
}

// LeadSyncer pushes a chatbot lead into an external CRM.
type LeadSyncer interface {
	SyncLead(ctx context.Context, lead crm.Lead) bool
}

// Escalator opens a ticket for the first message of every session and
// syncs a lead to the CRM for each message. All of it is best-effort: the
// chat reply never waits on a failure here.
type Escalator struct {
	store    *Store
	crm      LeadSyncer
	notifier *notify.TicketNotifier
	logger   *logging.Logger
	metrics  *metrics.ChatMetrics
}

func NewEscalator(store *Store, leadSyncer LeadSyncer, notifier *notify.TicketNotifier, logger *logging.Logger, m *metrics.ChatMetrics) *Escalator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Escalator{
		store:    store,
		crm:      leadSyncer,
		notifier: notifier,
		logger:   logger,
		metrics:  m,
	}
}

// HandleMessage runs the escalation side effects for one inbound message.
func (e *Escalator) HandleMessage(ctx context.Context, sessionID, message string, analysis sentiment.Result) {
	ctx, span := escalationTracer.Start(ctx, "tickets.handle_message")
	defer span.End()

	priority := DerivePriority(message, analysis)
	span.SetAttributes(
		attribute.String("ticket.priority", priority),
		attribute.String("session.id", sessionID),
	)

	e.ensureTicket(ctx, sessionID, message, priority)

	if e.crm != nil {
		e.crm.SyncLead(ctx, crm.Lead{
			SessionID: sessionID,
			Message:   message,
			Urgency:   priority,
			Source:    "chatbot",
			Sentiment: &analysis,
		})
	}
}

// ensureTicket opens a ticket if the session has none yet.
func (e *Escalator) ensureTicket(ctx context.Context, sessionID, message, priority string) {
	if e.store == nil {
		return
	}

	exists, err := e.store.HasTickets(ctx, sessionID)
	if err != nil {
		e.logger.Warn("failed to check session tickets", "session_id", sessionID, "error", err)
		return
	}
	if exists {
		return
	}

	title := "Nova conversa - " + truncate(message, titleMaxLen)
	description := "Primeira mensagem: " + message

	id, err := e.store.Create(ctx, CreateRequest{
		SessionID:   sessionID,
		Title:       title,
		Description: description,
		Priority:    priority,
	})
	if err != nil {
		e.logger.Error("failed to create ticket", "session_id", sessionID, "error", err)
		return
	}

	e.metrics.ObserveTicket(priority)
	e.logger.Info("ticket created for new conversation", "ticket_id", id, "session_id", sessionID, "priority", priority)

	if e.notifier.Configured() {
		notification := notify.TicketNotification{
			TicketID:    id,
			Title:       title,
			Description: description,
			Priority:    priority,
			ContactInfo: fmt.Sprintf("Session ID: %s", sessionID),
		}
		if err := e.notifier.NotifyNewTicket(ctx, notification); err != nil {
			e.logger.Warn("ticket notification email failed", "ticket_id", id, "error", err)
		}
	}
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
