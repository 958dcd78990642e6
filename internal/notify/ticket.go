package notify

import (
	"context"
	"fmt"
	"time"
)

// TicketNotification carries everything the staff email needs about a
// freshly opened support ticket.
type TicketNotification struct {
	TicketID    int64
	Title       string
	Description string
	Priority    string
	ContactInfo string
}

// TicketNotifier formats and sends new-ticket alerts to the clinic inbox.
type TicketNotifier struct {
	sender     EmailSender
	clinicName string
	toEmail    string
}

func NewTicketNotifier(sender EmailSender, clinicName, toEmail string) *TicketNotifier {
	return &TicketNotifier{
		sender:     sender,
		clinicName: clinicName,
		toEmail:    toEmail,
	}
}

// Configured reports whether a sender and a destination address exist.
func (n *TicketNotifier) Configured() bool {
	return n != nil && n.sender != nil && n.toEmail != ""
}

// NotifyNewTicket emails the staff inbox about a new ticket.
func (n *TicketNotifier) NotifyNewTicket(ctx context.Context, ticket TicketNotification) error {
	if !n.Configured() {
		return fmt.Errorf("notify: ticket notifier not configured")
	}

	subject := fmt.Sprintf("🎫 Novo Ticket #%d - %s", ticket.TicketID, n.clinicName)
	body := fmt.Sprintf(`🏥 %s
📋 NOVO TICKET CRIADO

🆔 Ticket ID: #%d
📝 Título: %s
📄 Descrição: %s
🚩 Prioridade: %s

👤 INFORMAÇÕES DE CONTATO:
%s

⏰ Data/Hora: %s

---
Este é um email automático do sistema de atendimento.`,
		n.clinicName, ticket.TicketID, ticket.Title, ticket.Description,
		ticket.Priority, ticket.ContactInfo,
		time.Now().Format("02/01/2006 às 15:04"))

	return n.sender.Send(ctx, EmailMessage{
		To:      n.toEmail,
		ToName:  n.clinicName,
		Subject: subject,
		Body:    body,
	})
}
