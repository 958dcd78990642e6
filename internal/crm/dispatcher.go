package crm

import (
	"context"
	"strings"

	"github.com/espacovida/clinic-chatbot/internal/observability/metrics"
	"github.com/espacovida/clinic-chatbot/pkg/logging"
)

// Dispatcher routes lead syncs to the preferred configured CRM client and
// falls back to any other configured one. Failures are logged and counted
// but never propagated.
type Dispatcher struct {
	clients   []Client
	preferred string
	logger    *logging.Logger
	metrics   *metrics.ChatMetrics
}

func NewDispatcher(logger *logging.Logger, m *metrics.ChatMetrics, preferred string, clients ...Client) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		clients:   clients,
		preferred: strings.ToLower(preferred),
		logger:    logger,
		metrics:   m,
	}
}

// SyncLead pushes the lead to one CRM. It returns true when a client
// accepted it.
func (d *Dispatcher) SyncLead(ctx context.Context, lead Lead) bool {
	for _, client := range d.ordered() {
		if !client.Configured() {
			continue
		}
		if err := client.SyncLead(ctx, lead); err != nil {
			d.metrics.ObserveCRMSync(client.Name(), "error")
			d.logger.Warn("crm lead sync failed", "crm", client.Name(), "session_id", lead.SessionID, "error", err)
			continue
		}
		d.metrics.ObserveCRMSync(client.Name(), "ok")
		d.logger.Info("lead synced to crm", "crm", client.Name(), "session_id", lead.SessionID, "urgency", lead.Urgency)
		return true
	}
	return false
}

func (d *Dispatcher) ordered() []Client {
	ordered := make([]Client, 0, len(d.clients))
	for _, client := range d.clients {
		if strings.EqualFold(client.Name(), d.preferred) {
			ordered = append([]Client{client}, ordered...)
			continue
		}
		ordered = append(ordered, client)
	}
	return ordered
}

// Available lists the names of the configured CRM clients.
func (d *Dispatcher) Available() []string {
	var names []string
	for _, client := range d.clients {
		if client.Configured() {
			names = append(names, client.Name())
		}
	}
	return names
}
