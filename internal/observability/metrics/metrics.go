package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for the chat response pipeline.
// All observe methods are nil-safe so callers can run without metrics in
// tests.
type ChatMetrics struct {
	messagesTotal    *prometheus.CounterVec
	providerAttempts *prometheus.CounterVec
	respondLatency   prometheus.Histogram
	ticketsTotal     *prometheus.CounterVec
	crmSyncTotal     *prometheus.CounterVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Total chat messages by intent category and response outcome",
		}, []string{"category", "outcome"}),
		providerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "chat",
			Name:      "provider_attempts_total",
			Help:      "Total AI provider generation attempts",
		}, []string{"provider", "status"}),
		respondLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "chat",
			Name:      "respond_latency_seconds",
			Help:      "Latency of end-to-end chat response resolution",
			Buckets:   prometheus.DefBuckets,
		}),
		ticketsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "support",
			Name:      "tickets_total",
			Help:      "Total support tickets opened by priority",
		}, []string{"priority"}),
		crmSyncTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "support",
			Name:      "crm_sync_total",
			Help:      "Total CRM lead sync attempts",
		}, []string{"crm", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.providerAttempts, m.respondLatency, m.ticketsTotal, m.crmSyncTotal)
	return m
}

func (m *ChatMetrics) ObserveMessage(category, outcome string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(category, outcome).Inc()
}

func (m *ChatMetrics) ObserveProviderAttempt(provider, status string) {
	if m == nil {
		return
	}
	m.providerAttempts.WithLabelValues(provider, status).Inc()
}

func (m *ChatMetrics) ObserveRespondLatency(seconds float64) {
	if m == nil {
		return
	}
	m.respondLatency.Observe(seconds)
}

func (m *ChatMetrics) ObserveTicket(priority string) {
	if m == nil {
		return
	}
	m.ticketsTotal.WithLabelValues(priority).Inc()
}

func (m *ChatMetrics) ObserveCRMSync(crm, status string) {
	if m == nil {
		return
	}
	m.crmSyncTotal.WithLabelValues(crm, status).Inc()
}
