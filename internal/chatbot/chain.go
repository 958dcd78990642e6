package chatbot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/espacovida/clinic-chatbot/internal/observability/metrics"
	"github.com/espacovida/clinic-chatbot/pkg/logging"
)

// ErrNoResponse is returned when every provider in the chain was skipped or
// failed. Callers answer from a canned template in that case.
var ErrNoResponse = errors.New("chatbot: no provider produced a response")

// Chain tries AI providers in order until one returns a non-empty reply.
// Provider failures are logged and swallowed; the chain as a whole only
// fails with ErrNoResponse.
type Chain struct {
	providers []Provider
	timeout   time.Duration
	logger    *logging.Logger
	metrics   *metrics.ChatMetrics
}

// NewChain builds a provider chain. The provider whose Name matches
// preferred is moved to the front; the rest keep their given order.
func NewChain(logger *logging.Logger, m *metrics.ChatMetrics, timeout time.Duration, preferred string, providers ...Provider) *Chain {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ordered := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if strings.EqualFold(p.Name(), preferred) {
			ordered = append([]Provider{p}, ordered...)
			continue
		}
		ordered = append(ordered, p)
	}

	return &Chain{
		providers: ordered,
		timeout:   timeout,
		logger:    logger,
		metrics:   m,
	}
}

// Providers returns the provider names in try order.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Generate asks each configured provider in turn and returns the first
// non-empty reply along with the provider's name.
func (c *Chain) Generate(ctx context.Context, req GenerateRequest) (string, string, error) {
	for _, provider := range c.providers {
		if !provider.Configured() {
			continue
		}

		reply, err := c.generateOne(ctx, provider, req)
		if err != nil {
			c.metrics.ObserveProviderAttempt(provider.Name(), "error")
			c.logger.Warn("ai provider failed", "provider", provider.Name(), "error", err)
			continue
		}
		if strings.TrimSpace(reply) == "" {
			c.metrics.ObserveProviderAttempt(provider.Name(), "empty")
			continue
		}

		c.metrics.ObserveProviderAttempt(provider.Name(), "ok")
		return reply, provider.Name(), nil
	}

	return "", "", ErrNoResponse
}

func (c *Chain) generateOne(ctx context.Context, provider Provider, req GenerateRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return provider.Generate(ctx, req)
}
