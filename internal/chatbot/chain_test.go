package chatbot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name       string
	configured bool
	reply      string
	err        error
	calls      int
}

func (p *stubProvider) Name() string     { return p.name }
func (p *stubProvider) Configured() bool { return p.configured }

func (p *stubProvider) Generate(_ context.Context, _ GenerateRequest) (string, error) {
	p.calls++
	return p.reply, p.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	failing := &stubProvider{name: "openai", configured: true, err: errors.New("boom")}
	working := &stubProvider{name: "huggingface", configured: true, reply: "resposta gerada"}
	untouched := &stubProvider{name: "gemini", configured: true, reply: "nunca usada"}

	chain := NewChain(nil, nil, time.Second, "openai", failing, working, untouched)

	reply, provider, err := chain.Generate(context.Background(), GenerateRequest{Message: "oi"})

	require.NoError(t, err)
	assert.Equal(t, "resposta gerada", reply)
	assert.Equal(t, "huggingface", provider)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, working.calls)
	assert.Zero(t, untouched.calls, "later providers must not run after a success")
}

func TestChainSkipsUnconfiguredProviders(t *testing.T) {
	unconfigured := &stubProvider{name: "openai", configured: false, reply: "não deveria"}
	working := &stubProvider{name: "gemini", configured: true, reply: "ok"}

	chain := NewChain(nil, nil, time.Second, "openai", unconfigured, working)

	reply, provider, err := chain.Generate(context.Background(), GenerateRequest{Message: "oi"})

	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, "gemini", provider)
	assert.Zero(t, unconfigured.calls)
}

func TestChainTreatsEmptyReplyAsFailure(t *testing.T) {
	empty := &stubProvider{name: "huggingface", configured: true, reply: "  "}
	working := &stubProvider{name: "gemini", configured: true, reply: "conteúdo"}

	chain := NewChain(nil, nil, time.Second, "huggingface", empty, working)

	reply, provider, err := chain.Generate(context.Background(), GenerateRequest{Message: "oi"})

	require.NoError(t, err)
	assert.Equal(t, "conteúdo", reply)
	assert.Equal(t, "gemini", provider)
	assert.Equal(t, 1, empty.calls)
}

func TestChainExhaustedReturnsErrNoResponse(t *testing.T) {
	a := &stubProvider{name: "openai", configured: true, err: errors.New("down")}
	b := &stubProvider{name: "gemini", configured: false}

	chain := NewChain(nil, nil, time.Second, "openai", a, b)

	_, _, err := chain.Generate(context.Background(), GenerateRequest{Message: "oi"})

	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestChainPreferredProviderGoesFirst(t *testing.T) {
	a := &stubProvider{name: "openai", configured: true, reply: "a"}
	b := &stubProvider{name: "huggingface", configured: true, reply: "b"}
	c := &stubProvider{name: "gemini", configured: true, reply: "c"}

	chain := NewChain(nil, nil, time.Second, "gemini", a, b, c)

	assert.Equal(t, []string{"gemini", "openai", "huggingface"}, chain.Providers())

	reply, provider, err := chain.Generate(context.Background(), GenerateRequest{Message: "oi"})
	require.NoError(t, err)
	assert.Equal(t, "c", reply)
	assert.Equal(t, "gemini", provider)
}
