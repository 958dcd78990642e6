package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openAIMaxHistory  = 10
	openAIMaxTokens   = 500
	openAITemperature = 0.7
)

// OpenAIProvider generates replies with the OpenAI chat completion API.
// A provider built without an API key reports Configured() == false and is
// skipped by the chain.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if strings.TrimSpace(model) == "" {
		model = openai.GPT3Dot5Turbo
	}
	p := &OpenAIProvider{model: model}
	if strings.TrimSpace(apiKey) != "" {
		p.client = openai.NewClient(apiKey)
	}
	return p
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Configured() bool { return p.client != nil }

func (p *OpenAIProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if p.client == nil {
		return "", errors.New("chatbot: openai provider not configured")
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
	}

	history := req.History
	if len(history) > openAIMaxHistory {
		history = history[len(history)-openAIMaxHistory:]
	}
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Message,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   openAIMaxTokens,
		Temperature: openAITemperature,
	})
	if err != nil {
		return "", fmt.Errorf("chatbot: openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chatbot: openai returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
