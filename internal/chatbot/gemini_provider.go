package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider generates replies with Google's Gemini API. Built without
// an API key it reports Configured() == false and is skipped by the chain.
type GeminiProvider struct {
	client  *genai.Client
	modelID string
}

func NewGeminiProvider(ctx context.Context, apiKey, modelID string) (*GeminiProvider, error) {
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-1.5-flash"
	}
	p := &GeminiProvider{modelID: modelID}
	if strings.TrimSpace(apiKey) == "" {
		return p, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("chatbot: failed to create gemini client: %w", err)
	}
	p.client = client
	return p, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Configured() bool { return p.client != nil }

func (p *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if p.client == nil {
		return "", errors.New("chatbot: gemini provider not configured")
	}

	model := p.client.GenerativeModel(p.modelID)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(500)
	if strings.TrimSpace(req.SystemPrompt) != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.SystemPrompt))
	}

	cs := model.StartChat()
	for _, msg := range req.History {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(req.Message))
	if err != nil {
		return "", fmt.Errorf("chatbot: gemini completion failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("chatbot: gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("chatbot: gemini returned empty content")
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if chunk, ok := part.(genai.Text); ok {
			text.WriteString(string(chunk))
		}
	}

	return strings.TrimSpace(text.String()), nil
}

// Close releases resources held by the Gemini client.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
