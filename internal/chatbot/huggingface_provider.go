package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultHuggingFaceBaseURL = "https://api-inference.huggingface.co"

// HuggingFaceProvider calls the hosted inference API. The public endpoint
// works without an API key (rate limited), so the provider is always
// considered configured.
type HuggingFaceProvider struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewHuggingFaceProvider(apiKey, model, baseURL string) *HuggingFaceProvider {
	if strings.TrimSpace(model) == "" {
		model = "microsoft/DialoGPT-medium"
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultHuggingFaceBaseURL
	}
	return &HuggingFaceProvider{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

func (p *HuggingFaceProvider) Name() string { return "huggingface" }

func (p *HuggingFaceProvider) Configured() bool { return true }

type huggingFaceRequest struct {
	Inputs     string                `json:"inputs"`
	Parameters huggingFaceParameters `json:"parameters"`
}

type huggingFaceParameters struct {
	MaxLength   int     `json:"max_length"`
	Temperature float64 `json:"temperature"`
	DoSample    bool    `json:"do_sample"`
}

type huggingFaceResult struct {
	GeneratedText string `json:"generated_text"`
}

func (p *HuggingFaceProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	prompt := fmt.Sprintf(
		"Contexto: Você é um assistente de uma clínica de reabilitação especializada em dependência química e saúde mental.\n\nPergunta: %s\n\nResposta:",
		req.Message,
	)

	body, err := json.Marshal(huggingFaceRequest{
		Inputs: prompt,
		Parameters: huggingFaceParameters{
			MaxLength:   200,
			Temperature: 0.7,
			DoSample:    true,
		},
	})
	if err != nil {
		return "", fmt.Errorf("chatbot: marshal huggingface request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", p.baseURL, p.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("chatbot: build huggingface request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chatbot: huggingface request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chatbot: huggingface returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var results []huggingFaceResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("chatbot: decode huggingface response: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("chatbot: huggingface returned no results")
	}

	// The inference API echoes the prompt ahead of the completion.
	generated := strings.TrimSpace(strings.Replace(results[0].GeneratedText, prompt, "", 1))
	return generated, nil
}
