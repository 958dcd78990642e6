package crm

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

const defaultHubSpotBaseURL = "https://api.hubapi.com"

// HubSpotClient creates contacts through the HubSpot CRM v3 objects API.
type HubSpotClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewHubSpotClient(apiKey, baseURL string, timeout time.Duration) *HubSpotClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultHubSpotBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HubSpotClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

func (c *HubSpotClient) Name() string { return "hubspot" }

func (c *HubSpotClient) Configured() bool { return strings.TrimSpace(c.apiKey) != "" }

type hubSpotContact struct {
	Properties hubSpotProperties `json:"properties"`
}

type hubSpotProperties struct {
	Email          string `json:"email,omitempty"`
	FirstName      string `json:"firstname,omitempty"`
	LastName       string `json:"lastname,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Company        string `json:"company"`
	LifecycleStage string `json:"lifecyclestage"`
	LeadSource     string `json:"lead_source"`
	LeadStatus     string `json:"hs_lead_status"`
	Message        string `json:"message"`
	ChatSessionID  string `json:"chat_session_id"`
	UrgencyLevel   string `json:"urgency_level"`
}

func (c *HubSpotClient) SyncLead(ctx context.Context, lead Lead) error {
	first, last := splitName(lead.Name)
	payload := hubSpotContact{
		Properties: hubSpotProperties{
			Email:          lead.Email,
			FirstName:      first,
			LastName:       last,
			Phone:          lead.Phone,
			Company:        "Clínica Espaço Vida - Lead Chatbot",
			LifecycleStage: "lead",
			LeadSource:     lead.Source,
			LeadStatus:     "NEW",
			Message:        lead.Message,
			ChatSessionID:  lead.SessionID,
			UrgencyLevel:   lead.Urgency,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("crm: marshal hubspot contact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/crm/v3/objects/contacts", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("crm: build hubspot request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("crm: hubspot request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("crm: hubspot returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
