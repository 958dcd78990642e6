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

const defaultRDStationBaseURL = "https://api.rd.services"

// RDStationClient records leads as conversion events on the RD Station
// platform API.
type RDStationClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewRDStationClient(token, baseURL string, timeout time.Duration) *RDStationClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultRDStationBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RDStationClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

func (c *RDStationClient) Name() string { return "rdstation" }

func (c *RDStationClient) Configured() bool { return strings.TrimSpace(c.token) != "" }

type rdStationEvent struct {
	EventType   string           `json:"event_type"`
	EventFamily string           `json:"event_family"`
	Payload     rdStationPayload `json:"payload"`
}

type rdStationPayload struct {
	ConversionIdentifier string `json:"conversion_identifier"`
	Name                 string `json:"name,omitempty"`
	Email                string `json:"email,omitempty"`
	Phone                string `json:"phone,omitempty"`
	Message              string `json:"cf_message"`
	Source               string `json:"cf_source"`
	Urgency              string `json:"cf_urgency"`
}

func (c *RDStationClient) SyncLead(ctx context.Context, lead Lead) error {
	payload := rdStationEvent{
		EventType:   "CONVERSION",
		EventFamily: "CDP",
		Payload: rdStationPayload{
			ConversionIdentifier: "chatbot-lead",
			Name:                 lead.Name,
			Email:                lead.Email,
			Phone:                lead.Phone,
			Message:              lead.Message,
			Source:               "Chatbot Clínica Espaço Vida",
			Urgency:              lead.Urgency,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("crm: marshal rdstation event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/platform/events", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("crm: build rdstation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("crm: rdstation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("crm: rdstation returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
