package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espacovida/clinic-chatbot/internal/chatbot"
	"github.com/espacovida/clinic-chatbot/internal/http/handlers"
)

type staticResponder struct{}

func (staticResponder) Respond(_ context.Context, sessionID, _, language string) chatbot.Reply {
	return chatbot.Reply{
		Text:      "Olá!",
		SessionID: sessionID,
		Language:  language,
		Timestamp: time.Now(),
	}
}

func (staticResponder) Reset(context.Context, string) error { return nil }

func newTestRouter() http.Handler {
	return New(&Config{
		ChatHandler: handlers.NewChatHandler(staticResponder{}, nil, "test", nil),
	})
}

func TestPublicRoutes(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/languages", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	body, err := json.Marshal(map[string]string{"message": "oi", "session_id": "s1"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChatRouteWithLanguage(t *testing.T) {
	r := newTestRouter()

	body, err := json.Marshal(map[string]string{"message": "hello"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/chat/en", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "en", resp["language"])
}

func TestAdminRoutesAbsentWithoutHandler(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/admin/tickets", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsRouteAbsentWithoutHandler(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
