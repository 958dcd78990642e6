package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espacovida/clinic-chatbot/internal/chatbot"
	"github.com/espacovida/clinic-chatbot/internal/convlog"
)

type fakeResponder struct {
	lastSessionID string
	lastMessage   string
	lastLanguage  string
	resetCalls    []string
	resetErr      error
	reply         chatbot.Reply
}

func (f *fakeResponder) Respond(_ context.Context, sessionID, message, language string) chatbot.Reply {
	f.lastSessionID = sessionID
	f.lastMessage = message
	f.lastLanguage = language
	return f.reply
}

func (f *fakeResponder) Reset(_ context.Context, sessionID string) error {
	f.resetCalls = append(f.resetCalls, sessionID)
	return f.resetErr
}

type fakeSaver struct {
	entries []convlog.Entry
	err     error
}

func (f *fakeSaver) Save(_ context.Context, entry convlog.Entry) error {
	f.entries = append(f.entries, entry)
	return f.err
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestChatReturnsEngineReply(t *testing.T) {
	responder := &fakeResponder{reply: chatbot.Reply{
		Text:      "Olá! Como posso ajudar?",
		SessionID: "sess-1",
		Language:  "pt",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}}
	saver := &fakeSaver{}
	h := NewChatHandler(responder, saver, "", nil)

	rec := postJSON(t, h.Chat, "/chat", map[string]string{
		"message":    "  oi, bom dia  ",
		"session_id": "sess-1",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Olá! Como posso ajudar?", resp["response"])
	assert.Equal(t, "sess-1", resp["session_id"])
	assert.Equal(t, "pt", resp["language"])
	assert.Equal(t, "2025-06-01T12:00:00Z", resp["timestamp"])

	assert.Equal(t, "oi, bom dia", responder.lastMessage)
	assert.Equal(t, "pt", responder.lastLanguage)

	require.Len(t, saver.entries, 1)
	entry := saver.entries[0]
	assert.Equal(t, "sess-1", entry.SessionID)
	assert.Equal(t, "oi, bom dia", entry.UserMessage)
	assert.Equal(t, "Olá! Como posso ajudar?", entry.BotResponse)
	require.NotNil(t, entry.UserIP)
	assert.NotEmpty(t, *entry.UserIP)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	responder := &fakeResponder{}
	h := NewChatHandler(responder, nil, "", nil)

	rec := postJSON(t, h.Chat, "/chat", map[string]string{"message": "   "})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Mensagem vazia", resp["error"])
	assert.Empty(t, responder.lastMessage)
}

func TestChatRejectsInvalidJSON(t *testing.T) {
	h := NewChatHandler(&fakeResponder{}, nil, "", nil)

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Chat(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatResolvesLanguageFromRoute(t *testing.T) {
	responder := &fakeResponder{reply: chatbot.Reply{SessionID: "s", Language: "es", Timestamp: time.Now()}}
	h := NewChatHandler(responder, nil, "", nil)

	r := chi.NewRouter()
	r.Post("/chat/{language}", h.Chat)

	payload, err := json.Marshal(map[string]string{"message": "hola"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/chat/es-MX", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "es", responder.lastLanguage)
}

func TestChatKeepsAutoLanguage(t *testing.T) {
	responder := &fakeResponder{reply: chatbot.Reply{SessionID: "s", Timestamp: time.Now()}}
	h := NewChatHandler(responder, nil, "", nil)

	r := chi.NewRouter()
	r.Post("/chat/{language}", h.Chat)

	payload, err := json.Marshal(map[string]string{"message": "hello there"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/chat/auto", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "auto", responder.lastLanguage)
}

func TestChatToleratesSaverFailure(t *testing.T) {
	responder := &fakeResponder{reply: chatbot.Reply{Text: "ok", SessionID: "s", Timestamp: time.Now()}}
	saver := &fakeSaver{err: errors.New("db offline")}
	h := NewChatHandler(responder, saver, "", nil)

	rec := postJSON(t, h.Chat, "/chat", map[string]string{"message": "tudo bem?"})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResetRequiresSessionID(t *testing.T) {
	h := NewChatHandler(&fakeResponder{}, nil, "", nil)

	rec := postJSON(t, h.Reset, "/reset", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetClearsConversation(t *testing.T) {
	responder := &fakeResponder{}
	h := NewChatHandler(responder, nil, "", nil)

	rec := postJSON(t, h.Reset, "/reset", map[string]string{"session_id": "sess-9"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "Conversa reiniciada", resp["message"])
	assert.Equal(t, []string{"sess-9"}, responder.resetCalls)
}

func TestHealth(t *testing.T) {
	h := NewChatHandler(&fakeResponder{}, nil, "Chatbot Clínica Espaço Vida", nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "Chatbot Clínica Espaço Vida", resp["service"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestLanguages(t *testing.T) {
	h := NewChatHandler(&fakeResponder{}, nil, "", nil)

	req := httptest.NewRequest(http.MethodGet, "/languages", nil)
	rec := httptest.NewRecorder()
	h.Languages(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Default   string            `json:"default"`
		Languages map[string]string `json:"languages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pt", resp.Default)
	assert.Contains(t, resp.Languages, "pt")
	assert.Contains(t, resp.Languages, "en")
}
