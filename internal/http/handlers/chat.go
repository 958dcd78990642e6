// Package handlers exposes the chatbot over HTTP: the public chat surface
// and the JWT-protected admin dashboard API.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/espacovida/clinic-chatbot/internal/chatbot"
	"github.com/espacovida/clinic-chatbot/internal/convlog"
	"github.com/espacovida/clinic-chatbot/internal/translate"
	"github.com/espacovida/clinic-chatbot/pkg/logging"
)

// Responder resolves chat messages. Satisfied by *chatbot.Engine.
type Responder interface {
	Respond(ctx context.Context, sessionID, message, language string) chatbot.Reply
	Reset(ctx context.Context, sessionID string) error
}

// ConversationSaver persists resolved exchanges. Satisfied by
// *convlog.Repository; nil disables persistence.
type ConversationSaver interface {
	Save(ctx context.Context, entry convlog.Entry) error
}

// ChatHandler serves the public chat endpoints.
type ChatHandler struct {
	engine      Responder
	saver       ConversationSaver
	logger      *logging.Logger
	serviceName string
}

func NewChatHandler(engine Responder, saver ConversationSaver, serviceName string, logger *logging.Logger) *ChatHandler {
	if logger == nil {
		logger = logging.Default()
	}
	if serviceName == "" {
		serviceName = "Chatbot Clínica Espaço Vida"
	}
	return &ChatHandler{
		engine:      engine,
		saver:       saver,
		logger:      logger,
		serviceName: serviceName,
	}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	Language  string `json:"language,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Chat handles POST /chat. The optional {language} URL parameter selects
// the reply language; "auto" detects it from the message.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "JSON inválido"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Mensagem vazia"})
		return
	}

	language := chi.URLParam(r, "language")
	if language != "" && language != "auto" {
		language = translate.Resolve(language)
	}
	if language == "" {
		language = translate.DefaultLanguage
	}

	reply := h.engine.Respond(r.Context(), req.SessionID, message, language)

	h.saveExchange(r, message, reply)

	writeJSON(w, http.StatusOK, chatResponse{
		Response:  reply.Text,
		SessionID: reply.SessionID,
		Language:  reply.Language,
		Timestamp: reply.Timestamp.Format(time.RFC3339),
	})
}

func (h *ChatHandler) saveExchange(r *http.Request, message string, reply chatbot.Reply) {
	if h.saver == nil {
		return
	}

	ip := r.RemoteAddr
	agent := r.UserAgent()
	entry := convlog.Entry{
		SessionID:   reply.SessionID,
		UserMessage: message,
		BotResponse: reply.Text,
		Language:    reply.Language,
	}
	if ip != "" {
		entry.UserIP = &ip
	}
	if agent != "" {
		entry.UserAgent = &agent
	}

	if err := h.saver.Save(r.Context(), entry); err != nil {
		h.logger.Warn("failed to persist conversation", "session_id", reply.SessionID, "error", err)
	}
}

type resetRequest struct {
	SessionID string `json:"session_id"`
}

// Reset handles POST /reset and discards the session history.
func (h *ChatHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.SessionID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session_id obrigatório"})
		return
	}

	if err := h.engine.Reset(r.Context(), req.SessionID); err != nil {
		h.logger.Error("failed to reset conversation", "session_id", req.SessionID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro ao resetar conversa"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Conversa reiniciada",
	})
}

// Health handles GET /health.
func (h *ChatHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   h.serviceName,
	})
}

// Languages handles GET /languages.
func (h *ChatHandler) Languages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"default":   translate.DefaultLanguage,
		"languages": translate.SupportedLanguages(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
