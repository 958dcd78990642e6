package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/espacovida/clinic-chatbot/internal/convlog"
	"github.com/espacovida/clinic-chatbot/internal/sentiment"
	"github.com/espacovida/clinic-chatbot/internal/tickets"
	"github.com/espacovida/clinic-chatbot/pkg/logging"
)

// TicketStore is the admin view over the tickets table. Satisfied by
// *tickets.Store.
type TicketStore interface {
	List(ctx context.Context, status string, limit int) ([]tickets.Ticket, error)
	BySession(ctx context.Context, sessionID string) ([]tickets.Ticket, error)
	Details(ctx context.Context, id int64) (*tickets.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, status, notes string) error
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// ConversationStore is the admin view over the conversation log. Satisfied
// by *convlog.Repository.
type ConversationStore interface {
	ListBySession(ctx context.Context, sessionID string, limit int) ([]convlog.Entry, error)
	ListRecent(ctx context.Context, limit int) ([]convlog.Entry, error)
	UserMessages(ctx context.Context, sessionID string) ([]string, error)
	Count(ctx context.Context) (int, error)
	CountToday(ctx context.Context) (int, error)
}

var validTicketStatuses = map[string]bool{
	tickets.StatusOpen:       true,
	tickets.StatusInProgress: true,
	tickets.StatusResolved:   true,
	tickets.StatusClosed:     true,
}

// AdminHandler serves the JWT-protected dashboard API.
type AdminHandler struct {
	tickets       TicketStore
	conversations ConversationStore
	analyzer      *sentiment.Analyzer
	logger        *logging.Logger
}

func NewAdminHandler(ticketStore TicketStore, conversationStore ConversationStore, analyzer *sentiment.Analyzer, logger *logging.Logger) *AdminHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminHandler{
		tickets:       ticketStore,
		conversations: conversationStore,
		analyzer:      analyzer,
		logger:        logger,
	}
}

// ListTickets handles GET /admin/tickets.
func (h *AdminHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !validTicketStatuses[status] {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status inválido"})
		return
	}

	list, err := h.tickets.List(r.Context(), status, queryLimit(r, 50))
	if err != nil {
		h.logger.Error("failed to list tickets", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro interno do servidor"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"tickets": list, "count": len(list)})
}

// TicketDetails handles GET /admin/tickets/{id}, returning the ticket plus
// the conversation it came from.
func (h *AdminHandler) TicketDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}

	ticket, err := h.tickets.Details(r.Context(), id)
	if err != nil {
		if errors.Is(err, tickets.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "ticket não encontrado"})
			return
		}
		h.logger.Error("failed to load ticket", "ticket_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro interno do servidor"})
		return
	}

	var conversation []convlog.Entry
	if h.conversations != nil {
		conversation, err = h.conversations.ListBySession(r.Context(), ticket.SessionID, 100)
		if err != nil {
			h.logger.Warn("failed to load ticket conversation", "ticket_id", id, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ticket":       ticket,
		"conversation": conversation,
	})
}

type updateTicketRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateTicket handles PUT /admin/tickets/{id}.
func (h *AdminHandler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}

	var req updateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "JSON inválido"})
		return
	}
	if !validTicketStatuses[req.Status] {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status inválido"})
		return
	}

	if err := h.tickets.UpdateStatus(r.Context(), id, req.Status, strings.TrimSpace(req.Notes)); err != nil {
		if errors.Is(err, tickets.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "ticket não encontrado"})
			return
		}
		h.logger.Error("failed to update ticket", "ticket_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro interno do servidor"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// ListConversations handles GET /admin/conversations, optionally filtered
// by session_id.
func (h *AdminHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, 100)

	var (
		entries []convlog.Entry
		err     error
	)
	if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
		entries, err = h.conversations.ListBySession(r.Context(), sessionID, limit)
	} else {
		entries, err = h.conversations.ListRecent(r.Context(), limit)
	}
	if err != nil {
		h.logger.Error("failed to list conversations", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro interno do servidor"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"conversations": entries, "count": len(entries)})
}

// Statistics handles GET /admin/statistics.
func (h *AdminHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalConversations, err := h.conversations.Count(ctx)
	if err != nil {
		h.logger.Error("failed to count conversations", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro interno do servidor"})
		return
	}
	conversationsToday, err := h.conversations.CountToday(ctx)
	if err != nil {
		h.logger.Error("failed to count today's conversations", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro interno do servidor"})
		return
	}
	totalTickets, err := h.tickets.Count(ctx)
	if err != nil {
		h.logger.Error("failed to count tickets", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro interno do servidor"})
		return
	}
	ticketsByStatus, err := h.tickets.CountByStatus(ctx)
	if err != nil {
		h.logger.Error("failed to count tickets by status", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro interno do servidor"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_conversations": totalConversations,
		"conversations_today": conversationsToday,
		"total_tickets":       totalTickets,
		"tickets_by_status":   ticketsByStatus,
	})
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeSentiment handles POST /admin/sentiment/analyze.
func (h *AdminHandler) AnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "texto obrigatório"})
		return
	}

	result := h.analyzer.Analyze(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, map[string]any{
		"analysis": result,
		"tone":     sentiment.ToneFor(result),
	})
}

// ConversationTrend handles GET /admin/sentiment/conversation/{sessionID}.
func (h *AdminHandler) ConversationTrend(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.conversations.UserMessages(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("failed to load session messages", "session_id", sessionID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro interno do servidor"})
		return
	}
	if len(messages) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "conversa não encontrada"})
		return
	}

	trend := h.analyzer.AnalyzeTrend(r.Context(), messages)
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"trend":      trend,
	})
}

func queryLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
