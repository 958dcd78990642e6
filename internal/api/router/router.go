// Package router wires every HTTP surface of the chatbot service onto a
// single chi router.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/espacovida/clinic-chatbot/internal/http/handlers"
	httpmiddleware "github.com/espacovida/clinic-chatbot/internal/http/middleware"
	"github.com/espacovida/clinic-chatbot/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger          *logging.Logger
	ChatHandler     *handlers.ChatHandler
	AdminHandler    *handlers.AdminHandler
	AdminAuthSecret string
	MetricsHandler  http.Handler
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", cfg.ChatHandler.Health)
		public.Get("/languages", cfg.ChatHandler.Languages)
		public.Post("/chat", cfg.ChatHandler.Chat)
		public.Post("/chat/{language}", cfg.ChatHandler.Chat)
		public.Post("/reset", cfg.ChatHandler.Reset)
	})

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// Admin dashboard API
	if cfg.AdminHandler != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))

			admin.Get("/tickets", cfg.AdminHandler.ListTickets)
			admin.Get("/tickets/{id}", cfg.AdminHandler.TicketDetails)
			admin.Put("/tickets/{id}", cfg.AdminHandler.UpdateTicket)
			admin.Get("/conversations", cfg.AdminHandler.ListConversations)
			admin.Get("/statistics", cfg.AdminHandler.Statistics)
			admin.Post("/sentiment/analyze", cfg.AdminHandler.AnalyzeSentiment)
			admin.Get("/sentiment/conversation/{sessionID}", cfg.AdminHandler.ConversationTrend)
		})
	}

	return r
}
