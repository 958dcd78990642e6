package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/espacovida/clinic-chatbot/internal/api/router"
	"github.com/espacovida/clinic-chatbot/internal/chatbot"
	appconfig "github.com/espacovida/clinic-chatbot/internal/config"
	"github.com/espacovida/clinic-chatbot/internal/convlog"
	"github.com/espacovida/clinic-chatbot/internal/crm"
	"github.com/espacovida/clinic-chatbot/internal/http/handlers"
	"github.com/espacovida/clinic-chatbot/internal/notify"
	"github.com/espacovida/clinic-chatbot/internal/observability/metrics"
	"github.com/espacovida/clinic-chatbot/internal/sentiment"
	"github.com/espacovida/clinic-chatbot/internal/tickets"
	"github.com/espacovida/clinic-chatbot/internal/translate"
	"github.com/espacovida/clinic-chatbot/pkg/logging"
)

func main() {
	// Local development loads .env; in production the variables come from
	// the orchestrator.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic-chatbot API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"ai_provider", cfg.AIProvider,
	)

	ctx := context.Background()
	chatMetrics := metrics.NewChatMetrics(nil)
	analyzer := sentiment.NewAnalyzer(logger.Named("sentiment"))

	// Conversation history
	var history chatbot.HistoryStore
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		history = chatbot.NewRedisHistoryStore(redis.NewClient(opts), nil)
	} else {
		logger.Warn("REDIS_ADDR not set, keeping conversation history in memory")
		history = chatbot.NewMemoryHistoryStore()
	}

	// Persistence: tickets via database/sql, conversation log via pgxpool.
	var (
		ticketStore *tickets.Store
		convRepo    *convlog.Repository
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		ticketStore = tickets.NewStore(db)
		convRepo = convlog.NewRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, tickets and conversation log disabled")
	}

	// CRM lead sync
	dispatcher := crm.NewDispatcher(logger.Named("crm"), chatMetrics, cfg.PreferredCRM,
		crm.NewHubSpotClient(cfg.HubSpotAPIKey, "", cfg.CRMTimeout),
		crm.NewRDStationClient(cfg.RDStationToken, "", cfg.CRMTimeout),
	)

	// Staff notifications
	var sender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger.Named("notify")); sg != nil {
		sender = sg
	} else {
		sender = notify.NewStubEmailSender(logger.Named("notify"))
	}
	notifier := notify.NewTicketNotifier(sender, cfg.ClinicName, cfg.NotifyEmail)

	var escalator chatbot.Escalator
	if ticketStore != nil {
		escalator = tickets.NewEscalator(ticketStore, dispatcher, notifier, logger.Named("tickets"), chatMetrics)
	}

	// AI provider chain
	var providers []chatbot.Provider
	if cfg.AIProvider != "fallback" {
		providers = append(providers,
			chatbot.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel),
			chatbot.NewHuggingFaceProvider(cfg.HuggingFaceAPIKey, cfg.HuggingFaceModel, cfg.HuggingFaceBaseURL),
		)
		gemini, err := chatbot.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("gemini provider unavailable", "error", err)
		} else {
			providers = append(providers, gemini)
			defer func() { _ = gemini.Close() }()
		}
	}
	chain := chatbot.NewChain(logger.Named("chain"), chatMetrics, cfg.ProviderTimeout, cfg.AIProvider, providers...)

	engine := chatbot.NewEngine(chatbot.EngineOptions{
		Analyzer: analyzer,
		Chain:    chain,
		Templates: chatbot.Templates{
			ClinicName:  cfg.ClinicName,
			ClinicPhone: cfg.ClinicPhone,
		},
		History:      history,
		Escalator:    escalator,
		Translator:   translate.StaticTranslator{},
		Logger:       logger.Named("chatbot"),
		Metrics:      chatMetrics,
		HistoryLimit: cfg.HistoryLimit,
		LiveMode:     cfg.AIProvider != "fallback",
	})

	// HTTP surface
	var saver handlers.ConversationSaver
	if convRepo != nil {
		saver = convRepo
	}
	chatHandler := handlers.NewChatHandler(engine, saver, "Chatbot "+cfg.ClinicName, logger.Named("http"))

	var adminHandler *handlers.AdminHandler
	if ticketStore != nil && convRepo != nil {
		adminHandler = handlers.NewAdminHandler(ticketStore, convRepo, analyzer, logger.Named("admin"))
	}

	r := router.New(&router.Config{
		Logger:          logger,
		ChatHandler:     chatHandler,
		AdminHandler:    adminHandler,
		AdminAuthSecret: cfg.AdminJWTSecret,
		MetricsHandler:  promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
