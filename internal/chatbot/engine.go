package chatbot

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/espacovida/clinic-chatbot/internal/observability/metrics"
	"github.com/espacovida/clinic-chatbot/internal/sentiment"
	"github.com/espacovida/clinic-chatbot/internal/translate"
	"github.com/espacovida/clinic-chatbot/pkg/logging"
)

var engineTracer = otel.Tracer("clinic/chatbot")

// Escalator reacts to an inbound message: ticket creation, CRM lead sync
// and staff notifications. Implementations must be best-effort and never
// panic the pipeline.
type Escalator interface {
	HandleMessage(ctx context.Context, sessionID, message string, analysis sentiment.Result)
}

// Translator renders an already-resolved Portuguese reply in another
// supported language. Implementations return the input unchanged for
// unknown languages.
type Translator interface {
	Translate(text, language string) string
}

// Reply is the resolved answer for one inbound chat message.
type Reply struct {
	Text      string            `json:"response"`
	SessionID string            `json:"session_id"`
	Language  string            `json:"language"`
	Sentiment *sentiment.Result `json:"sentiment,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Engine resolves chat messages end to end: sentiment scoring, escalation,
// intent classification, AI or canned response, translation and history
// upkeep. Respond never fails; every failure path degrades to a canned
// Portuguese answer.
type Engine struct {
	analyzer     *sentiment.Analyzer
	chain        *Chain
	templates    Templates
	history      HistoryStore
	escalator    Escalator
	translator   Translator
	logger       *logging.Logger
	metrics      *metrics.ChatMetrics
	historyLimit int

	// liveMode routes even smalltalk through the AI chain. Messages with a
	// canned category still short-circuit to their template.
	liveMode bool

	sessions sync.Map // session id -> *sync.Mutex
}

// EngineOptions collects the collaborators of an Engine. Analyzer, Chain,
// Templates and History are required; the rest may be nil.
type EngineOptions struct {
	Analyzer     *sentiment.Analyzer
	Chain        *Chain
	Templates    Templates
	History      HistoryStore
	Escalator    Escalator
	Translator   Translator
	Logger       *logging.Logger
	Metrics      *metrics.ChatMetrics
	HistoryLimit int
	LiveMode     bool
}

func NewEngine(opts EngineOptions) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	limit := opts.HistoryLimit
	if limit <= 0 {
		limit = 10
	}
	return &Engine{
		analyzer:     opts.Analyzer,
		chain:        opts.Chain,
		templates:    opts.Templates,
		history:      opts.History,
		escalator:    opts.Escalator,
		translator:   opts.Translator,
		logger:       logger,
		metrics:      opts.Metrics,
		historyLimit: limit,
		liveMode:     opts.LiveMode,
	}
}

// Respond resolves one message. Messages of the same session are processed
// strictly one at a time; distinct sessions run concurrently. The returned
// Reply always carries a non-empty Text.
func (e *Engine) Respond(ctx context.Context, sessionID, message, language string) (reply Reply) {
	start := time.Now()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	switch language {
	case "", "auto":
		// Detection may yield a code outside the supported set. The reply
		// must report the language it is actually written in.
		language = translate.Resolve(e.analyzer.DetectLanguage(message))
	}

	reply = Reply{
		SessionID: sessionID,
		Language:  language,
		Timestamp: time.Now().UTC(),
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("chat pipeline panicked", "session_id", sessionID, "panic", r)
			// Templates are static strings, so this path cannot fail again.
			reply.Text = e.templates.TreatmentFallback() + "\n\n" + Apology
		}
	}()

	mu := e.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	ctx, span := engineTracer.Start(ctx, "chatbot.respond")
	defer span.End()

	analysis := e.analyzer.Analyze(ctx, message)
	reply.Sentiment = &analysis

	if e.escalator != nil {
		e.escalator.HandleMessage(ctx, sessionID, message, analysis)
	}

	history, err := e.history.Load(ctx, sessionID)
	if err != nil {
		e.logger.Warn("failed to load conversation history", "session_id", sessionID, "error", err)
		history = nil
	}

	category := Classify(message)
	text, outcome := e.resolve(ctx, category, history, message)

	if language != "pt" && e.translator != nil {
		text = e.translator.Translate(text, language)
	}

	now := time.Now().UTC()
	history = append(history,
		ChatMessage{Role: RoleUser, Content: message, Timestamp: now, Sentiment: &analysis},
		ChatMessage{Role: RoleAssistant, Content: text, Timestamp: now},
	)
	if err := e.history.Save(ctx, sessionID, history); err != nil {
		e.logger.Warn("failed to save conversation history", "session_id", sessionID, "error", err)
	}

	span.SetAttributes(
		attribute.String("chat.category", string(category)),
		attribute.String("chat.outcome", outcome),
		attribute.String("chat.language", language),
	)
	e.metrics.ObserveMessage(string(category), outcome)
	e.metrics.ObserveRespondLatency(time.Since(start).Seconds())

	reply.Text = text
	return reply
}

// resolve picks the reply text for a classified message. Categories with a
// canned template answer directly without touching the AI chain; treatment
// questions go through the chain and fall back to the program summary.
func (e *Engine) resolve(ctx context.Context, category Category, history []ChatMessage, message string) (string, string) {
	switch {
	case category.NeedsAI():
		if text, provider, err := e.generate(ctx, history, message); err == nil {
			e.logger.Debug("ai reply generated", "provider", provider, "category", string(category))
			return text, "ai"
		}
		return e.templates.TreatmentFallback(), "fallback"
	case category == CategoryGeneric && e.liveMode:
		if text, provider, err := e.generate(ctx, history, message); err == nil {
			e.logger.Debug("ai reply generated", "provider", provider, "category", string(category))
			return text, "ai"
		}
		return e.templates.TreatmentFallback(), "fallback"
	default:
		return e.templates.Render(category), "canned"
	}
}

func (e *Engine) generate(ctx context.Context, history []ChatMessage, message string) (string, string, error) {
	if len(history) > e.historyLimit {
		history = history[len(history)-e.historyLimit:]
	}
	return e.chain.Generate(ctx, GenerateRequest{
		SystemPrompt: e.templates.SystemPrompt(),
		History:      history,
		Message:      message,
	})
}

// Reset discards the stored history of a session and releases its lock,
// so idle sessions do not accumulate mutexes for the process lifetime.
func (e *Engine) Reset(ctx context.Context, sessionID string) error {
	if err := e.history.Reset(ctx, sessionID); err != nil {
		return err
	}
	e.sessions.Delete(sessionID)
	return nil
}

// History returns the stored conversation of a session, oldest first.
func (e *Engine) History(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	return e.history.Load(ctx, sessionID)
}

func (e *Engine) sessionLock(sessionID string) *sync.Mutex {
	mu, _ := e.sessions.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
