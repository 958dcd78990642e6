package chatbot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const conversationTTL = 24 * time.Hour

// HistoryStore persists per-session conversation history. Load returns an
// empty slice for an unknown session; Reset drops the session entirely.
type HistoryStore interface {
	Save(ctx context.Context, sessionID string, history []ChatMessage) error
	Load(ctx context.Context, sessionID string) ([]ChatMessage, error)
	Reset(ctx context.Context, sessionID string) error
}

type redisHistoryStore struct {
	redis  *redis.Client
	tracer trace.Tracer
}

// NewRedisHistoryStore keeps histories in redis with a 24h sliding TTL.
func NewRedisHistoryStore(client *redis.Client, tracer trace.Tracer) HistoryStore {
	if client == nil {
		panic("chatbot: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("clinic.internal.chatbot.history")
	}
	return &redisHistoryStore{
		redis:  client,
		tracer: tracer,
	}
}

func (s *redisHistoryStore) Save(ctx context.Context, sessionID string, history []ChatMessage) error {
	ctx, span := s.tracer.Start(ctx, "chatbot.save_history")
	defer span.End()

	data, err := json.Marshal(history)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("chatbot: failed to marshal history: %w", err)
	}
	if err := s.redis.Set(ctx, conversationKey(sessionID), data, conversationTTL).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("chatbot: failed to persist history: %w", err)
	}
	return nil
}

func (s *redisHistoryStore) Load(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	ctx, span := s.tracer.Start(ctx, "chatbot.load_history")
	defer span.End()

	data, err := s.redis.Get(ctx, conversationKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("chatbot: failed to load history: %w", err)
	}

	var history []ChatMessage
	if err := json.Unmarshal(data, &history); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("chatbot: failed to decode history: %w", err)
	}
	return history, nil
}

func (s *redisHistoryStore) Reset(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "chatbot.reset_history")
	defer span.End()

	if err := s.redis.Del(ctx, conversationKey(sessionID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("chatbot: failed to reset history: %w", err)
	}
	return nil
}

func conversationKey(sessionID string) string {
	return fmt.Sprintf("conversation:%s", sessionID)
}

type memoryHistoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]ChatMessage
}

// NewMemoryHistoryStore keeps histories in process memory. Used when no
// redis address is configured and in tests.
func NewMemoryHistoryStore() HistoryStore {
	return &memoryHistoryStore{sessions: make(map[string][]ChatMessage)}
}

func (s *memoryHistoryStore) Save(_ context.Context, sessionID string, history []ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]ChatMessage, len(history))
	copy(copied, history)
	s.sessions[sessionID] = copied
	return nil
}

func (s *memoryHistoryStore) Load(_ context.Context, sessionID string) ([]ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := make([]ChatMessage, len(history))
	copy(copied, history)
	return copied, nil
}

func (s *memoryHistoryStore) Reset(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
