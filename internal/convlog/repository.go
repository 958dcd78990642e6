// Package convlog persists every chat exchange for the admin dashboard and
// the conversation-level sentiment tooling.
package convlog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one user message / bot response pair.
type Entry struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	Language    string    `json:"language"`
	UserIP      *string   `json:"user_ip,omitempty"`
	UserAgent   *string   `json:"user_agent,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository stores conversation entries in postgres.
type Repository struct {
	pool querier
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("convlog: pgx pool required")
	}
	return &Repository{pool: pool}
}

func newRepositoryWithQuerier(q querier) *Repository {
	if q == nil {
		panic("convlog: querier required")
	}
	return &Repository{pool: q}
}

// Save appends one exchange. Empty IP and user agent are stored as NULL.
func (r *Repository) Save(ctx context.Context, entry Entry) error {
	query := `
		INSERT INTO conversations (session_id, user_message, bot_response, language, user_ip, user_agent)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
	`
	var ip, agent string
	if entry.UserIP != nil {
		ip = *entry.UserIP
	}
	if entry.UserAgent != nil {
		agent = *entry.UserAgent
	}
	if _, err := r.pool.Exec(ctx, query,
		entry.SessionID, entry.UserMessage, entry.BotResponse, entry.Language, ip, agent,
	); err != nil {
		return fmt.Errorf("convlog: insert failed: %w", err)
	}
	return nil
}

const entryColumns = `id, session_id, user_message, bot_response, language, user_ip, user_agent, timestamp`

// ListBySession returns the exchanges of one session, newest first.
func (r *Repository) ListBySession(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM conversations WHERE session_id = $1 ORDER BY timestamp DESC LIMIT $2`,
		sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("convlog: list by session failed: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListRecent returns the latest exchanges across all sessions.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM conversations ORDER BY timestamp DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("convlog: list recent failed: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// UserMessages returns the user side of a session, oldest first. Used by
// the conversation trend analysis.
func (r *Repository) UserMessages(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_message FROM conversations WHERE session_id = $1 ORDER BY timestamp ASC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("convlog: list user messages failed: %w", err)
	}
	defer rows.Close()

	var messages []string
	for rows.Next() {
		var message string
		if err := rows.Scan(&message); err != nil {
			return nil, fmt.Errorf("convlog: scan user message failed: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("convlog: iterate user messages failed: %w", err)
	}
	return messages, nil
}

// Count returns the total number of stored exchanges.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM conversations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("convlog: count failed: %w", err)
	}
	return count, nil
}

// CountToday returns the number of exchanges recorded today.
func (r *Repository) CountToday(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM conversations WHERE timestamp::date = CURRENT_DATE`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("convlog: count today failed: %w", err)
	}
	return count, nil
}

func scanEntries(rows pgx.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.SessionID, &e.UserMessage, &e.BotResponse, &e.Language,
			&e.UserIP, &e.UserAgent, &e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("convlog: scan entry failed: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("convlog: iterate entries failed: %w", err)
	}
	return entries, nil
}
