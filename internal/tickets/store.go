// Package tickets persists support tickets and opens them automatically
// for new chat conversations.
package tickets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Ticket statuses. New tickets open as "aberto".
const (
	StatusOpen       = "aberto"
	StatusInProgress = "em_andamento"
	StatusResolved   = "resolvido"
	StatusClosed     = "fechado"
)

// Ticket priorities, lowest to highest.
const (
	PriorityLow    = "baixa"
	PriorityMedium = "media"
	PriorityHigh   = "alta"
)

// ErrNotFound is returned when a ticket id does not exist.
var ErrNotFound = errors.New("tickets: not found")

// Ticket is one support ticket row.
type Ticket struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	ContactName  *string   `json:"contact_name,omitempty"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	AssignedTo   *string   `json:"assigned_to,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRequest carries the fields of a new ticket.
type CreateRequest struct {
	SessionID    string
	Title        string
	Description  string
	Priority     string
	ContactName  string
	ContactPhone string
	ContactEmail string
}

// Store reads and writes the tickets table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const ticketColumns = `id, session_id, title, description, status, priority,
	contact_name, contact_phone, contact_email, assigned_to, notes, created_at, updated_at`

// Create inserts a ticket and returns its id. Empty priority defaults to
// media, matching the table default.
func (s *Store) Create(ctx context.Context, req CreateRequest) (int64, error) {
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO tickets (session_id, title, description, priority, contact_name, contact_phone, contact_email)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))
		RETURNING id`,
		req.SessionID, req.Title, req.Description, priority,
		req.ContactName, req.ContactPhone, req.ContactEmail,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("tickets: failed to create ticket: %w", err)
	}
	return id, nil
}

// HasTickets reports whether the session already has at least one ticket.
func (s *Store) HasTickets(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tickets WHERE session_id = $1)`, sessionID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("tickets: failed to check session tickets: %w", err)
	}
	return exists, nil
}

// List returns tickets newest first, optionally filtered by status.
func (s *Store) List(ctx context.Context, status string, limit int) ([]Ticket, error) {
	if limit <= 0 {
		limit = 50
	}

	var (
		rows *sql.Rows
		err  error
	)
	if status != "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+ticketColumns+` FROM tickets WHERE status = $1 ORDER BY created_at DESC LIMIT $2`,
			status, limit)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+ticketColumns+` FROM tickets ORDER BY created_at DESC LIMIT $1`,
			limit)
	}
	if err != nil {
		return nil, fmt.Errorf("tickets: failed to list tickets: %w", err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

// BySession returns every ticket of a session, newest first.
func (s *Store) BySession(ctx context.Context, sessionID string) ([]Ticket, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE session_id = $1 ORDER BY created_at DESC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("tickets: failed to list session tickets: %w", err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

// Details returns one ticket by id.
func (s *Store) Details(ctx context.Context, id int64) (*Ticket, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)

	ticket, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tickets: failed to load ticket %d: %w", id, err)
	}
	return ticket, nil
}

// UpdateStatus moves a ticket to a new status, optionally replacing notes.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status, notes string) error {
	var (
		res sql.Result
		err error
	)
	if notes != "" {
		res, err = s.db.ExecContext(ctx,
			`UPDATE tickets SET status = $1, notes = $2, updated_at = NOW() WHERE id = $3`,
			status, notes, id)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE tickets SET status = $1, updated_at = NOW() WHERE id = $2`,
			status, id)
	}
	if err != nil {
		return fmt.Errorf("tickets: failed to update ticket %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("tickets: failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns the ticket totals grouped by status.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM tickets GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("tickets: failed to count tickets: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("tickets: failed to scan ticket count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tickets: failed to iterate ticket counts: %w", err)
	}
	return counts, nil
}

// Count returns the total number of tickets.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("tickets: failed to count tickets: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*Ticket, error) {
	var t Ticket
	err := row.Scan(
		&t.ID, &t.SessionID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.ContactName, &t.ContactPhone, &t.ContactEmail, &t.AssignedTo, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTickets(rows *sql.Rows) ([]Ticket, error) {
	var tickets []Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("tickets: failed to scan ticket: %w", err)
		}
		tickets = append(tickets, *ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tickets: failed to iterate tickets: %w", err)
	}
	return tickets, nil
}
