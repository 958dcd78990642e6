package convlog

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return newRepositoryWithQuerier(mock), mock
}

func TestSave(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO conversations")).
		WithArgs("sess-1", "oi", "olá!", "pt", "10.0.0.1", "Mozilla/5.0").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	ip := "10.0.0.1"
	agent := "Mozilla/5.0"
	err := repo.Save(context.Background(), Entry{
		SessionID:   "sess-1",
		UserMessage: "oi",
		BotResponse: "olá!",
		Language:    "pt",
		UserIP:      &ip,
		UserAgent:   &agent,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveWithoutClientInfo(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO conversations")).
		WithArgs("sess-1", "oi", "olá!", "pt", "", "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Save(context.Background(), Entry{
		SessionID:   "sess-1",
		UserMessage: "oi",
		BotResponse: "olá!",
		Language:    "pt",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBySession(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT .+ FROM conversations WHERE session_id = .+ ORDER BY timestamp DESC").
		WithArgs("sess-1", 50).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "session_id", "user_message", "bot_response", "language", "user_ip", "user_agent", "timestamp",
		}).AddRow(int64(2), "sess-1", "como funciona?", "funciona assim...", "pt", nil, nil, now).
			AddRow(int64(1), "sess-1", "oi", "olá!", "pt", nil, nil, now.Add(-time.Minute)))

	entries, err := repo.ListBySession(context.Background(), "sess-1", 50)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "como funciona?", entries[0].UserMessage)
	assert.Nil(t, entries[0].UserIP)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserMessages(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT user_message FROM conversations WHERE session_id = .+ ORDER BY timestamp ASC").
		WithArgs("sess-1").
		WillReturnRows(pgxmock.NewRows([]string{"user_message"}).
			AddRow("oi").
			AddRow("estou melhor hoje"))

	messages, err := repo.UserMessages(context.Background(), "sess-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"oi", "estou melhor hoje"}, messages)
}

func TestCounts(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM conversations")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM conversations WHERE timestamp::date = CURRENT_DATE")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, total)

	today, err := repo.CountToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, today)
}
