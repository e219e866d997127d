package paymentRepo

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDB struct {
	err          error
	rowsAffected int64
	queries      []string
	args         [][]interface{}
}

func (s *stubDB) record(query string, args []interface{}) {
	s.queries = append(s.queries, query)
	s.args = append(s.args, args)
}

func (s *stubDB) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	s.record(query, args)
	return s.err
}

func (s *stubDB) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	s.record(query, args)
	return s.err
}

func (s *stubDB) Exec(ctx context.Context, query string, args ...interface{}) error {
	s.record(query, args)
	return s.err
}

func (s *stubDB) ExecWithResult(ctx context.Context, query string, args ...interface{}) (int64, error) {
	s.record(query, args)
	return s.rowsAffected, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSettleOnlyPending(t *testing.T) {
	db := &stubDB{rowsAffected: 1}
	repo := New(db, testLogger())
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	settled, err := repo.Settle(context.Background(), uuid.New(), domain.PaymentStatusSucceeded, at, nil)
	require.NoError(t, err)
	assert.True(t, settled)
	assert.Contains(t, db.queries[0], "WHERE id = $5 AND status = $6")

	args := db.args[0]
	assert.Equal(t, "succeeded", args[0])
	assert.Equal(t, &at, args[1])
	assert.Nil(t, args[2])
	assert.Equal(t, "pending", args[5])

	db.rowsAffected = 0
	settled, err = repo.Settle(context.Background(), uuid.New(), domain.PaymentStatusSucceeded, at, nil)
	require.NoError(t, err)
	assert.False(t, settled)
}

func TestSettleFailedSetsFailedAt(t *testing.T) {
	db := &stubDB{rowsAffected: 1}
	at := time.Now()
	reason := "card declined"

	_, err := New(db, testLogger()).Settle(context.Background(), uuid.New(), domain.PaymentStatusFailed, at, &reason)
	require.NoError(t, err)

	args := db.args[0]
	assert.Nil(t, args[1])
	assert.Equal(t, &at, args[2])
	assert.Equal(t, &reason, args[3])
}

func TestGetByIDNotFound(t *testing.T) {
	_, err := New(&stubDB{err: sql.ErrNoRows}, testLogger()).GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListPendingQuery(t *testing.T) {
	db := &stubDB{}
	before := time.Now()

	_, err := New(db, testLogger()).ListPending(context.Background(), before, 50)
	require.NoError(t, err)
	assert.Contains(t, db.queries[0], "ORDER BY created_at")
	assert.Equal(t, []interface{}{"pending", before, 50}, db.args[0])
}
