package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/alexanderramin/worktimer/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertDay(ctx context.Context, tx db.DBTX, day string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO day_summaries (day, events, worked_sec, working, source_mtime, indexed_at)
		VALUES (?, 2, 3600, 0, '2026-10-18T10:00:00Z', '2026-10-18T10:00:00Z')`, day)
	return err
}

func hasDay(t *testing.T, database *sql.DB, day string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM day_summaries WHERE day = ?`, day).Scan(&n))
	return n == 1
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertDay(ctx, tx, "2026-10-17")
	})
	require.NoError(t, err)
	assert.True(t, hasDay(t, database, "2026-10-17"), "row should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertDay(ctx, tx, "2026-10-16"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.False(t, hasDay(t, database, "2026-10-16"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertDay(ctx, tx, "2026-10-15")
			panic("boom")
		})
	})
	assert.False(t, hasDay(t, database, "2026-10-15"), "row should not exist after panic rollback")
}
