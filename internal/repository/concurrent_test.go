package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/worktimer/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed index in a temp directory.
// Unlike :memory:, a file-backed DB shares state across every pooled
// connection, which is what two `history` runs in parallel terminals see.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), db.IndexFileName))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringWrite checks that ListRange never sees a
// half-written row while another connection upserts.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	repo := NewSQLiteDaySummaryRepo(database)
	ctx := context.Background()

	first := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 0, 19)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			if err := repo.Upsert(ctx, newSummary(first.AddDate(0, 0, i), time.Duration(i)*time.Hour)); err != nil {
				t.Errorf("writer: upsert day %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				rows, err := repo.ListRange(ctx, first, last)
				if err != nil {
					t.Errorf("reader %d: list range: %v", reader, err)
					return
				}
				for _, s := range rows {
					if s.Day.IsZero() || s.SourceSize != 18 {
						t.Errorf("reader %d: got partial row %+v", reader, s)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	rows, err := repo.ListRange(ctx, first, last)
	require.NoError(t, err)
	assert.Len(t, rows, 20)
}

// TestConcurrentAccess_RepeatedUpsertSameDay leaves exactly one row with
// one of the written values.
func TestConcurrentAccess_RepeatedUpsertSameDay(t *testing.T) {
	database := newConcurrentTestDB(t)
	repo := NewSQLiteDaySummaryRepo(database)
	ctx := context.Background()
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for w := 1; w <= 4; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				if err := repo.Upsert(ctx, newSummary(day, time.Duration(worker)*time.Hour)); err != nil {
					t.Errorf("worker %d: upsert: %v", worker, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	rows, err := repo.ListRange(ctx, day, day)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Contains(t, []time.Duration{time.Hour, 2 * time.Hour, 3 * time.Hour, 4 * time.Hour}, rows[0].Worked)
}
