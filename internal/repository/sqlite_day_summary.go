package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/worktimer/internal/db"
	"github.com/alexanderramin/worktimer/internal/domain"
)

const dayLayout = "2006-01-02"

// SQLiteDaySummaryRepo implements DaySummaryRepo using a SQLite database.
type SQLiteDaySummaryRepo struct {
	db db.DBTX
}

// NewSQLiteDaySummaryRepo creates a repo on a *sql.DB or a *sql.Tx.
func NewSQLiteDaySummaryRepo(db db.DBTX) *SQLiteDaySummaryRepo {
	return &SQLiteDaySummaryRepo{db: db}
}

func (r *SQLiteDaySummaryRepo) Upsert(ctx context.Context, s *domain.DaySummary) error {
	var openStart interface{}
	if s.OpenStart != nil {
		openStart = s.OpenStart.String()
	}
	query := `INSERT INTO day_summaries (day, events, worked_sec, working, open_start, source_size, source_mtime, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			events = excluded.events,
			worked_sec = excluded.worked_sec,
			working = excluded.working,
			open_start = excluded.open_start,
			source_size = excluded.source_size,
			source_mtime = excluded.source_mtime,
			indexed_at = excluded.indexed_at`
	_, err := r.db.ExecContext(ctx, query,
		s.Day.Format(dayLayout),
		s.Events,
		int64(s.Worked/time.Second),
		boolToInt(s.Working),
		openStart,
		s.SourceSize,
		s.SourceMTime.UTC().Format(time.RFC3339Nano),
		s.IndexedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting day summary: %w", err)
	}
	return nil
}

func (r *SQLiteDaySummaryRepo) Get(ctx context.Context, day time.Time) (*domain.DaySummary, error) {
	query := `SELECT day, events, worked_sec, working, open_start, source_size, source_mtime, indexed_at
		FROM day_summaries WHERE day = ?`
	row := r.db.QueryRowContext(ctx, query, day.Format(dayLayout))
	s, err := scanSummary(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("day summary %s: %w", day.Format(dayLayout), ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// ListRange returns summaries for days in [from, to], oldest first.
func (r *SQLiteDaySummaryRepo) ListRange(ctx context.Context, from, to time.Time) ([]*domain.DaySummary, error) {
	query := `SELECT day, events, worked_sec, working, open_start, source_size, source_mtime, indexed_at
		FROM day_summaries WHERE day >= ? AND day <= ? ORDER BY day`
	rows, err := r.db.QueryContext(ctx, query, from.Format(dayLayout), to.Format(dayLayout))
	if err != nil {
		return nil, fmt.Errorf("listing day summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*domain.DaySummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating day summaries: %w", err)
	}
	return summaries, nil
}

func (r *SQLiteDaySummaryRepo) Delete(ctx context.Context, day time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM day_summaries WHERE day = ?`, day.Format(dayLayout))
	if err != nil {
		return fmt.Errorf("deleting day summary: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (*domain.DaySummary, error) {
	var (
		s                            domain.DaySummary
		dayStr, mtimeStr, indexedStr string
		workedSec                    int64
		working                      int
		openStart                    sql.NullString
	)
	err := row.Scan(&dayStr, &s.Events, &workedSec, &working, &openStart, &s.SourceSize, &mtimeStr, &indexedStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning day summary: %w", err)
	}

	if s.Day, err = time.Parse(dayLayout, dayStr); err != nil {
		return nil, fmt.Errorf("parsing day: %w", err)
	}
	if s.SourceMTime, err = time.Parse(time.RFC3339Nano, mtimeStr); err != nil {
		return nil, fmt.Errorf("parsing source_mtime: %w", err)
	}
	if s.IndexedAt, err = time.Parse(time.RFC3339, indexedStr); err != nil {
		return nil, fmt.Errorf("parsing indexed_at: %w", err)
	}
	s.Worked = time.Duration(workedSec) * time.Second
	s.Working = intToBool(working)
	if openStart.Valid && openStart.String != "" {
		tod, err := domain.ParseTimeOfDay(openStart.String)
		if err != nil {
			return nil, fmt.Errorf("parsing open_start: %w", err)
		}
		s.OpenStart = &tod
	}
	return &s, nil
}
