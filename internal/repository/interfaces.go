package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/worktimer/internal/domain"
)

// DaySummaryRepo stores the derived per-day totals of the history index.
type DaySummaryRepo interface {
	Upsert(ctx context.Context, s *domain.DaySummary) error
	Get(ctx context.Context, day time.Time) (*domain.DaySummary, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*domain.DaySummary, error)
	Delete(ctx context.Context, day time.Time) error
}

var _ DaySummaryRepo = (*SQLiteDaySummaryRepo)(nil)
