package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/worktimer/internal/db"
	"github.com/alexanderramin/worktimer/internal/domain"
	"github.com/alexanderramin/worktimer/internal/repository"
	"github.com/alexanderramin/worktimer/internal/session"
)

// HistoryResult lists per-day totals, oldest first.
type HistoryResult struct {
	From      time.Time
	To        time.Time
	Days      []*domain.DaySummary
	Refreshed int
}

// Total is the worked time summed over all listed days.
func (r *HistoryResult) Total() time.Duration {
	var total time.Duration
	for _, d := range r.Days {
		total += d.Worked
	}
	return total
}

type historyService struct {
	store    DayStore
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

// NewHistoryService builds per-day totals from the day logs, caching them in
// the index. The logs stay authoritative: a cached row is reused only while
// its log file's size and mtime are unchanged.
func NewHistoryService(store DayStore, uow db.UnitOfWork, observers ...UseCaseObserver) HistoryService {
	return &historyService{
		store:    store,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *historyService) Summaries(ctx context.Context, days int, today time.Time) (result *HistoryResult, err error) {
	started := time.Now()
	fields := map[string]any{"days": days}
	defer func() {
		if result != nil {
			fields["listed"] = len(result.Days)
			fields["refreshed"] = result.Refreshed
		}
		observe(ctx, s.observer, "history", started, err, fields)
	}()

	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}

	to := calendarDay(today)
	from := to.AddDate(0, 0, -(days - 1))

	all, err := s.store.Days()
	if err != nil {
		return nil, err
	}
	var inRange []time.Time
	present := make(map[string]bool)
	for _, day := range all {
		d := calendarDay(day)
		if d.Before(from) || d.After(to) {
			continue
		}
		inRange = append(inRange, d)
		present[d.Format("2006-01-02")] = true
	}

	result = &HistoryResult{From: from, To: to}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteDaySummaryRepo(tx)

		cached, err := repo.ListRange(ctx, from, to)
		if err != nil {
			return err
		}
		byDay := make(map[string]*domain.DaySummary, len(cached))
		for _, c := range cached {
			key := c.Day.Format("2006-01-02")
			if !present[key] {
				if err := repo.Delete(ctx, c.Day); err != nil {
					return err
				}
				continue
			}
			byDay[key] = c
		}

		for _, day := range inRange {
			summary, refreshed, err := s.summarize(day, byDay[day.Format("2006-01-02")])
			if err != nil {
				return err
			}
			if refreshed {
				if err := repo.Upsert(ctx, summary); err != nil {
					return err
				}
				result.Refreshed++
			}
			result.Days = append(result.Days, summary)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// summarize returns the cached summary when it still matches the log file,
// otherwise replays the log.
func (s *historyService) summarize(day time.Time, cached *domain.DaySummary) (*domain.DaySummary, bool, error) {
	log, err := s.store.Lookup(day)
	if err != nil {
		return nil, false, err
	}
	size, mtime, err := log.Stat()
	if err != nil {
		return nil, false, err
	}
	if cached != nil && cached.SourceSize == size && cached.SourceMTime.Equal(mtime) {
		return cached, false, nil
	}

	entries, err := log.ReadAll()
	if err != nil {
		return nil, false, err
	}
	ws := session.New()
	if _, err := ws.Replay(entries); err != nil {
		return nil, false, fmt.Errorf("%s: %w", day.Format("2006-01-02"), err)
	}

	summary := &domain.DaySummary{
		Day:         day,
		Events:      ws.Events(),
		Worked:      ws.Total(),
		Working:     ws.State() == domain.StateWorking,
		SourceSize:  size,
		SourceMTime: mtime,
		IndexedAt:   s.now().UTC(),
	}
	if start, ok := ws.ActiveStart(); ok {
		summary.OpenStart = &start
	}
	return summary, true, nil
}

// calendarDay drops the clock and zone, keeping the date as written.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
