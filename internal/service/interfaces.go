package service

import (
	"context"
	"time"

	"github.com/alexanderramin/worktimer/internal/domain"
	"github.com/alexanderramin/worktimer/internal/eventlog"
	"github.com/alexanderramin/worktimer/internal/session"
)

// EventLog is the durable record the tracker replays and appends to.
type EventLog interface {
	Day() time.Time
	ReadAll() ([]domain.TimeOfDay, error)
	Append(t domain.TimeOfDay) error
}

var _ EventLog = (*eventlog.DayLog)(nil)

// EventSource yields toggle signals. Next blocks until the next signal and
// returns io.EOF once the source is exhausted.
type EventSource interface {
	Next(ctx context.Context) error
}

// ObservationSink receives the user-facing effect of each live toggle.
type ObservationSink interface {
	Observe(obs session.Observation)
}

// ObservationSinkFunc adapts a function to ObservationSink.
type ObservationSinkFunc func(obs session.Observation)

func (f ObservationSinkFunc) Observe(obs session.Observation) { f(obs) }

type noopSink struct{}

func (noopSink) Observe(session.Observation) {}

// DayStore locates day logs for the history index.
type DayStore interface {
	Days() ([]time.Time, error)
	Lookup(day time.Time) (*eventlog.DayLog, error)
}

var _ DayStore = (*eventlog.Store)(nil)

type HistoryService interface {
	Summaries(ctx context.Context, days int, today time.Time) (*HistoryResult, error)
}
