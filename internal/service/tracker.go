package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/alexanderramin/worktimer/internal/domain"
	"github.com/alexanderramin/worktimer/internal/session"
)

// Tracker owns one day's WorkSession and its log. It rehydrates the session
// from the log, then processes live toggles one at a time.
type Tracker struct {
	log      EventLog
	session  *session.WorkSession
	clock    func() time.Time
	location *time.Location
	sink     ObservationSink
	observer UseCaseObserver
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) TrackerOption {
	return func(t *Tracker) { t.clock = clock }
}

// WithLocation sets the zone live toggles are read in.
func WithLocation(loc *time.Location) TrackerOption {
	return func(t *Tracker) { t.location = loc }
}

// WithSink sets where live observations are reported.
func WithSink(sink ObservationSink) TrackerOption {
	return func(t *Tracker) { t.sink = sink }
}

func WithObserver(observer UseCaseObserver) TrackerOption {
	return func(t *Tracker) { t.observer = observer }
}

// NewTracker creates a tracker with an idle session bound to log.
func NewTracker(log EventLog, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		log:      log,
		session:  session.New(),
		clock:    time.Now,
		location: time.UTC,
		sink:     noopSink{},
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Rehydrate replays every entry already in the log, in file order. Replayed
// observations are not sent to the sink; an observer implementing
// ReplayObserver receives them instead.
func (t *Tracker) Rehydrate(ctx context.Context) (err error) {
	started := time.Now()
	fields := map[string]any{"day": t.log.Day().Format("2006-01-02")}
	defer func() {
		fields["events"] = t.session.Events()
		fields["state"] = string(t.session.State())
		fields["total_sec"] = int64(t.session.Total() / time.Second)
		observe(ctx, t.observer, "rehydrate", started, err, fields)
	}()

	entries, err := t.log.ReadAll()
	if err != nil {
		return err
	}
	replayed, err := t.session.Replay(entries)
	if ro, ok := t.observer.(ReplayObserver); ok {
		for _, obs := range replayed {
			ro.ObserveReplay(ctx, obs)
		}
	}
	return err
}

// Toggle records one live event: the session is updated, the observation
// is reported, then the timestamp is durably appended. A rejected event is
// neither reported nor appended.
func (t *Tracker) Toggle(ctx context.Context) (obs session.Observation, err error) {
	started := time.Now()
	fields := map[string]any{}
	defer func() {
		fields["state"] = string(t.session.State())
		observe(ctx, t.observer, "toggle", started, err, fields)
	}()

	if err := ctx.Err(); err != nil {
		return session.Observation{}, err
	}

	at := domain.TimeOfDayOf(t.clock().In(t.location))
	fields["at"] = at.String()

	obs, err = t.session.Apply(at)
	if err != nil {
		return session.Observation{}, err
	}
	fields["kind"] = string(obs.Kind)

	t.sink.Observe(obs)

	if err := t.log.Append(at); err != nil {
		return obs, err
	}
	return obs, nil
}

// Run toggles once per signal from src until the source is exhausted
// (returns nil) or a toggle fails.
func (t *Tracker) Run(ctx context.Context, src EventSource) error {
	for {
		if err := src.Next(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if _, err := t.Toggle(ctx); err != nil {
			return err
		}
	}
}

// Snapshot is a read-only view of the session.
type Snapshot struct {
	Day         time.Time
	State       domain.SessionState
	Events      int
	Total       time.Duration
	ActiveStart *domain.TimeOfDay
	Running     time.Duration
	Intervals   []domain.Interval
}

// Snapshot describes the session as of now.
func (t *Tracker) Snapshot() Snapshot {
	snap := Snapshot{
		Day:       t.log.Day(),
		State:     t.session.State(),
		Events:    t.session.Events(),
		Total:     t.session.Total(),
		Intervals: t.session.Intervals(),
	}
	if start, ok := t.session.ActiveStart(); ok {
		snap.ActiveStart = &start
		snap.Running = t.session.Running(domain.TimeOfDayOf(t.clock().In(t.location)))
	}
	return snap
}

// Location returns the zone live toggles are read in.
func (t *Tracker) Location() *time.Location {
	return t.location
}
