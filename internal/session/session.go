// Package session implements the work/idle toggle state machine that turns
// an ordered sequence of toggle timestamps into worked time.
package session

import (
	"fmt"
	"time"

	"github.com/alexanderramin/worktimer/internal/domain"
)

// ObservationKind tells what an applied event did.
type ObservationKind string

const (
	ObservationStarted ObservationKind = "started"
	ObservationStopped ObservationKind = "stopped"
)

// Observation describes the effect of one applied event.
// Elapsed and Total are only set for ObservationStopped.
type Observation struct {
	Kind    ObservationKind
	At      domain.TimeOfDay
	Elapsed time.Duration
	Total   time.Duration
}

// WorkSession is the in-memory state for one day. Events alternate
// start, stop, start, stop by position.
type WorkSession struct {
	activeStart *domain.TimeOfDay
	total       time.Duration
	events      int
	intervals   []domain.Interval
}

// New returns an idle session with nothing worked.
func New() *WorkSession {
	return &WorkSession{}
}

// Apply feeds one toggle event into the session. A stop earlier than its
// start fails with domain.ErrInvalidState and leaves the session unchanged.
func (s *WorkSession) Apply(at domain.TimeOfDay) (Observation, error) {
	if s.activeStart == nil {
		start := at
		s.activeStart = &start
		s.events++
		return Observation{Kind: ObservationStarted, At: at}, nil
	}

	elapsed := at.Sub(*s.activeStart)
	if elapsed < 0 {
		return Observation{}, fmt.Errorf("%w: stop at %s precedes start at %s", domain.ErrInvalidState, at, *s.activeStart)
	}

	s.intervals = append(s.intervals, domain.Interval{Start: *s.activeStart, Stop: at})
	s.total += elapsed
	s.activeStart = nil
	s.events++

	return Observation{
		Kind:    ObservationStopped,
		At:      at,
		Elapsed: elapsed,
		Total:   s.total,
	}, nil
}

// Replay applies events in order and returns their observations. It stops
// at the first failing event and names its 1-based position.
func (s *WorkSession) Replay(events []domain.TimeOfDay) ([]Observation, error) {
	observations := make([]Observation, 0, len(events))
	for i, at := range events {
		obs, err := s.Apply(at)
		if err != nil {
			return observations, fmt.Errorf("replaying event %d: %w", i+1, err)
		}
		observations = append(observations, obs)
	}
	return observations, nil
}

func (s *WorkSession) State() domain.SessionState {
	if s.activeStart != nil {
		return domain.StateWorking
	}
	return domain.StateIdle
}

// Total returns the sum of all completed intervals.
func (s *WorkSession) Total() time.Duration {
	return s.total
}

// ActiveStart returns the start of the open interval, if working.
func (s *WorkSession) ActiveStart() (domain.TimeOfDay, bool) {
	if s.activeStart == nil {
		return 0, false
	}
	return *s.activeStart, true
}

// Events returns how many events have been applied.
func (s *WorkSession) Events() int {
	return s.events
}

// Intervals returns a copy of the completed intervals in order.
func (s *WorkSession) Intervals() []domain.Interval {
	out := make([]domain.Interval, len(s.intervals))
	copy(out, s.intervals)
	return out
}

// Running returns the elapsed time of the open interval at now, or zero
// when idle or when now precedes the start.
func (s *WorkSession) Running(now domain.TimeOfDay) time.Duration {
	if s.activeStart == nil {
		return 0
	}
	if d := now.Sub(*s.activeStart); d > 0 {
		return d
	}
	return 0
}
