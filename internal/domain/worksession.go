package domain

import "time"

type SessionState string

const (
	StateIdle    SessionState = "idle"
	StateWorking SessionState = "working"
)

// Interval is one completed start/stop pair.
type Interval struct {
	Start TimeOfDay
	Stop  TimeOfDay
}

func (i Interval) Duration() time.Duration {
	return i.Stop.Sub(i.Start)
}

// DaySummary is the derived total for one day log, cached by the history index.
type DaySummary struct {
	Day         time.Time
	Events      int
	Worked      time.Duration
	Working     bool
	OpenStart   *TimeOfDay
	SourceSize  int64
	SourceMTime time.Time
	IndexedAt   time.Time
}
