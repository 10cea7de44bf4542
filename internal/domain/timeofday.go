package domain

import (
	"fmt"
	"time"
)

// TimeOfDayLayout is the on-disk text form of a toggle timestamp.
const TimeOfDayLayout = "15:04:05"

// TimeOfDay is a wall-clock time within a day, stored as whole seconds
// since midnight. The date is implied by the day log it belongs to.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from its clock fields.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("time of day out of range: %02d:%02d:%02d", hour, minute, second)
	}
	return TimeOfDay(hour*3600 + minute*60 + second), nil
}

// TimeOfDayOf returns the time of day of t in t's location, truncated to the second.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(h*3600 + m*60 + s)
}

// ParseTimeOfDay parses exactly HH:MM:SS (24-hour, zero-padded).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	// time.Parse accepts a single-digit hour for "15"; the log format does not.
	if len(s) != len(TimeOfDayLayout) {
		return 0, fmt.Errorf("%w: %q is not HH:MM:SS", ErrMalformedEntry, s)
	}
	t, err := time.Parse(TimeOfDayLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not HH:MM:SS", ErrMalformedEntry, s)
	}
	return TimeOfDayOf(t), nil
}

// MustTimeOfDay is ParseTimeOfDay for literals known to be valid.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

// String renders the time as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Sub returns t - start. The result is negative when t precedes start.
func (t TimeOfDay) Sub(start TimeOfDay) time.Duration {
	return time.Duration(int(t)-int(start)) * time.Second
}

// On places the time of day on the calendar date of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, day.Location())
}
