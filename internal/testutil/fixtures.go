package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/worktimer/internal/domain"
	"github.com/alexanderramin/worktimer/internal/eventlog"
)

// Day is the calendar date most tests run on.
var Day = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

// At returns the instant hh:mm:ss on Day in UTC.
func At(clock string) time.Time {
	return domain.MustTimeOfDay(clock).On(Day)
}

// NewTestStore creates an event log store in a fresh temp directory.
func NewTestStore(t *testing.T) *eventlog.Store {
	t.Helper()
	store, err := eventlog.NewStore(filepath.Join(t.TempDir(), ".work_timer"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return store
}

// SeedDayLog writes raw lines (unvalidated) as the log for day.
func SeedDayLog(t *testing.T, store *eventlog.Store, day time.Time, lines ...string) *eventlog.DayLog {
	t.Helper()
	log, err := store.Open(day)
	if err != nil {
		t.Fatalf("failed to open day log: %v", err)
	}
	body := ""
	if len(lines) > 0 {
		body = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(log.Path(), []byte(body), 0o644); err != nil {
		t.Fatalf("failed to seed day log: %v", err)
	}
	return log
}

// ReadLines returns the raw lines of a day log file.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	text := strings.TrimSuffix(string(raw), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// StepClock returns a clock that yields the given instants in order and
// keeps returning the last one once exhausted.
func StepClock(instants ...time.Time) func() time.Time {
	var mu sync.Mutex
	i := 0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := instants[i]
		if i < len(instants)-1 {
			i++
		}
		return t
	}
}

// ManualClock is a clock that only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock starts a clock at now.
func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

// Now returns the current instant.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to now.
func (c *ManualClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
