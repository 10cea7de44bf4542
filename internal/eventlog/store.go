// Package eventlog persists toggle timestamps, one append-only text file per
// calendar day.
package eventlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/worktimer/internal/domain"
)

const (
	// DayLayout names a day log file.
	DayLayout = "2006-01-02"
	fileExt   = ".txt"
)

// ErrDayNotFound indicates no log exists for the requested day.
var ErrDayNotFound = errors.New("no log for day")

// Store is the per-user directory holding the day logs.
type Store struct {
	dir string
}

// NewStore creates dir if it does not already exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating log directory: %v", domain.ErrIO, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path of the log for day.
func (s *Store) Path(day time.Time) string {
	return filepath.Join(s.dir, day.Format(DayLayout)+fileExt)
}

// Open returns the log for day, creating an empty one if none exists.
// Existing content is never truncated.
func (s *Store) Open(day time.Time) (*DayLog, error) {
	path := s.Path(day)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	switch {
	case err == nil:
		if err := f.Sync(); err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: syncing new day log: %v", domain.ErrIO, err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("%w: closing new day log: %v", domain.ErrIO, err)
		}
		if err := syncDir(s.dir); err != nil {
			return nil, err
		}
		return &DayLog{day: dayOf(day), path: path, created: true}, nil
	case errors.Is(err, os.ErrExist):
		return &DayLog{day: dayOf(day), path: path}, nil
	default:
		return nil, fmt.Errorf("%w: opening day log: %v", domain.ErrIO, err)
	}
}

// Lookup returns the existing log for day without creating it.
func (s *Store) Lookup(day time.Time) (*DayLog, error) {
	path := s.Path(day)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", day.Format(DayLayout), ErrDayNotFound)
		}
		return nil, fmt.Errorf("%w: checking day log: %v", domain.ErrIO, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrIO, path)
	}
	return &DayLog{day: dayOf(day), path: path}, nil
}

// Days lists every day that has a log, oldest first.
func (s *Store) Days() ([]time.Time, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: listing log directory: %v", domain.ErrIO, err)
	}

	var days []time.Time
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		day, err := time.Parse(DayLayout, strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// syncDir makes a newly created file's directory entry durable.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("%w: opening log directory: %v", domain.ErrIO, err)
	}
	defer d.Close()
	// Some platforms (Windows) cannot fsync a directory handle.
	if err := d.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) && !isUnsupported(err) {
		return fmt.Errorf("%w: syncing log directory: %v", domain.ErrIO, err)
	}
	return nil
}
