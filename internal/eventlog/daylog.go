package eventlog

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/worktimer/internal/domain"
)

// DayLog is a handle on one day's log file.
type DayLog struct {
	day     time.Time
	path    string
	created bool
}

// Day returns the calendar date the log belongs to.
func (l *DayLog) Day() time.Time { return l.day }

// Path returns the file path of the log.
func (l *DayLog) Path() string { return l.path }

// Created reports whether Open created the file during this process.
func (l *DayLog) Created() bool { return l.created }

// ReadAll returns every entry in file order. A line that is not exactly
// HH:MM:SS, including a final line missing its newline, fails the whole
// read with domain.ErrMalformedEntry.
func (l *DayLog) ReadAll() ([]domain.TimeOfDay, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading day log: %v", domain.ErrIO, err)
	}

	var entries []domain.TimeOfDay
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		t, err := domain.ParseTimeOfDay(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", l.path, lineNum, err)
		}
		entries = append(entries, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading day log: %v", domain.ErrIO, err)
	}

	// An append interrupted before its newline would otherwise be glued to
	// the next entry.
	if len(raw) > 0 && raw[len(raw)-1] != '\n' {
		return nil, fmt.Errorf("%s line %d: %w: unterminated final line", l.path, lineNum, domain.ErrMalformedEntry)
	}
	return entries, nil
}

// Append writes t as a new line and syncs it to stable storage before
// returning.
func (l *DayLog) Append(t domain.TimeOfDay) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening day log for append: %v", domain.ErrIO, err)
	}

	if _, err := f.WriteString(t.String() + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("%w: writing entry: %v", domain.ErrIO, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("%w: syncing entry: %v", domain.ErrIO, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing day log: %v", domain.ErrIO, err)
	}
	return nil
}

// Stat returns the size and modification time of the log file.
func (l *DayLog) Stat() (int64, time.Time, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: stat day log: %v", domain.ErrIO, err)
	}
	return info.Size(), info.ModTime(), nil
}
