package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/worktimer/internal/domain"
	"github.com/alexanderramin/worktimer/internal/service"
	"github.com/alexanderramin/worktimer/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences so assertions are terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"zero", 0, "00:00"},
		{"59 minutes", 59 * time.Minute, "00:59"},
		{"125 minutes", 125 * time.Minute, "02:05"},
		{"seconds dropped", 3*time.Hour + 30*time.Minute + 59*time.Second, "03:30"},
		{"no wrap past a day", 27*time.Hour + 4*time.Minute, "27:04"},
		{"three digit hours", 100 * time.Hour, "100:00"},
		{"negative", -(90 * time.Minute), "-01:30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func TestObservationLines_Started(t *testing.T) {
	lines := ObservationLines(session.Observation{
		Kind: session.ObservationStarted,
		At:   domain.MustTimeOfDay("09:00:00"),
	})
	require.Len(t, lines, 1)
	assert.Equal(t, "Starting to work at 09:00:00", stripANSI(lines[0]))
}

func TestObservationLines_Stopped(t *testing.T) {
	lines := ObservationLines(session.Observation{
		Kind:    session.ObservationStopped,
		At:      domain.MustTimeOfDay("12:30:00"),
		Elapsed: 3*time.Hour + 30*time.Minute,
		Total:   5 * time.Hour,
	})
	require.Len(t, lines, 3)
	assert.Equal(t, "Stopped working at 12:30:00", stripANSI(lines[0]))
	assert.Equal(t, "Worked 03:30", stripANSI(lines[1]))
	assert.Equal(t, "Total work time today: 05:00", stripANSI(lines[2]))
}

func TestResumeLines(t *testing.T) {
	start := domain.MustTimeOfDay("13:00:00")
	lines := ResumeLines(service.Snapshot{
		Events:      3,
		Total:       3*time.Hour + 30*time.Minute,
		State:       domain.StateWorking,
		ActiveStart: &start,
	})
	require.Len(t, lines, 2)
	assert.Equal(t, "Replayed 3 toggle(s), total work time today: 03:30", stripANSI(lines[0]))
	assert.Equal(t, "Working since 13:00:00", stripANSI(lines[1]))

	assert.Equal(t, []string{"No toggles yet today."}, mapStrip(ResumeLines(service.Snapshot{})))
}

func mapStrip(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = stripANSI(l)
	}
	return out
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "LONGER"}, [][]string{{"wide cell", "x"}, {"y"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "A          LONGER", lines[0])
	assert.Equal(t, "─────────  ──────", lines[1])
	assert.Equal(t, "wide cell  x", lines[2])
	assert.Equal(t, "y          ", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"a"}}))
}

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50%", stripANSI(RenderProgress(4*time.Hour, 8*time.Hour, 10)))
	assert.Equal(t, "[██████████] 125%", stripANSI(RenderProgress(10*time.Hour, 8*time.Hour, 10)))
	assert.Equal(t, "[░░░░░░░░░░]   0%", stripANSI(RenderProgress(0, 0, 10)))
}

func TestDayLabel(t *testing.T) {
	today := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "Today", DayLabel(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), today))
	assert.Equal(t, "Yesterday", DayLabel(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), today))
	assert.Equal(t, "Mon Oct 12, 2026", DayLabel(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), today))
}

func TestFormatReport(t *testing.T) {
	start := domain.MustTimeOfDay("13:00:00")
	snap := service.Snapshot{
		Day:    time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		State:  domain.StateWorking,
		Events: 3,
		Total:  3*time.Hour + 30*time.Minute,
		Intervals: []domain.Interval{
			{Start: domain.MustTimeOfDay("09:00:00"), Stop: domain.MustTimeOfDay("12:30:00")},
		},
		ActiveStart: &start,
		Running:     45 * time.Minute,
	}

	out := stripANSI(FormatReport(snap))
	assert.Contains(t, out, "2026-10-18")
	assert.Contains(t, out, "09:00:00")
	assert.Contains(t, out, "12:30:00")
	assert.Contains(t, out, "running")
	assert.Contains(t, out, "Total worked: 03:30")
}

func TestFormatReport_Empty(t *testing.T) {
	out := stripANSI(FormatReport(service.Snapshot{Day: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)}))
	assert.Contains(t, out, "No toggles recorded.")
}

func TestFormatStatus(t *testing.T) {
	start := domain.MustTimeOfDay("13:00:00")
	snap := service.Snapshot{
		Day:         time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		State:       domain.StateWorking,
		Events:      3,
		Total:       3*time.Hour + 30*time.Minute,
		ActiveStart: &start,
		Running:     30 * time.Minute,
	}

	out := stripANSI(FormatStatus(snap, 8*time.Hour))
	assert.Contains(t, out, "Working")
	assert.Contains(t, out, "Working since   13:00:00 (00:30 so far)")
	assert.Contains(t, out, "Completed       03:30")
	assert.Contains(t, out, "Including now   04:00")
	assert.Contains(t, out, "50%")
}

func TestFormatHistory(t *testing.T) {
	today := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	res := &service.HistoryResult{
		From: today.AddDate(0, 0, -6),
		To:   today,
		Days: []*domain.DaySummary{
			{Day: today.AddDate(0, 0, -1), Worked: 7 * time.Hour},
			{Day: today, Worked: 2 * time.Hour, Working: true},
		},
	}

	out := stripANSI(FormatHistory(res, today))
	assert.Contains(t, out, "Yesterday")
	assert.Contains(t, out, "07:00")
	assert.Contains(t, out, "Total worked: 09:00 over 2 day(s)")
}
