package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/worktimer/internal/domain"
	"github.com/alexanderramin/worktimer/internal/service"
)

const progressWidth = 20

// FormatStatus renders the state of one day's session.
func FormatStatus(snap service.Snapshot, target time.Duration) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n", Bold(snap.Day.Format("2006-01-02")), StateBadge(snap.State))
	if snap.ActiveStart != nil {
		fmt.Fprintf(&b, "Working since   %s (%s so far)\n", snap.ActiveStart.String(), FormatDuration(snap.Running))
	}
	fmt.Fprintf(&b, "Completed       %s\n", FormatDuration(snap.Total))
	fmt.Fprintf(&b, "Including now   %s\n", FormatDuration(snap.Total+snap.Running))
	if target > 0 {
		fmt.Fprintf(&b, "Target %s  %s\n", FormatDuration(target), RenderProgress(snap.Total+snap.Running, target, progressWidth))
	}

	return RenderBox("Status", strings.TrimRight(b.String(), "\n"))
}

// FormatReport renders every interval of one day.
func FormatReport(snap service.Snapshot) string {
	if snap.Events == 0 {
		return RenderBox(snap.Day.Format("2006-01-02"), Dim("No toggles recorded."))
	}

	headers := []string{"#", "START", "STOP", "WORKED"}
	rows := make([][]string, 0, len(snap.Intervals)+1)
	for i, iv := range snap.Intervals {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			iv.Start.String(),
			iv.Stop.String(),
			FormatDuration(iv.Duration()),
		})
	}
	if snap.ActiveStart != nil {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", len(snap.Intervals)+1)),
			snap.ActiveStart.String(),
			StyleGreen.Render("running"),
			Dim(FormatDuration(snap.Running)),
		})
	}

	content := RenderTable(headers, rows) +
		fmt.Sprintf("\nTotal worked: %s", Bold(FormatDuration(snap.Total)))
	return RenderBox(snap.Day.Format("2006-01-02"), content)
}

// FormatHistory renders per-day totals for a range of days.
func FormatHistory(res *service.HistoryResult, today time.Time) string {
	title := fmt.Sprintf("History %s to %s", res.From.Format("2006-01-02"), res.To.Format("2006-01-02"))
	if len(res.Days) == 0 {
		return RenderBox(title, Dim("No day logs in range."))
	}

	headers := []string{"DAY", "DATE", "WORKED", "STATE"}
	rows := make([][]string, 0, len(res.Days))
	for _, d := range res.Days {
		state := domain.StateIdle
		if d.Working {
			state = domain.StateWorking
		}
		rows = append(rows, []string{
			DayLabel(d.Day, today),
			Dim(d.Day.Format("2006-01-02")),
			FormatDuration(d.Worked),
			StateBadge(state),
		})
	}

	content := RenderTable(headers, rows) +
		fmt.Sprintf("\nTotal worked: %s over %d day(s)", Bold(FormatDuration(res.Total())), len(res.Days))
	return RenderBox(title, content)
}
