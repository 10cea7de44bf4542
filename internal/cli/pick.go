package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/worktimer/internal/eventlog"
	"github.com/koki-develop/go-fzf"
)

// errPickCancelled is returned when the finder closes without a selection.
var errPickCancelled = errors.New("no day selected")

// DayPicker lets the user choose one of days. preview renders the details
// shown next to the highlighted day.
type DayPicker func(days []time.Time, preview func(day time.Time) string) (time.Time, error)

// fzfDayPicker presents days newest first in a fuzzy finder.
func fzfDayPicker(days []time.Time, preview func(day time.Time) string) (time.Time, error) {
	if len(days) == 0 {
		return time.Time{}, fmt.Errorf("no day logs found")
	}

	newestFirst := make([]time.Time, len(days))
	for i, d := range days {
		newestFirst[len(days)-1-i] = d
	}

	f, err := fzf.New(
		fzf.WithPrompt("Day > "),
		fzf.WithInputPosition(fzf.InputPositionTop),
		fzf.WithLimit(1),
	)
	if err != nil {
		return time.Time{}, err
	}

	idxs, err := f.Find(
		newestFirst,
		func(i int) string {
			return newestFirst[i].Format("2006-01-02  Monday")
		},
		fzf.WithPreviewWindow(func(i, w, h int) string {
			if i < 0 || i >= len(newestFirst) {
				return ""
			}
			return preview(newestFirst[i])
		}),
	)
	if err != nil {
		return time.Time{}, err
	}
	if len(idxs) == 0 {
		return time.Time{}, errPickCancelled
	}
	return newestFirst[idxs[0]], nil
}

func (a *App) pickDay(days []time.Time, preview func(day time.Time) string) (time.Time, error) {
	if a.PickDay != nil {
		return a.PickDay(days, preview)
	}
	return fzfDayPicker(days, preview)
}

// reportDays lists the days with a log, in the app's zone.
func reportDays(store *eventlog.Store, loc *time.Location) ([]time.Time, error) {
	days, err := store.Days()
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, len(days))
	for i, d := range days {
		y, m, dd := d.Date()
		out[i] = time.Date(y, m, dd, 0, 0, 0, 0, loc)
	}
	return out, nil
}
