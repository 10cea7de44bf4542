package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/worktimer/internal/cli/formatter"
	"github.com/alexanderramin/worktimer/internal/domain"
	"github.com/alexanderramin/worktimer/internal/eventlog"
	"github.com/alexanderramin/worktimer/internal/service"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's state and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context(), app, app.today())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatus(snap, app.DailyTarget))
			return nil
		},
	}
}

// loadSnapshot replays day's log without writing to it. Today without a
// log yet is simply idle; any other missing day is an error.
func loadSnapshot(ctx context.Context, app *App, day time.Time) (service.Snapshot, error) {
	log, err := app.Store.Lookup(day)
	if errors.Is(err, eventlog.ErrDayNotFound) && day.Equal(app.today()) {
		return service.Snapshot{Day: day, State: domain.StateIdle}, nil
	}
	if err != nil {
		return service.Snapshot{}, err
	}

	tracker := app.newTracker(log)
	if err := tracker.Rehydrate(ctx); err != nil {
		return service.Snapshot{}, fmt.Errorf("reading %s: %w", day.Format(eventlog.DayLayout), err)
	}
	snap := tracker.Snapshot()
	if !day.Equal(app.today()) {
		// A past day still open has no meaningful running time.
		snap.Running = 0
	}
	return snap, nil
}
