package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/worktimer/internal/cli/formatter"
	"github.com/alexanderramin/worktimer/internal/service"
	"github.com/alexanderramin/worktimer/internal/session"
	"github.com/spf13/cobra"
)

// runLoop resumes today's session and toggles once per stdin line until EOF.
func runLoop(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Hello from the Work Timer!")
	fmt.Fprintf(out, "Using log directory: %s\n", app.Store.Dir())

	tracker, err := openToday(ctx, app, out, service.WithSink(printObservations(out)))
	if err != nil {
		return err
	}

	for _, line := range formatter.ResumeLines(tracker.Snapshot()) {
		fmt.Fprintln(out, line)
	}
	if app.interactive() {
		fmt.Fprintln(out, formatter.Dim("Press Enter to toggle. Ctrl+D quits."))
	}

	return tracker.Run(ctx, service.NewLineSource(cmd.InOrStdin()))
}

// openToday opens (creating if needed) today's log and replays it into a
// fresh tracker.
func openToday(ctx context.Context, app *App, out io.Writer, opts ...service.TrackerOption) (*service.Tracker, error) {
	log, err := app.Store.Open(app.today())
	if err != nil {
		return nil, err
	}
	if log.Created() && out != nil {
		fmt.Fprintln(out, "It's a new dawn, it's a new day...")
	}

	tracker := app.newTracker(log, opts...)
	if err := tracker.Rehydrate(ctx); err != nil {
		return nil, fmt.Errorf("resuming %s: %w", log.Day().Format("2006-01-02"), err)
	}
	return tracker, nil
}

func printObservations(out io.Writer) service.ObservationSink {
	return service.ObservationSinkFunc(func(obs session.Observation) {
		for _, line := range formatter.ObservationLines(obs) {
			fmt.Fprintln(out, line)
		}
	})
}
