package cli

import (
	"io"
	"time"

	"github.com/alexanderramin/worktimer/internal/eventlog"
	"github.com/alexanderramin/worktimer/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the stores and services shared by every command.
type App struct {
	Store    *eventlog.Store
	History  HistoryFactory
	Observer service.UseCaseObserver

	// Location is the zone that decides both the day and the time of day.
	Location    *time.Location
	DailyTarget time.Duration
	// Clock replaces time.Now when set.
	Clock func() time.Time

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// RunProgram runs a bubbletea model to completion, handing the
	// program's Send to attach before it starts. Defaults to a full-screen
	// tea.Program.
	RunProgram func(m tea.Model, attach func(send func(tea.Msg)), in io.Reader, out io.Writer) (tea.Model, error)
	// PickDay chooses a day for `report --pick`. Defaults to a fuzzy finder.
	PickDay DayPicker
}

// NewRootCmd creates the top-level "worktimer" command. Run without
// arguments it reads toggles from stdin, one per line.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "worktimer",
		Short: "Toggle-based personal work timer",
		Long: `Press Enter to start working, press it again to stop.
Every toggle is appended to a per-day log, so an interrupted day resumes
where it left off.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoop(cmd, app)
		},
	}

	root.AddCommand(
		newTUICmd(app),
		newStatusCmd(app),
		newReportCmd(app),
		newHistoryCmd(app),
	)

	return root
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}

func (a *App) now() time.Time {
	if a.Clock == nil {
		return time.Now().In(a.location())
	}
	return a.Clock().In(a.location())
}

func (a *App) today() time.Time {
	y, m, d := a.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, a.location())
}

func (a *App) newTracker(log service.EventLog, opts ...service.TrackerOption) *service.Tracker {
	base := []service.TrackerOption{service.WithLocation(a.location())}
	if a.Clock != nil {
		base = append(base, service.WithClock(a.Clock))
	}
	if a.Observer != nil {
		base = append(base, service.WithObserver(a.Observer))
	}
	return service.NewTracker(log, append(base, opts...)...)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runProgram(m tea.Model, attach func(send func(tea.Msg)), in io.Reader, out io.Writer) (tea.Model, error) {
	if a.RunProgram != nil {
		return a.RunProgram(m, attach, in, out)
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
	attach(p.Send)
	return p.Run()
}
