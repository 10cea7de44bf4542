package cli

import (
	"sync"

	"github.com/alexanderramin/worktimer/internal/service"
	"github.com/alexanderramin/worktimer/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer as a full-screen terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sink := &programSink{}
			tracker, err := openToday(ctx, app, nil, service.WithSink(sink))
			if err != nil {
				return err
			}

			model := newTimerModel(ctx, tracker, app.DailyTarget, refreshInterval)
			final, err := app.runProgram(model, sink.attach, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if m, ok := final.(timerModel); ok && m.err != nil {
				return m.err
			}
			return nil
		},
	}
}

// programSink forwards live observations into a running program. The
// tracker reports before it appends, so the view shows a toggle while the
// entry is still being written.
type programSink struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (s *programSink) attach(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

func (s *programSink) Observe(obs session.Observation) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(observedMsg(obs))
	}
}
