package cli

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/worktimer/internal/cli/formatter"
	"github.com/alexanderramin/worktimer/internal/service"
	"github.com/alexanderramin/worktimer/internal/session"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const refreshInterval = time.Second

type timerKeyMap struct {
	Toggle key.Binding
	Quit   key.Binding
}

func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Quit}
}

func (k timerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultTimerKeys() timerKeyMap {
	return timerKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "toggle"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type tickMsg time.Time

// observedMsg carries a toggle from the tracker's sink, ahead of its append.
type observedMsg session.Observation

type toggledMsg struct {
	obs session.Observation
	err error
}

// timerModel is the interactive front end of a Tracker. Only one toggle is
// in flight at a time; the tracker is not touched from Update while it runs.
type timerModel struct {
	ctx     context.Context
	tracker *service.Tracker
	target  time.Duration
	every   time.Duration

	keys timerKeyMap
	help help.Model

	snap     service.Snapshot
	feedback []string
	busy     bool
	err      error
}

func newTimerModel(ctx context.Context, tracker *service.Tracker, target, every time.Duration) timerModel {
	return timerModel{
		ctx:     ctx,
		tracker: tracker,
		target:  target,
		every:   every,
		keys:    defaultTimerKeys(),
		help:    help.New(),
		snap:    tracker.Snapshot(),
	}
}

func (m timerModel) Init() tea.Cmd {
	return m.tick()
}

func (m timerModel) tick() tea.Cmd {
	if m.every <= 0 {
		return nil
	}
	return tea.Tick(m.every, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m timerModel) toggle() tea.Cmd {
	ctx, tracker := m.ctx, m.tracker
	return func() tea.Msg {
		obs, err := tracker.Toggle(ctx)
		return toggledMsg{obs: obs, err: err}
	}
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.toggle()
		}
		return m, nil

	case observedMsg:
		m.feedback = formatter.ObservationLines(session.Observation(msg))
		return m, nil

	case toggledMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.feedback = formatter.ObservationLines(msg.obs)
		m.snap = m.tracker.Snapshot()
		return m, nil

	case tickMsg:
		if !m.busy {
			m.snap = m.tracker.Snapshot()
		}
		return m, m.tick()
	}

	return m, nil
}

func (m timerModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.FormatStatus(m.snap, m.target))
	b.WriteString("\n\n")

	for _, line := range m.feedback {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.busy {
		b.WriteString(formatter.Dim("saving..."))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
