package formatter

import (
	"fmt"

	"github.com/alexanderramin/worktimer/internal/service"
	"github.com/alexanderramin/worktimer/internal/session"
)

// ObservationLines renders the console feedback for one toggle.
func ObservationLines(obs session.Observation) []string {
	switch obs.Kind {
	case session.ObservationStarted:
		return []string{
			fmt.Sprintf("Starting to work at %s", StyleGreen.Render(obs.At.String())),
		}
	case session.ObservationStopped:
		return []string{
			fmt.Sprintf("Stopped working at %s", StyleYellow.Render(obs.At.String())),
			fmt.Sprintf("Worked %s", Bold(FormatDuration(obs.Elapsed))),
			fmt.Sprintf("Total work time today: %s", Bold(FormatDuration(obs.Total))),
		}
	default:
		return nil
	}
}

// ResumeLines summarizes a session just rebuilt from its log.
func ResumeLines(snap service.Snapshot) []string {
	if snap.Events == 0 {
		return []string{Dim("No toggles yet today.")}
	}
	lines := []string{
		fmt.Sprintf("Replayed %d toggle(s), total work time today: %s", snap.Events, Bold(FormatDuration(snap.Total))),
	}
	if snap.ActiveStart != nil {
		lines = append(lines, fmt.Sprintf("Working since %s", StyleGreen.Render(snap.ActiveStart.String())))
	}
	return lines
}
