package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/worktimer/internal/cli/formatter"
	"github.com/alexanderramin/worktimer/internal/eventlog"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "report [YYYY-MM-DD]",
		Short: "List the work intervals of a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			day := app.today()

			switch {
			case pick && len(args) == 1:
				return errors.New("--pick cannot be combined with a date")
			case pick:
				days, err := reportDays(app.Store, app.location())
				if err != nil {
					return err
				}
				day, err = app.pickDay(days, func(d time.Time) string {
					snap, err := loadSnapshot(ctx, app, d)
					if err != nil {
						return err.Error()
					}
					return formatter.FormatReport(snap)
				})
				if errors.Is(err, errPickCancelled) {
					return nil
				}
				if err != nil {
					return err
				}
			case len(args) == 1:
				parsed, err := time.ParseInLocation(eventlog.DayLayout, args[0], app.location())
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
				}
				day = parsed
			}

			snap, err := loadSnapshot(ctx, app, day)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatReport(snap))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pick, "pick", "p", false, "Choose the day with a fuzzy finder")

	return cmd
}
