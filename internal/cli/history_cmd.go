package cli

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/worktimer/internal/cli/formatter"
	"github.com/alexanderramin/worktimer/internal/db"
	"github.com/alexanderramin/worktimer/internal/service"
	"github.com/spf13/cobra"
)

// HistoryFactory builds the history service the first time `history` runs.
type HistoryFactory func() (service.HistoryService, error)

// OpenHistoryIndex returns a factory that opens the SQLite index at path on
// first use, and a closer for the connection it opened. Commands that never
// ask for history never touch the index.
func OpenHistoryIndex(store service.DayStore, path string, observer service.UseCaseObserver) (HistoryFactory, func() error) {
	var (
		database *sql.DB
		history  service.HistoryService
	)

	open := func() (service.HistoryService, error) {
		if history != nil {
			return history, nil
		}
		conn, err := db.OpenDB(path)
		if err != nil {
			return nil, fmt.Errorf("opening history index: %w", err)
		}
		database = conn
		history = service.NewHistoryService(store, db.NewSQLiteUnitOfWork(conn), observer)
		return history, nil
	}

	closeIndex := func() error {
		if database == nil {
			return nil
		}
		return database.Close()
	}

	return open, closeIndex
}

func newHistoryCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show worked time per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return errors.New("history index is not configured")
			}
			history, err := app.History()
			if err != nil {
				return err
			}
			today := app.today()
			res, err := history.Summaries(cmd.Context(), days, today)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistory(res, today))
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "Number of days to include, ending today")

	return cmd
}
