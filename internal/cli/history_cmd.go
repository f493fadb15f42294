package cli

import (
	"fmt"

	"github.com/alexanderramin/pilot/internal/cli/formatter"
	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.History.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(runs, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var (
		export domain.ExportKind
		open   bool
	)

	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show a saved schedule (default: the latest one for today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			run, err := resolveRun(cmd, app, args)
			if err != nil {
				return err
			}
			exports, err := app.History.Exports(ctx, run.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatRun(run, exports))
			return runExport(ctx, app, out, run.ID, export, open)
		},
	}

	cmd.Flags().Var(newEnumValue(domain.ExportNone, &export, domain.ValidExportKinds, "exporter"), "export", "Export the run: ics or google")
	cmd.Flags().BoolVar(&open, "open", false, "Open the exported ICS file")
	return cmd
}

// resolveRun loads the run named by args[0], or today's latest run.
func resolveRun(cmd *cobra.Command, app *App, args []string) (*domain.ScheduleRun, error) {
	if len(args) == 1 {
		return app.History.Get(cmd.Context(), args[0])
	}
	run, err := app.History.Current(cmd.Context(), app.today().Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("no schedule for today, run `pilot plan` first: %w", err)
	}
	return run, nil
}
