package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/pilot/internal/calendar"
	"github.com/alexanderramin/pilot/internal/cli/formatter"
	"github.com/alexanderramin/pilot/internal/contract"
	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/alexanderramin/pilot/internal/oracle"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var (
		date     time.Time
		window   domain.Interval
		meetings []domain.Interval
		mode     domain.Mode
		export   domain.ExportKind
		cycles   int
		noLunch  bool
		tasks    string
		planFile string
		dryRun   bool
		open     bool
	)

	cmd := &cobra.Command{
		Use:   "plan [task list]",
		Short: "Build a pomodoro schedule for a day",
		Long: `Build a pomodoro schedule for a day.

Tasks come from --plan-file, from --tasks / the arguments, or from the
configured LLM planner. Inline tasks use one task per line or per ";":

  pilot plan "Write report #deep w=9 ~120: outline, draft; Inbox #light"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			loc := app.Config.Location()

			day := app.today()
			if !date.IsZero() {
				day = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
			}

			req := contract.NewScheduleRequest(day)
			req.Window = window
			req.Meetings = meetings
			req.Mode = mode
			req.Cycles = cycles
			req.Spec = app.Config.CycleSpec(mode, cycles)
			req.ApplyLunch = app.Config.LunchRule && !noLunch
			req.Description = strings.TrimSpace(strings.Join(append([]string{tasks}, args...), "\n"))
			req.DryRun = dryRun

			planner := app.Planner
			if planFile != "" {
				planner = oracle.File{Path: planFile}
			}
			if planner == nil {
				planner = oracle.Text{}
			}

			resp, err := app.NewSchedule(planner).Build(ctx, req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatSchedule(resp))

			if dryRun || !resp.Persisted {
				return nil
			}
			kind := export
			if !cmd.Flags().Changed("export") && kind == domain.ExportNone && app.interactive() {
				if kind, err = app.promptExport(); err != nil {
					return err
				}
			}
			return runExport(ctx, app, out, resp.RunID, kind, open)
		},
	}

	flags := cmd.Flags()
	flags.Var(&dateValue{date: &date}, "date", "Day to plan (YYYY-MM-DD, default today)")
	flags.Var(newIntervalValue(app.Config.Window(), &window), "window", "Work window")
	flags.Var(&meetingsValue{list: &meetings}, "meeting", "Meeting HH:MM-HH:MM (repeatable or comma-separated)")
	flags.Var(newEnumValue(domain.ModeWork, &mode, domain.ValidModes, "mode"), "mode", "Cadence preset: work or study")
	flags.Var(newEnumValue(defaultExport(app), &export, domain.ValidExportKinds, "exporter"), "export", "Export after planning: none, ics or google")
	flags.IntVar(&cycles, "cycles", 0, "Focus cycles to plan (default from the mode preset)")
	flags.BoolVar(&noLunch, "no-lunch", false, "Do not reserve the 12:00-14:00 lunch break")
	flags.StringVar(&tasks, "tasks", "", "Inline task list")
	flags.StringVar(&planFile, "plan-file", "", "YAML or JSON plan file")
	flags.BoolVar(&dryRun, "dry-run", false, "Build without saving or exporting")
	flags.BoolVar(&open, "open", false, "Open the exported ICS file")

	return cmd
}

func defaultExport(app *App) domain.ExportKind {
	if k := app.Config.Exports.Default; domain.ValidExportKinds[k] {
		return domain.ExportKind(k)
	}
	return domain.ExportNone
}

// runExport exports a stored run and optionally opens the ICS file.
func runExport(ctx context.Context, app *App, out io.Writer, runID string, kind domain.ExportKind, open bool) error {
	if kind == domain.ExportNone || kind == "" {
		return nil
	}
	resp, err := app.Export.Export(ctx, contract.ExportRequest{RunID: runID, Kind: kind})
	if err != nil {
		return err
	}
	fmt.Fprint(out, formatter.FormatExport(resp))
	if open && resp.Record.Kind == domain.ExportICS {
		if err := calendar.OpenFile(ctx, resp.Record.Path); err != nil {
			fmt.Fprintln(out, formatter.StyleYellow.Render("could not open "+resp.Record.Path+": "+err.Error()))
		}
	}
	return nil
}
