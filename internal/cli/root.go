package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/pilot/internal/config"
	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/alexanderramin/pilot/internal/logging"
	"github.com/alexanderramin/pilot/internal/oracle"
	"github.com/alexanderramin/pilot/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Config     *config.Config
	ConfigPath string

	// Planner is the default plan source. --plan-file replaces it per run.
	Planner     oracle.Oracle
	NewSchedule func(planner oracle.Oracle) service.ScheduleService
	Export      service.ExportService
	History     service.HistoryService

	// IsInteractive reports whether prompts may be shown.
	IsInteractive func() bool
	// PromptExport asks which exporter to run after a plan. Nil uses the
	// huh form.
	PromptExport func() (domain.ExportKind, error)
	Now          func() time.Time
	// LogLevel, when set, follows the --log-level flag.
	LogLevel *slog.LevelVar
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// today returns the current date in the configured time zone.
func (a *App) today() time.Time {
	t := a.now().In(a.Config.Location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NewRootCmd creates the top-level "pilot" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pilot",
		Short:         "Pomodoro day planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var logLevel string
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if logLevel != "" && app.LogLevel != nil {
			app.LogLevel.Set(logging.ParseLevel(logLevel))
		}
	}

	root.AddCommand(
		newPlanCmd(app),
		newHistoryCmd(app),
		newShowCmd(app),
		newFocusCmd(app),
		newConfigCmd(app),
		newAuthCmd(app),
	)

	return root
}
