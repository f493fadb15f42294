package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexanderramin/pilot/internal/calendar"
	"github.com/alexanderramin/pilot/internal/cli"
	"github.com/alexanderramin/pilot/internal/config"
	"github.com/alexanderramin/pilot/internal/db"
	"github.com/alexanderramin/pilot/internal/llm"
	"github.com/alexanderramin/pilot/internal/logging"
	"github.com/alexanderramin/pilot/internal/oracle"
	"github.com/alexanderramin/pilot/internal/repository"
	"github.com/alexanderramin/pilot/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfgPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	level := new(slog.LevelVar)
	level.Set(logging.ParseLevel(cfg.Log.Level))
	logger := logging.NewLogger(level, cfg.Log.Format)

	// Open database
	database, err := db.OpenDB(config.ExpandPath(cfg.DBPath))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	runRepo := repository.NewSQLiteRunRepo(database)
	exportRepo := repository.NewSQLiteExportRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	// Plans come from the LLM when it is enabled, with the inline task
	// list as fallback.
	var planner oracle.Oracle = oracle.Text{}
	if llmCfg := cfg.LLMConfig(); llmCfg.Enabled {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			llmObserver = llm.NewLogObserver(logger)
		}
		planner = oracle.Fallback{
			Primary:   oracle.NewLLM(llm.NewOllamaClient(llmCfg, llmObserver), logger),
			Secondary: oracle.Text{},
			OnFallback: func(err error) {
				logger.Warn("llm planner failed, using the inline task list", "error", err)
			},
		}
	}

	// Calendar renderers: ICS always, Google once authorized.
	loc := cfg.Location()
	renderers := []calendar.Renderer{
		calendar.NewICSRenderer(config.ExpandPath(cfg.Exports.ICSDir), loc),
	}
	gc := cfg.GoogleCalendar
	if srv, err := calendar.NewGoogleService(ctx, config.ExpandPath(gc.CredentialsFile), config.ExpandPath(gc.TokenFile)); err == nil {
		renderers = append(renderers, calendar.NewGoogleRenderer(calendar.NewEventInserter(srv), gc.CalendarID, loc))
	} else {
		logger.Debug("google calendar export unavailable", "error", err)
	}

	app := &cli.App{
		Config:     cfg,
		ConfigPath: cfgPath,
		Planner:    planner,
		NewSchedule: func(p oracle.Oracle) service.ScheduleService {
			return service.NewScheduleService(p, uow, observer)
		},
		Export:   service.NewExportService(runRepo, exportRepo, renderers, observer),
		History:  service.NewHistoryService(runRepo, exportRepo, observer),
		LogLevel: level,
	}

	// Prompts need a terminal on both ends.
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
