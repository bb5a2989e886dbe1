package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/cli"
	"github.com/alexanderramin/consistency/internal/config"
	"github.com/alexanderramin/consistency/internal/db"
	"github.com/alexanderramin/consistency/internal/metrics"
	"github.com/alexanderramin/consistency/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config loading logs its own problems at warn level before the
	// configured level is known.
	bootLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	loader := config.NewLoader(bootLogger)
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	clock := calendar.RealClock{}
	recorder := metrics.NewRecorder()
	observers := []service.UseCaseObserver{service.NewLogUseCaseObserver(logger), recorder}

	app := &cli.App{
		Users:    service.NewUserService(uow, clock, observers...),
		Tasks:    service.NewTaskService(uow, clock, observers...),
		CheckIns: service.NewCheckInService(uow, clock, observers...),
		Stats:    service.NewStatsService(uow, clock, observers...),

		UserID:              cfg.User,
		DefaultTimezone:     cfg.Defaults.Timezone,
		DefaultCheckInTimes: cfg.Defaults.CheckInTimes,
		RememberUser:        loader.RememberUser,
	}

	// Forms and the live view need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	execErr := rootCmd.Execute()

	if cfg.Metrics.Textfile != "" {
		if err := recorder.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn("Failed to write metrics", slog.String("path", cfg.Metrics.Textfile), slog.String("error", err.Error()))
		}
	}
	return execErr
}
