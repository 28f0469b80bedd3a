package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexanderramin/mesoplan/internal/cli"
	"github.com/alexanderramin/mesoplan/internal/config"
	"github.com/alexanderramin/mesoplan/internal/db"
	"github.com/alexanderramin/mesoplan/internal/repository"
	"github.com/alexanderramin/mesoplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Custom templates that fail to load are skipped; the built-ins always work.
	catalog, err := service.LoadCatalog(cfg.Templates.Dir)
	if err != nil {
		logger.Warn("custom templates skipped", "dir", cfg.Templates.Dir, "err", err)
	}

	var observers []service.UseCaseObserver
	if cfg.Log.UseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Wire repositories
	mesocycleRepo := repository.NewSQLiteMesocycleRepo(database)
	progressionRepo := repository.NewSQLiteProgressionRepo(database)
	workoutRepo := repository.NewSQLiteWorkoutTemplateRepo(database)
	instanceRepo := repository.NewSQLiteWorkoutInstanceRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Mesocycles: service.NewMesocycleService(
			mesocycleRepo, progressionRepo, uow, catalog,
			service.MesocycleDefaults{
				Weeks:           cfg.Defaults.Weeks,
				Strategy:        cfg.Defaults.Strategy,
				DeloadFrequency: cfg.Defaults.DeloadFrequency,
			},
			logger,
			observers...,
		),
		Templates: service.NewTemplateService(catalog, observers...),
		Workouts:  service.NewWorkoutTemplateService(workoutRepo, uow, observers...),
		Schedule:  service.NewScheduleService(mesocycleRepo, instanceRepo, uow, observers...),
		Logger:    logger,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
