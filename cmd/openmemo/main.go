package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mlapinski/openmemo/internal/cli"
	"github.com/mlapinski/openmemo/internal/config"
	"github.com/mlapinski/openmemo/internal/db"
	"github.com/mlapinski/openmemo/internal/oracle"
	"github.com/mlapinski/openmemo/internal/repository"
	"github.com/mlapinski/openmemo/internal/service"
	"github.com/mlapinski/openmemo/internal/ssrf"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	cardRepo := repository.NewSQLiteCardRepo(database)
	lustateRepo := repository.NewSQLiteLUStateRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var useCaseObserver service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		useCaseObserver = service.NewLogUseCaseObserver(os.Stderr)
	}

	newScheduler := func(excludeCardID string) *ssrf.Scheduler {
		guarded := oracle.NewMaxRangeGuard(oracle.NewSQLiteOracle(database, excludeCardID), cfg.MaxIntervalDays)
		return ssrf.New(guarded)
	}

	reviewSvc := service.NewReviewService(cardRepo, lustateRepo, newScheduler, useCaseObserver)
	importSvc := service.NewImportService(uow, useCaseObserver)
	exportSvc := service.NewExportService(cardRepo, useCaseObserver)

	app := &cli.App{
		Review: reviewSvc,
		Import: importSvc,
		Export: exportSvc,

		Oracle: oracle.NewSQLiteOracle(database, ""),

		CardCount: func(ctx context.Context) (int, error) {
			cards, err := cardRepo.List(ctx)
			if err != nil {
				return 0, err
			}
			return len(cards), nil
		},

		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
