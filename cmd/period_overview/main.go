package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/fluxledger/period_overview/internal/adapters/database/pgsql"
	"github.com/fluxledger/period_overview/internal/core/domain"
	"github.com/fluxledger/period_overview/internal/core/services"
	"github.com/fluxledger/period_overview/internal/platform/calendar"
	"github.com/fluxledger/period_overview/internal/platform/config"
	"github.com/fluxledger/period_overview/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const isoDate = "2006-01-02"

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	targetKind := flag.String("kind", "category", "target kind: category or tag")
	targetID := flag.String("target", "", "target ID to dump an overview for")
	startFlag := flag.String("start", "", "range start (YYYY-MM-DD)")
	endFlag := flag.String("end", "", "range end (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		os.Exit(1)
	}

	currencyRepo := pgsql.NewPgxCurrencyRepository(dbPool)
	journalRepo := pgsql.NewPgxJournalRepository(dbPool)
	statisticRepo := pgsql.NewPgxStatisticRepository(dbPool)

	primary, err := currencyRepo.FindCurrencyByCode(ctx, cfg.PrimaryCurrencyCode)
	if err != nil {
		logger.Error("Failed to resolve primary currency",
			slog.String("code", cfg.PrimaryCurrencyCode),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	cal := calendar.New()
	overviewSvc := services.NewOverviewService(
		journalRepo,
		statisticRepo,
		currencyRepo,
		cal,
		cal,
		services.WithPrimaryCurrency(*primary),
		services.WithConvertToPrimary(cfg.ConvertToPrimary),
	)

	if *targetID == "" {
		logger.Info("No target given, nothing to do.")
		return
	}

	start, err := time.Parse(isoDate, *startFlag)
	if err != nil {
		logger.Error("Invalid start date", slog.String("error", err.Error()))
		os.Exit(1)
	}
	end, err := time.Parse(isoDate, *endFlag)
	if err != nil {
		logger.Error("Invalid end date", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// No balance reader implementation ships with the library, so the dump
	// covers the derived-balance target kinds only.
	granularity := domain.Granularity(cfg.ViewRange)
	var entries []domain.PeriodEntry
	switch *targetKind {
	case "category":
		target := domain.OverviewTarget{Kind: domain.TargetCategory, TargetID: *targetID}
		entries, err = overviewSvc.CategoryPeriodOverview(ctx, target, start, end, granularity)
	case "tag":
		target := domain.OverviewTarget{Kind: domain.TargetTag, TargetID: *targetID}
		entries, err = overviewSvc.TagPeriodOverview(ctx, target, start, end, granularity)
	default:
		logger.Error("Unsupported target kind", slog.String("kind", *targetKind))
		os.Exit(1)
	}
	if err != nil {
		logger.Error("Failed to compute overview", slog.String("error", err.Error()))
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		logger.Error("Failed to encode overview", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
