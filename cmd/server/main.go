package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"

	"portfolio-analytics/internal/cashflow"
	"portfolio-analytics/internal/config"
	"portfolio-analytics/internal/database"
	"portfolio-analytics/internal/handlers"
	"portfolio-analytics/internal/ingest"
	"portfolio-analytics/internal/ledger"
	"portfolio-analytics/internal/logger"
	"portfolio-analytics/internal/repositories"
	"portfolio-analytics/internal/services"
)

func main() {
	migrateCmd := flag.String("migrate", "", "Migration command (up/down/version)")
	steps := flag.Int("steps", 0, "Number of migration steps (0 means all)")
	importCSV := flag.Bool("import", false, "Copy the CSV datasets into MySQL and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.Info().
		Str("environment", cfg.Environment).
		Str("data_source", cfg.Data.Source).
		Msg("Starting portfolio analytics")

	if *migrateCmd != "" {
		handleMigration(cfg, log, *migrateCmd, *steps)
		return
	}

	ctx := context.Background()

	if *importCSV {
		if err := runImport(ctx, cfg, log); err != nil {
			log.Fatal().Err(err).Msg("Import failed")
		}
		return
	}

	store, err := loadStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load ledger data")
	}

	cash := cashflow.CashRange{From: cfg.Data.CashAccountFrom, To: cfg.Data.CashAccountTo}
	dashboard := services.NewDashboardService(store, cash)
	router := handlers.SetupRouter(dashboard, log)

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.ServerAddress).Msg("Server is running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}
	log.Info().Msg("Server exited gracefully")
}

func csvLoader(cfg *config.Config, log zerolog.Logger) *ingest.Loader {
	var source ingest.Source = ingest.DirSource{Dir: cfg.Data.Dir}
	if cfg.Data.BaseURL != "" {
		source = ingest.HTTPSource{
			BaseURL: cfg.Data.BaseURL,
			Client:  &http.Client{Timeout: cfg.Data.FetchTimeout},
		}
	}
	return ingest.NewLoader(source, log)
}

func newLedgerService(db *sql.DB, log zerolog.Logger) *services.LedgerService {
	return services.NewLedgerService(
		db,
		repositories.NewPropertyRepository(db),
		repositories.NewTrialBalanceRepository(db),
		repositories.NewMappingRepository(db),
		repositories.NewLoanRepository(db),
		log,
	)
}

func loadStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*ledger.Store, error) {
	if cfg.Data.Source == config.SourceCSV {
		return csvLoader(cfg, log).Load(ctx)
	}

	db, err := database.NewConnection(cfg, log)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return newLedgerService(db, log).LoadStore(ctx)
}

func runImport(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, err := csvLoader(cfg, log).Load(ctx)
	if err != nil {
		return err
	}

	db, err := database.NewConnection(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := newLedgerService(db, log).Import(ctx, store)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d records (batch %s)\n", result.RecordsCount, result.BatchID)
	return nil
}

func handleMigration(cfg *config.Config, log zerolog.Logger, command string, steps int) {
	db, err := database.NewConnection(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database exists")
	}
	db.Close()

	m, err := migrate.New(
		fmt.Sprintf("file://%s", cfg.Migration.Dir),
		cfg.GetMigrationDBURL(),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize migrate")
	}
	defer m.Close()

	switch command {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "version":
		version, dirty, verErr := m.Version()
		if verErr != nil {
			if errors.Is(verErr, migrate.ErrNilVersion) {
				log.Info().Msg("No migrations have been applied yet")
				return
			}
			log.Fatal().Err(verErr).Msg("Failed to get version")
		}
		fmt.Printf("Current migration version: %d (dirty: %v)\n", version, dirty)
		return
	default:
		log.Fatal().Str("command", command).Msg("Invalid migration command")
	}

	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("No migration changes to apply")
			return
		}
		log.Fatal().Err(err).Msg("Migration failed")
	}

	log.Info().Msg("Migration completed successfully")
}
