// Command seed fills an empty contract database with sample contracts or a fixture file
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/sjperalta/vehifin-api/internal/config"
	"github.com/sjperalta/vehifin-api/internal/database"
	"github.com/sjperalta/vehifin-api/internal/fixtures"
	"github.com/sjperalta/vehifin-api/internal/repository"
	"github.com/sjperalta/vehifin-api/internal/services"
	"github.com/sjperalta/vehifin-api/internal/storage"
	"github.com/sjperalta/vehifin-api/pkg/logger"
)

func main() {
	fixturesPath := flag.String("fixtures", "", "import this fixture file instead of generating samples")
	bundled := flag.Bool("bundled", false, "import the bundled fixture contracts")
	seed := flag.Int64("seed", 0, "random seed for sample generation (0 picks one)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Setup(cfg.Environment)

	if cfg.DataSource != config.DataSourceDatabase {
		logger.Error("Seeding needs DATA_SOURCE=database")
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	svc := services.NewSeedService(repository.NewContractRepository(db), store)
	if *seed != 0 {
		svc = svc.WithSeed(*seed)
	}

	ctx := context.Background()
	var result *services.SeedResult
	switch {
	case *fixturesPath != "" || *bundled:
		var records []fixtures.Record
		if *fixturesPath != "" {
			records, err = fixtures.Open(*fixturesPath)
		} else {
			records, err = fixtures.Default()
		}
		if err != nil {
			logger.Error("Failed to read fixtures", "error", err)
			os.Exit(1)
		}
		result, err = svc.ImportFixtures(ctx, records)
	default:
		result, err = svc.GenerateSample(ctx)
	}

	if errors.Is(err, services.ErrAlreadySeeded) {
		logger.Info(result.Message)
		return
	}
	if err != nil {
		logger.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info(result.Message, "contracts", result.ContractsCreated)
}
