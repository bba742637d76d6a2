package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"gorm.io/gorm"

	_ "github.com/sjperalta/vehifin-api/docs" // Swagger docs
	"github.com/sjperalta/vehifin-api/internal/config"
	"github.com/sjperalta/vehifin-api/internal/database"
	"github.com/sjperalta/vehifin-api/internal/fixtures"
	"github.com/sjperalta/vehifin-api/internal/handlers"
	"github.com/sjperalta/vehifin-api/internal/jobs"
	"github.com/sjperalta/vehifin-api/internal/repository"
	"github.com/sjperalta/vehifin-api/internal/roster"
	"github.com/sjperalta/vehifin-api/internal/services"
	"github.com/sjperalta/vehifin-api/internal/storage"
	"github.com/sjperalta/vehifin-api/pkg/logger"
)

// @title Vehifin API
// @version 1.0
// @description Vehicle finance contract viewer

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := roster.NewEngineForLocale(cfg.CollationLocale)
	if err != nil {
		logger.Warn("Unknown collation locale, using default", "locale", cfg.CollationLocale, "error", err)
		engine = roster.DefaultEngine()
	}

	db, err := openDatabase(cfg)
	if err != nil {
		logger.Error("Failed to open data source", "source", cfg.DataSource, "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	logger.Info("Data source ready", "source", cfg.DataSource)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	repos := repository.NewRepositories(db)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs := services.NewServices(repos, worker, store, engine, cfg)

	ctx := context.Background()
	if created, err := svcs.Auth.EnsureUser(ctx, cfg.DefaultUsername, cfg.DefaultPassword); err != nil {
		logger.Error("Failed to ensure default user", "error", err)
		os.Exit(1)
	} else if created {
		logger.Info("Created default user", "username", cfg.DefaultUsername)
	}

	if cfg.DataSource == config.DataSourceFixtures {
		if err := importFixtures(ctx, svcs.Seed, cfg.FixturesPath); err != nil {
			logger.Error("Failed to import fixtures", "error", err)
			os.Exit(1)
		}
	}

	svcs.Job.StartScheduled(svcs.Auth)

	router := handlers.SetupRouter(handlers.NewHandlers(svcs), cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.WaitAsync()
	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

// openDatabase connects to DATABASE_URL, or to a private in-memory database in fixtures mode
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DataSource == config.DataSourceFixtures {
		return database.OpenMemory("vehifin-fixtures")
	}
	return database.Connect(cfg.DatabaseURL)
}

// importFixtures loads the bundled contracts, or the file at path when one is set
func importFixtures(ctx context.Context, seed *services.SeedService, path string) error {
	var (
		records []fixtures.Record
		err     error
	)
	if path != "" {
		records, err = fixtures.Open(path)
	} else {
		records, err = fixtures.Default()
	}
	if err != nil {
		return fmt.Errorf("failed to read fixtures: %w", err)
	}

	result, err := seed.ImportFixtures(ctx, records)
	if err != nil {
		return err
	}
	logger.Info("Imported fixtures", "contracts", result.ContractsCreated)
	return nil
}
