package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/caixadigital/fluxo_backend/internal/core/services"
	"github.com/caixadigital/fluxo_backend/internal/handlers"
	"github.com/caixadigital/fluxo_backend/internal/middleware"
	"github.com/caixadigital/fluxo_backend/internal/repositories/database/pgsql"
	"github.com/caixadigital/fluxo_backend/pkg/config"
	"github.com/caixadigital/fluxo_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Fluxo Backend API
// @version 1.0
// @description Cash-flow ledger backend: payable/receivable settlement, bank statement imports and balance recalculation.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build the repository and service layers, then register all routes
	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos)
	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
