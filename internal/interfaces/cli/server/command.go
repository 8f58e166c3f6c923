package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/dreamlog-app/dreamlog/internal/infrastructure/config"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/database"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/migration"
	httpRouter "github.com/dreamlog-app/dreamlog/internal/interfaces/http"
	"github.com/dreamlog-app/dreamlog/internal/shared/goroutine"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/version"
)

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Dreamlog HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	ginMode := mapEnvToGinMode(env)

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = ginMode

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting server",
		"environment", env,
		"version", version.String(),
		"auto-migrate", autoMigrate)

	if missing := cfg.MissingSecrets(); len(missing) > 0 {
		if cfg.Server.Mode == gin.ReleaseMode {
			return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
		}
		logger.Warn("running with missing configuration, affected endpoints will fail",
			"missing", missing)
	}

	gin.SetMode(cfg.Server.Mode)

	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	elevatedDB, err := database.OpenElevated(&cfg.Database)
	switch {
	case errors.Is(err, database.ErrElevatedNotConfigured):
		logger.Warn("elevated database role not configured, signup with dream is disabled")
	case err != nil:
		return fmt.Errorf("failed to open elevated database connection: %w", err)
	default:
		defer func() {
			if err := database.CloseConn(elevatedDB); err != nil {
				logger.Error("failed to close elevated database connection", "error", err)
			}
		}()
	}

	if err := handleMigrations(env, cfg.Database.Driver); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	log := logger.NewLoggerWithSlog(logger.WithComponent("http"))
	router := httpRouter.NewRouter(database.Get(), elevatedDB, cfg, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:        cfg.Server.GetAddr(),
		Handler:     router.GetEngine(),
		ReadTimeout: 15 * time.Second,
		// insight generation waits on the model for up to gemini.timeout
		WriteTimeout: cfg.Gemini.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	goroutine.SafeGo(log, "http-server", func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		router.Shutdown(context.Background())
		return fmt.Errorf("failed to start server: %w", err)
	}

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}
	router.Shutdown(ctx)

	logger.Info("server exited gracefully")
	return nil
}

func handleMigrations(environment, driver string) error {
	if skipMigrationCheck {
		logger.Info("skipping migration check")
		return nil
	}

	log := logger.NewLogger().Named("migration")

	if autoMigrate {
		if environment == "production" {
			logger.Warn("auto-migration is enabled in production environment - this is not recommended!")
		}

		logger.Info("running auto-migration")
		migrationManager := migration.NewManager(environment, driver, log)
		if err := migrationManager.Migrate(database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		logger.Info("auto-migration completed successfully",
			"strategy", migrationManager.GetStrategy().GetName())
		return nil
	}

	if driver != database.DriverPostgres && driver != "" {
		logger.Info("migration check only applies to postgres", "driver", driver)
		return nil
	}

	logger.Info("checking migration status")

	strategy := migration.NewGooseStrategy(log)
	if gooseStrategy, ok := strategy.(*migration.GooseStrategy); ok {
		version, err := gooseStrategy.GetVersion(database.Get())
		if err != nil {
			logger.Warn("failed to check migration status", "error", err)
		} else {
			logger.Info("current migration version",
				"version", version)
		}
	}

	logger.Info("migration check completed")

	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "development", "dev":
		return "debug"
	case "test", "testing":
		return "test"
	case "debug":
		return "debug"
	case "release":
		return "release"
	default:
		return "debug"
	}
}
