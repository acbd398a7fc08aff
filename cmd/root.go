package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fooddelivery/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:          "fooddelivery",
	Short:        "Order lifecycle, partner assignment and live tracking for restaurant delivery",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the realtime socket and the background jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		migrate, _ := cmd.Flags().GetBool("migrate")
		return withApp(cmd.Context(), migrate, serve)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), true, func(context.Context, *CompositionRoot) error {
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo managers, partners and orders",
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := SeedOptions{}
		opts.Managers, _ = cmd.Flags().GetInt("managers")
		opts.Partners, _ = cmd.Flags().GetInt("partners")
		opts.OrdersPerManager, _ = cmd.Flags().GetInt("orders")
		opts.Password, _ = cmd.Flags().GetString("password")
		return withApp(cmd.Context(), true, func(ctx context.Context, app *CompositionRoot) error {
			return Seed(ctx, app, opts)
		})
	},
}

func init() {
	serveCmd.Flags().Bool("migrate", true, "Migrate the schema before serving")

	seedCmd.Flags().Int("managers", 2, "Number of restaurant managers")
	seedCmd.Flags().Int("partners", 5, "Number of delivery partners")
	seedCmd.Flags().Int("orders", 3, "Pending orders created per manager")
	seedCmd.Flags().String("password", "password123", "Password of every seeded account")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func openDB(config Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpg.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}

// withApp loads the configuration, connects to the database and runs fn with a composition root.
func withApp(ctx context.Context, migrate bool, fn func(context.Context, *CompositionRoot) error) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()
	slog.SetDefault(logger)

	db, err := openDB(config)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	if migrate {
		if err = postgres.Migrate(ctx, db); err != nil {
			return err
		}
		logger.InfoContext(ctx, "Schema migrated")
	}

	app, err := NewCompositionRoot(config, db, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.ErrorContext(ctx, "Failed to close application", "error", closeErr)
		}
	}()
	return fn(ctx, app)
}

func serve(ctx context.Context, app *CompositionRoot) error {
	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := app.CreateEcho()
	serveErr := make(chan error, 1)
	go func() {
		app.logger.InfoContext(ctx, "HTTP server listening", "address", app.Address())
		serveErr <- e.Start(app.Address())
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.InfoContext(ctx, "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
