package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/danindra/workforce-scheduling/internal"
	authPostgres "github.com/danindra/workforce-scheduling/internal/auth/postgres"
	"github.com/danindra/workforce-scheduling/internal/core/events"
	"github.com/danindra/workforce-scheduling/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers: session cleanup and notification dispatch.`,
}

// Session cleanup worker command
var sessionWorkerCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Start the expired-session cleanup worker",
	Run: func(cmd *cobra.Command, args []string) {
		startSessionWorker()
	},
}

// Notification worker command
var notificationWorkerCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Start the notification worker",
	Long:  `Subscribe to scheduling events and dispatch notifications`,
	Run: func(cmd *cobra.Command, args []string) {
		startNotificationWorker()
	},
}

var cleanupInterval time.Duration

func startSessionWorker() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
	lg := logger.L()

	db, err := initDB(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open gorm: %v\n", err)
		os.Exit(1)
	}

	repo := authPostgres.NewRepository(gormDB)

	lg.Info("session cleanup worker started", "interval", cleanupInterval)

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			ctx, cancel := internal.WithTimeout(context.Background(), 30*time.Second)
			deleted, err := repo.DeleteExpired(ctx)
			cancel()
			if err != nil {
				lg.Error("session cleanup failed", "error", err)
				continue
			}
			if deleted > 0 {
				lg.Info("expired sessions removed", "count", deleted)
			}
		case sig := <-sigChan:
			lg.Info("received signal, stopping session worker", "signal", sig)
			return
		}
	}
}

func startNotificationWorker() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
	lg := logger.L()

	bus := events.NewEventBus(lg)

	// The worker only logs for now. A mail or push integration plugs in here.
	notify := func(ctx context.Context, event events.Event) error {
		lg.Info("notification",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(events.EventTypeShiftAssigned, notify)
	bus.Subscribe(events.EventTypeTimeOffApproved, notify)
	bus.Subscribe(events.EventTypeTimeOffRejected, notify)
	bus.Subscribe(events.EventTypeShiftSwapApproved, notify)

	lg.Info("notification worker is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	lg.Info("received signal, shutting down notification worker", "signal", sig)
}

func init() {
	sessionWorkerCmd.Flags().DurationVar(&cleanupInterval, "interval", 15*time.Minute, "Cleanup interval")

	workerCmd.AddCommand(sessionWorkerCmd)
	workerCmd.AddCommand(notificationWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
