package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/crediscope/crediscope/config"
	"github.com/crediscope/crediscope/internal/clients"
	"github.com/crediscope/crediscope/internal/logging"
	"github.com/crediscope/crediscope/internal/quota"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	tracker := quota.NewTracker(clients.GetDynamoDBClient())

	intervalHours := 24
	if v := os.Getenv("QUOTA_CLEANUP_INTERVAL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			intervalHours = n
		}
	}

	ticker := time.NewTicker(time.Duration(intervalHours) * time.Hour)
	defer ticker.Stop()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	ctx := context.Background()
	runCleanup(ctx, tracker)

	for {
		select {
		case <-ticker.C:
			runCleanup(ctx, tracker)
		case <-stopChan:
			slog.Info("Shutting down quota cleanup gracefully...")
			return
		}
	}
}

func runCleanup(ctx context.Context, tracker *quota.Tracker) {
	deleted, err := tracker.ResetAndCleanup(ctx)
	if err != nil {
		slog.Error("Quota cleanup failed",
			slog.Int("deleted_before_failure", deleted),
			slog.String("error", err.Error()))
		return
	}
	slog.Info("Quota cleanup finished", slog.Int("deleted", deleted))
}
