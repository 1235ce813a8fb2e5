package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/crediscope/crediscope/config"
	"github.com/crediscope/crediscope/internal/analysis"
	"github.com/crediscope/crediscope/internal/clients"
	"github.com/crediscope/crediscope/internal/logging"
	"github.com/crediscope/crediscope/internal/pipeline"
	"github.com/crediscope/crediscope/internal/processor"
	"github.com/crediscope/crediscope/internal/store"
)

// Reprocesses items whose analysis left score fields unset. Stored raw
// responses are preferred; only items without one trigger new analysis
// calls.
func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	if err := clients.InitOpenAI(); err != nil {
		slog.Error("Analysis client is not configured, refusing to start",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	contentStore, err := store.NewMongoStore(ctx)
	if err != nil {
		slog.Error("Failed to connect to content store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	orch := pipeline.NewOrchestrator(pipeline.Deps{
		Engine:    analysis.NewEngine(clients.GetOpenAIClient()),
		Processor: processor.New(contentStore),
		Store:     contentStore,
	})

	batchSize := 50
	if v := os.Getenv("REPROCESS_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			batchSize = n
		}
	}

	items, err := contentStore.ListItemsMissingScores(ctx, batchSize)
	if err != nil {
		slog.Error("Failed to list items missing scores", slog.String("error", err.Error()))
		os.Exit(1)
	}

	succeeded, failed := 0, 0
	for _, item := range items {
		if err := orch.ReprocessArticle(ctx, item); err != nil {
			slog.Error("Reprocessing failed",
				slog.String("item_id", item.ID),
				slog.String("title", item.Title),
				slog.String("error", err.Error()))
			failed++
			continue
		}
		succeeded++
	}

	slog.Info("Reprocessing finished",
		slog.Int("succeeded", succeeded),
		slog.Int("failed", failed))
}
