package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/crediscope/crediscope/config"
	"github.com/crediscope/crediscope/internal/logging"
	"github.com/crediscope/crediscope/internal/processor"
	"github.com/crediscope/crediscope/internal/store"
)

// Backfills source names for items that carry scraped data but a missing
// or placeholder source, in bounded batches.
func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx := context.Background()
	contentStore, err := store.NewMongoStore(ctx)
	if err != nil {
		slog.Error("Failed to connect to content store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	batchSize := intFromEnv("BACKFILL_BATCH_SIZE", 50)
	maxBatches := intFromEnv("BACKFILL_MAX_BATCHES", 20)

	seen := make(map[string]struct{})
	updated, skipped := 0, 0

	for batch := 0; batch < maxBatches; batch++ {
		items, err := contentStore.ListItemsForSourceBackfill(ctx, batchSize)
		if err != nil {
			slog.Error("Failed to list backfill candidates", slog.String("error", err.Error()))
			os.Exit(1)
		}

		progress := false
		for _, item := range items {
			if _, done := seen[item.ID]; done {
				continue
			}
			seen[item.ID] = struct{}{}
			progress = true

			name := processor.SourceNameFromScrapedData(item.RawScrapedData)
			if name == "" {
				skipped++
				continue
			}

			item.SourceName = name
			if err := contentStore.SaveItem(ctx, item); err != nil {
				slog.Error("Failed to save backfilled item",
					slog.String("item_id", item.ID),
					slog.String("error", err.Error()))
				continue
			}
			updated++
		}

		if !progress || len(items) < batchSize {
			break
		}
	}

	slog.Info("Source-name backfill finished",
		slog.Int("updated", updated),
		slog.Int("skipped", skipped))
}

func intFromEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
