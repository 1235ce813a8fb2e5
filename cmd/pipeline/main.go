package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/crediscope/crediscope/config"
	"github.com/crediscope/crediscope/internal/analysis"
	"github.com/crediscope/crediscope/internal/clients"
	"github.com/crediscope/crediscope/internal/extractor"
	"github.com/crediscope/crediscope/internal/logging"
	"github.com/crediscope/crediscope/internal/models"
	"github.com/crediscope/crediscope/internal/pipeline"
	"github.com/crediscope/crediscope/internal/processor"
	"github.com/crediscope/crediscope/internal/quota"
	"github.com/crediscope/crediscope/internal/ratelimit"
	"github.com/crediscope/crediscope/internal/store"
)

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

	vc := clients.InitValkey()
	defer clients.CloseValkey()

	limiter := ratelimit.NewLimiter(ratelimit.NewValkeyClockStore(vc))
	ext, err := extractor.New(limiter)
	if err != nil {
		slog.Error("Extractor is not configured, refusing to start",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	contentStore, err := store.NewMongoStore(ctx)
	if err != nil {
		slog.Error("Failed to connect to content store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tracker := quota.NewTracker(clients.GetDynamoDBClient())
	engine := analysis.NewEngine(clients.GetOpenAIClient())
	proc := processor.New(contentStore)

	var events pipeline.EventPublisher
	if os.Getenv("KAFKA_BOOTSTRAP_SERVERS") != "" {
		producer, err := clients.InitKafkaProducer()
		if err != nil {
			slog.Warn("Kafka producer unavailable, events disabled",
				slog.String("error", err.Error()))
		} else {
			events = producer
			defer clients.CloseKafkaProducer()
		}
	}

	orch := pipeline.NewOrchestrator(pipeline.Deps{
		Extractor: ext,
		Engine:    engine,
		Processor: proc,
		Store:     contentStore,
		Events:    events,
	})

	pollInterval := intFromEnv("PIPELINE_POLL_INTERVAL_SECONDS", 300)
	batchSize := intFromEnv("PIPELINE_BATCH_SIZE", 20)

	ticker := time.NewTicker(time.Duration(pollInterval) * time.Second)
	defer ticker.Stop()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("Pipeline worker started",
		slog.Int("poll_interval_seconds", pollInterval),
		slog.Int("batch_size", batchSize))

	processBatch(ctx, orch, tracker, contentStore, batchSize)

	for {
		select {
		case <-ticker.C:
			processBatch(ctx, orch, tracker, contentStore, batchSize)
		case <-stopChan:
			slog.Info("Shutting down pipeline worker gracefully...")
			cancel()
			return
		}
	}
}

// processBatch walks the pending items, charging the source's daily quota
// before each attempt. The counter measures extraction attempts, not
// successes: a failed extraction still consumes quota, which keeps a
// persistently failing source from monopolizing the shared rate clock.
func processBatch(ctx context.Context, orch *pipeline.Orchestrator, tracker *quota.Tracker, contentStore store.ContentStore, batchSize int) {
	items, err := contentStore.ListPendingItems(ctx, batchSize)
	if err != nil {
		slog.Error("Failed to list pending items", slog.String("error", err.Error()))
		return
	}
	if len(items) == 0 {
		slog.Debug("No pending items")
		return
	}

	for _, item := range items {
		if ctx.Err() != nil {
			return
		}

		source := quotaSource(item)
		allowed, err := tracker.IsAllowed(ctx, source)
		if err != nil {
			slog.Error("Quota check failed, skipping item",
				slog.String("item_id", item.ID),
				slog.String("source", source),
				slog.String("error", err.Error()))
			continue
		}
		if !allowed {
			slog.Info("Daily quota reached, skipping item",
				slog.String("item_id", item.ID),
				slog.String("source", source))
			continue
		}

		if _, err := tracker.IncrementCount(ctx, source); err != nil {
			slog.Error("Failed to record quota usage, skipping item",
				slog.String("item_id", item.ID),
				slog.String("source", source),
				slog.String("error", err.Error()))
			continue
		}

		if err := orch.ProcessArticle(ctx, item, item.SourceURL); err != nil {
			slog.Error("Item processing failed",
				slog.String("item_id", item.ID),
				slog.String("error", err.Error()))
		}
	}
}

// quotaSource keys the daily counter. Before extraction the item's source
// name is whatever ingestion assigned; the URL host is the fallback.
func quotaSource(item *models.ContentItem) string {
	if item.SourceName != "" && item.SourceName != models.SourceUnavailable {
		return item.SourceName
	}
	if parsed, err := url.Parse(item.SourceURL); err == nil && parsed.Hostname() != "" {
		return parsed.Hostname()
	}
	return "unknown"
}

func intFromEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("Invalid integer override, using default", slog.String("key", key), slog.String("value", v))
		return fallback
	}
	return n
}
