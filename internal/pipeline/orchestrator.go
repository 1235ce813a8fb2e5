// Package pipeline composes extraction, analysis, and data processing into
// the full per-item workflow.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/crediscope/crediscope/internal/analysis"
	"github.com/crediscope/crediscope/internal/extractor"
	"github.com/crediscope/crediscope/internal/models"
	"github.com/crediscope/crediscope/internal/store"
)

// ContentExtractor is the extraction stage as the orchestrator sees it.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (*models.RawExtraction, error)
}

// AnalysisEngine is the completion stage as the orchestrator sees it.
type AnalysisEngine interface {
	Generate(ctx context.Context, text, title string) (string, error)
}

// AnalysisProcessor persists and classifies a parsed analysis.
type AnalysisProcessor interface {
	ProcessAnalysisData(ctx context.Context, item *models.ContentItem, sa *models.StructuredAnalysis, raw string) error
}

// EventPublisher receives processed-item events; optional.
type EventPublisher interface {
	PublishProcessed(event models.ProcessedItemEvent) error
}

// ProcessingStatus reports which stages have produced data for an item.
type ProcessingStatus struct {
	Scraped    bool `json:"scraped"`
	Analyzed   bool `json:"analyzed"`
	Structured bool `json:"structured"`
	Tagged     bool `json:"tagged"`
}

// Orchestrator drives one content item through the pipeline. Stages do not
// roll back: a failure halts the item where it is, and the partial state is
// recoverable via ReprocessArticle on a later pass.
type Orchestrator struct {
	extractor ContentExtractor
	engine    AnalysisEngine
	processor AnalysisProcessor
	store     store.ContentStore
	events    EventPublisher
}

type Deps struct {
	Extractor ContentExtractor
	Engine    AnalysisEngine
	Processor AnalysisProcessor
	Store     store.ContentStore
	Events    EventPublisher
}

func NewOrchestrator(deps Deps) *Orchestrator {
	return &Orchestrator{
		extractor: deps.Extractor,
		engine:    deps.Engine,
		processor: deps.Processor,
		store:     deps.Store,
		events:    deps.Events,
	}
}

// ProcessArticle runs the full extract -> analyze -> process sequence.
// URLs rejected by the denylist are skipped silently; every other failure
// is logged and returned.
func (o *Orchestrator) ProcessArticle(ctx context.Context, item *models.ContentItem, url string) error {
	ext, err := o.scrape(ctx, item, url)
	if err != nil || ext == nil {
		return err
	}

	raw, err := o.engine.Generate(ctx, ext.Text, item.Title)
	if err != nil {
		slog.Error("[Orchestrator] Analysis stage failed",
			slog.String("item_id", item.ID),
			slog.String("title", item.Title),
			slog.String("error", err.Error()))
		return fmt.Errorf("analysis stage: %w", err)
	}

	sa := analysis.ParseResponse(raw)
	if !analysis.ValidateResponse(sa) {
		slog.Error("[Orchestrator] Analysis response failed validation",
			slog.String("item_id", item.ID),
			slog.String("title", item.Title))
		return fmt.Errorf("analysis stage: response failed validation")
	}

	if err := o.processor.ProcessAnalysisData(ctx, item, sa, raw); err != nil {
		slog.Error("[Orchestrator] Data processing stage failed",
			slog.String("item_id", item.ID),
			slog.String("title", item.Title),
			slog.String("error", err.Error()))
		return fmt.Errorf("processing stage: %w", err)
	}

	o.publishEvent(item)
	return nil
}

// ReprocessArticle rebuilds the item's analysis state without re-scraping.
// The stored raw AI response is preferred (no network calls); failing
// that, the stored article text is re-analyzed.
func (o *Orchestrator) ReprocessArticle(ctx context.Context, item *models.ContentItem) error {
	if item.RawAnalysisResponse != "" {
		sa := analysis.ParseResponse(item.RawAnalysisResponse)
		if analysis.ValidateResponse(sa) {
			return o.processor.ProcessAnalysisData(ctx, item, sa, item.RawAnalysisResponse)
		}
		slog.Warn("[Orchestrator] Stored analysis response failed validation, re-analyzing",
			slog.String("item_id", item.ID))
	}

	if item.BodyText == "" {
		return fmt.Errorf("item %s has neither a stored analysis response nor stored text", item.ID)
	}

	raw, err := o.engine.Generate(ctx, item.BodyText, item.Title)
	if err != nil {
		slog.Error("[Orchestrator] Re-analysis failed",
			slog.String("item_id", item.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("analysis stage: %w", err)
	}

	sa := analysis.ParseResponse(raw)
	if !analysis.ValidateResponse(sa) {
		return fmt.Errorf("analysis stage: response failed validation")
	}

	return o.processor.ProcessAnalysisData(ctx, item, sa, raw)
}

// ScrapeArticleOnly runs just the extraction stage, for operational
// tooling.
func (o *Orchestrator) ScrapeArticleOnly(ctx context.Context, item *models.ContentItem, url string) error {
	_, err := o.scrape(ctx, item, url)
	return err
}

// AnalyzeArticleOnly runs just the analysis call over stored text and
// persists the raw response.
func (o *Orchestrator) AnalyzeArticleOnly(ctx context.Context, item *models.ContentItem) error {
	if item.BodyText == "" {
		return fmt.Errorf("item %s has no stored text to analyze", item.ID)
	}

	raw, err := o.engine.Generate(ctx, item.BodyText, item.Title)
	if err != nil {
		slog.Error("[Orchestrator] Analysis stage failed",
			slog.String("item_id", item.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("analysis stage: %w", err)
	}

	item.RawAnalysisResponse = raw
	if err := o.store.SaveItem(ctx, item); err != nil {
		return fmt.Errorf("saving analysis response: %w", err)
	}
	return nil
}

// GetProcessingStatus reports which stages have produced data.
func (o *Orchestrator) GetProcessingStatus(item *models.ContentItem) ProcessingStatus {
	return ProcessingStatus{
		Scraped:    item.RawScrapedData != "",
		Analyzed:   item.RawAnalysisResponse != "",
		Structured: item.StructuredAnalysis != nil,
		Tagged:     len(item.Tags) > 0,
	}
}

// scrape extracts the article and persists scraped data plus basic fields.
// Returns (nil, nil) when the URL was filtered out: not a failure, nothing
// written.
func (o *Orchestrator) scrape(ctx context.Context, item *models.ContentItem, url string) (*models.RawExtraction, error) {
	ext, err := o.extractor.Extract(ctx, url)
	if err != nil {
		if errors.Is(err, extractor.ErrInvalidURL) {
			slog.Debug("[Orchestrator] URL filtered, skipping item",
				slog.String("item_id", item.ID),
				slog.String("url", url))
			return nil, nil
		}
		slog.Error("[Orchestrator] Extraction stage failed",
			slog.String("item_id", item.ID),
			slog.String("title", item.Title),
			slog.String("url", url),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("extraction stage: %w", err)
	}

	item.SourceURL = url
	item.BodyText = ext.Text
	if ext.Title != "" {
		item.Title = ext.Title
	}
	if ext.SiteName != "" {
		item.SourceName = ext.SiteName
	}
	item.RawScrapedData = ext.RawJSON

	if err := o.store.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("saving scraped data: %w", err)
	}
	return ext, nil
}

func (o *Orchestrator) publishEvent(item *models.ContentItem) {
	if o.events == nil {
		return
	}
	err := o.events.PublishProcessed(models.ProcessedItemEvent{
		ItemID:       item.ID,
		Title:        item.Title,
		SourceName:   item.SourceName,
		PublishState: item.PublishState,
		ProcessedAt:  time.Now().UTC(),
	})
	if err != nil {
		slog.Warn("[Orchestrator] Failed to publish processed-item event",
			slog.String("item_id", item.ID),
			slog.String("error", err.Error()))
	}
}
