// Package processor persists analysis results, resolves classification
// tags, renders the item's report, and runs the publish decision.
package processor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crediscope/crediscope/internal/models"
	"github.com/crediscope/crediscope/internal/store"
)

// DataProcessor is the persistence-and-classification stage.
type DataProcessor struct {
	store store.ContentStore
}

func New(contentStore store.ContentStore) *DataProcessor {
	return &DataProcessor{store: contentStore}
}

// ProcessAnalysisData writes the analysis onto the item and carries it
// through tagging, reporting, and the publish decision.
//
// The sequence is deliberately a two-phase save: tags must exist in the
// store before the report can link to them, so the item is saved once
// before rendering and once after. A third save happens only when the
// publish decision mutated state.
func (p *DataProcessor) ProcessAnalysisData(ctx context.Context, item *models.ContentItem, sa *models.StructuredAnalysis, raw string) error {
	// Step 1: raw and structured results verbatim.
	item.RawAnalysisResponse = raw
	item.StructuredAnalysis = sa

	// Step 2: individual score fields where present.
	if sa.CredibilityScore != nil {
		item.CredibilityScore = sa.CredibilityScore
	}
	if sa.BiasRating != nil {
		item.BiasRating = sa.BiasRating
	}
	if sa.SentimentScore != nil {
		item.SentimentScore = sa.SentimentScore
	} else if item.SentimentScore == nil {
		item.SentimentScore = fallbackSentimentScore(sa.AnalysisText)
	}
	if sa.AuthoritarianismScore != nil {
		item.AuthoritarianismScore = sa.AuthoritarianismScore
	}

	if sa.AnalysisText != "" && !matchesSentinel(sa.AnalysisText) {
		item.AnalysisStatus = models.AnalysisStatusComplete
	} else {
		item.AnalysisStatus = models.AnalysisStatusPending
	}

	// Step 3: resolve classification tags.
	item.SourceName = NormalizeSourceName(item.SourceName)
	resolved, err := p.resolveTags(ctx, item, sa)
	if err != nil {
		return err
	}

	// Step 4: first save; tag references now exist in the store.
	if err := p.store.SaveItem(ctx, item); err != nil {
		return fmt.Errorf("saving item after tagging: %w", err)
	}

	// Step 5: render the report with resolved tag links.
	item.AnalysisReport = renderReport(item, sa, resolved)

	// Step 6: second save.
	if err := p.store.SaveItem(ctx, item); err != nil {
		return fmt.Errorf("saving item after report render: %w", err)
	}

	// Step 7: publish decision; save only if it mutated state.
	if DecidePublishState(item) {
		if err := p.store.SaveItem(ctx, item); err != nil {
			return fmt.Errorf("saving item after publish decision: %w", err)
		}
	}

	slog.Info("[DataProcessor] Processed analysis data",
		slog.String("item_id", item.ID),
		slog.String("publish_state", string(item.PublishState)),
		slog.Int("tags", len(item.Tags)))

	return nil
}

// resolveTags get-or-creates a general tag for every entity name, every
// motivation, and the key metric, plus a source tag for the item's source
// name. The empty and placeholder source names are skipped.
func (p *DataProcessor) resolveTags(ctx context.Context, item *models.ContentItem, sa *models.StructuredAnalysis) (map[string]models.TagRef, error) {
	resolved := make(map[string]models.TagRef)

	var generalNames []string
	for _, entity := range sa.Entities {
		if entity.Name != "" {
			generalNames = append(generalNames, entity.Name)
		}
		generalNames = append(generalNames, entity.Motivations...)
	}
	if sa.KeyMetric != "" {
		generalNames = append(generalNames, sa.KeyMetric)
	}

	for _, name := range generalNames {
		if name == "" {
			continue
		}
		if _, done := resolved[name]; done {
			continue
		}
		ref, err := p.store.GetOrCreateTag(ctx, name, models.TagCategoryGeneral)
		if err != nil {
			return nil, fmt.Errorf("resolving tag %q: %w", name, err)
		}
		resolved[name] = ref
		if !item.HasTag(name, models.TagCategoryGeneral) {
			item.Tags = append(item.Tags, ref)
		}
	}

	if item.SourceName != "" && item.SourceName != models.SourceUnavailable {
		ref, err := p.store.GetOrCreateTag(ctx, item.SourceName, models.TagCategorySource)
		if err != nil {
			return nil, fmt.Errorf("resolving source tag %q: %w", item.SourceName, err)
		}
		resolved[item.SourceName] = ref
		if !item.HasTag(item.SourceName, models.TagCategorySource) {
			item.Tags = append(item.Tags, ref)
		}
	}

	return resolved, nil
}
