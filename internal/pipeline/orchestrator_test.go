package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediscope/crediscope/internal/extractor"
	"github.com/crediscope/crediscope/internal/models"
	"github.com/crediscope/crediscope/internal/processor"
	"github.com/crediscope/crediscope/internal/store"
)

type fakeExtractor struct {
	result *models.RawExtraction
	err    error
	calls  int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (*models.RawExtraction, error) {
	f.calls++
	return f.result, f.err
}

type fakeEngine struct {
	response string
	err      error
	calls    int
}

func (f *fakeEngine) Generate(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

type fakeEvents struct {
	published []models.ProcessedItemEvent
	err       error
}

func (f *fakeEvents) PublishProcessed(event models.ProcessedItemEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

const validAnalysisResponse = `{
	"entities": [{"name": "Mayor Chen", "motivations": ["Political Power"]}],
	"key_metric": "budget deficit",
	"analysis": "The article reports the vote with attributed quotes.",
	"credibility_score": 75,
	"bias_rating": 45,
	"sentiment_score": 60,
	"authoritarianism_score": 20
}`

func newTestOrchestrator(ext *fakeExtractor, engine *fakeEngine, events EventPublisher) (*Orchestrator, *store.MemoryStore) {
	memStore := store.NewMemoryStore()
	orch := NewOrchestrator(Deps{
		Extractor: ext,
		Engine:    engine,
		Processor: processor.New(memStore),
		Store:     memStore,
		Events:    events,
	})
	return orch, memStore
}

func TestProcessArticleFullPipeline(t *testing.T) {
	ctx := context.Background()

	ext := &fakeExtractor{result: &models.RawExtraction{
		Text:     "Full article body.",
		Title:    "City Council Approves Budget",
		SiteName: "Example News",
		RawJSON:  `{"siteName": "Example News", "text": "Full article body."}`,
	}}
	engine := &fakeEngine{response: validAnalysisResponse}
	events := &fakeEvents{}

	orch, memStore := newTestOrchestrator(ext, engine, events)

	item := &models.ContentItem{}
	require.NoError(t, memStore.SaveItem(ctx, item))
	require.NoError(t, orch.ProcessArticle(ctx, item, "https://example.com/story"))

	assert.Equal(t, 1, ext.calls)
	assert.Equal(t, 1, engine.calls)

	assert.Equal(t, "City Council Approves Budget", item.Title)
	assert.Equal(t, "Example News", item.SourceName)
	assert.Equal(t, "Full article body.", item.BodyText)
	assert.Equal(t, models.PublishStatePublished, item.PublishState)
	assert.Equal(t, models.AnalysisStatusComplete, item.AnalysisStatus)
	assert.True(t, item.HasTag("Mayor Chen", models.TagCategoryGeneral))
	assert.True(t, item.HasTag("Example News", models.TagCategorySource))

	status := orch.GetProcessingStatus(item)
	assert.True(t, status.Scraped)
	assert.True(t, status.Analyzed)
	assert.True(t, status.Structured)
	assert.True(t, status.Tagged)

	require.Len(t, events.published, 1)
	assert.Equal(t, item.ID, events.published[0].ItemID)
	assert.Equal(t, models.PublishStatePublished, events.published[0].PublishState)

	stored, err := memStore.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PublishStatePublished, stored.PublishState)
}

func TestProcessArticleExtractionFailureLeavesItemUntouched(t *testing.T) {
	ctx := context.Background()

	ext := &fakeExtractor{err: fmt.Errorf("%w: zero objects", extractor.ErrNoContent)}
	engine := &fakeEngine{response: validAnalysisResponse}

	orch, memStore := newTestOrchestrator(ext, engine, nil)

	item := &models.ContentItem{Title: "Original Title"}
	require.NoError(t, memStore.SaveItem(ctx, item))
	before, err := memStore.GetItem(ctx, item.ID)
	require.NoError(t, err)

	err = orch.ProcessArticle(ctx, item, "https://example.com/story")
	require.Error(t, err)
	assert.ErrorIs(t, err, extractor.ErrNoContent)
	assert.Equal(t, 0, engine.calls, "analysis must not run after extraction failure")

	after, err := memStore.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Title, after.Title)
	assert.Empty(t, after.RawScrapedData)
	assert.Empty(t, after.BodyText)
	assert.Equal(t, models.PublishStateUnpublished, after.PublishState)
}

func TestProcessArticleSkipsFilteredURLs(t *testing.T) {
	ctx := context.Background()

	ext := &fakeExtractor{err: fmt.Errorf("%w: blocked domain", extractor.ErrInvalidURL)}
	engine := &fakeEngine{response: validAnalysisResponse}

	orch, _ := newTestOrchestrator(ext, engine, nil)

	item := &models.ContentItem{}
	err := orch.ProcessArticle(ctx, item, "https://youtube.com/watch?v=abc")
	require.NoError(t, err, "filtered URLs are skipped, not failed")
	assert.Equal(t, 0, engine.calls)
	assert.Empty(t, item.RawScrapedData)
}

func TestProcessArticleRejectsInvalidAnalysis(t *testing.T) {
	ctx := context.Background()

	ext := &fakeExtractor{result: &models.RawExtraction{
		Text:    "Full article body.",
		RawJSON: `{"text": "Full article body."}`,
	}}
	engine := &fakeEngine{response: "I could not analyze this article, sorry."}

	orch, _ := newTestOrchestrator(ext, engine, nil)

	item := &models.ContentItem{}
	err := orch.ProcessArticle(ctx, item, "https://example.com/story")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
	// Scraped data is kept so a later pass can reprocess.
	assert.NotEmpty(t, item.RawScrapedData)
}

func TestProcessArticleEventFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()

	ext := &fakeExtractor{result: &models.RawExtraction{
		Text:     "Full article body.",
		SiteName: "Example News",
		RawJSON:  `{"siteName": "Example News"}`,
	}}
	engine := &fakeEngine{response: validAnalysisResponse}
	events := &fakeEvents{err: errors.New("broker unavailable")}

	orch, _ := newTestOrchestrator(ext, engine, events)

	item := &models.ContentItem{}
	require.NoError(t, orch.ProcessArticle(ctx, item, "https://example.com/story"))
	assert.Equal(t, models.PublishStatePublished, item.PublishState)
}

func TestReprocessArticleUsesStoredResponse(t *testing.T) {
	ctx := context.Background()

	engine := &fakeEngine{response: validAnalysisResponse}
	orch, memStore := newTestOrchestrator(&fakeExtractor{}, engine, nil)

	item := &models.ContentItem{
		SourceName:          "Example News",
		RawScrapedData:      `{"siteName": "Example News"}`,
		RawAnalysisResponse: validAnalysisResponse,
	}
	require.NoError(t, memStore.SaveItem(ctx, item))

	require.NoError(t, orch.ReprocessArticle(ctx, item))
	assert.Equal(t, 0, engine.calls, "stored responses must not trigger new analysis calls")

	require.NotNil(t, item.CredibilityScore)
	assert.Equal(t, 75, *item.CredibilityScore)
	assert.Equal(t, models.PublishStatePublished, item.PublishState)
}

func TestReprocessArticleFallsBackToStoredText(t *testing.T) {
	ctx := context.Background()

	engine := &fakeEngine{response: validAnalysisResponse}
	orch, memStore := newTestOrchestrator(&fakeExtractor{}, engine, nil)

	item := &models.ContentItem{
		BodyText:            "Full article body.",
		SourceName:          "Example News",
		RawScrapedData:      `{"siteName": "Example News"}`,
		RawAnalysisResponse: "garbage that fails validation",
	}
	require.NoError(t, memStore.SaveItem(ctx, item))

	require.NoError(t, orch.ReprocessArticle(ctx, item))
	assert.Equal(t, 1, engine.calls)
	assert.Equal(t, models.PublishStatePublished, item.PublishState)
}

func TestReprocessArticleWithNothingStored(t *testing.T) {
	orch, _ := newTestOrchestrator(&fakeExtractor{}, &fakeEngine{}, nil)

	item := &models.ContentItem{ID: "item-1"}
	err := orch.ReprocessArticle(context.Background(), item)
	require.Error(t, err)
}

func TestAnalyzeArticleOnlyPersistsRawResponse(t *testing.T) {
	ctx := context.Background()

	engine := &fakeEngine{response: validAnalysisResponse}
	orch, memStore := newTestOrchestrator(&fakeExtractor{}, engine, nil)

	item := &models.ContentItem{BodyText: "Full article body."}
	require.NoError(t, memStore.SaveItem(ctx, item))

	require.NoError(t, orch.AnalyzeArticleOnly(ctx, item))

	stored, err := memStore.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, validAnalysisResponse, stored.RawAnalysisResponse)
	// Only the raw response is written; processing is a separate step.
	assert.Empty(t, stored.AnalysisReport)
	assert.Nil(t, stored.CredibilityScore)
}

func TestScrapeArticleOnly(t *testing.T) {
	ctx := context.Background()

	ext := &fakeExtractor{result: &models.RawExtraction{
		Text:     "Full article body.",
		Title:    "Scraped Title",
		SiteName: "Example News",
		RawJSON:  `{"siteName": "Example News"}`,
	}}
	engine := &fakeEngine{}
	orch, memStore := newTestOrchestrator(ext, engine, nil)

	item := &models.ContentItem{}
	require.NoError(t, memStore.SaveItem(ctx, item))
	require.NoError(t, orch.ScrapeArticleOnly(ctx, item, "https://example.com/story"))

	assert.Equal(t, 0, engine.calls)
	assert.Equal(t, "Scraped Title", item.Title)
	assert.Equal(t, "Example News", item.SourceName)

	stored, err := memStore.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, `{"siteName": "Example News"}`, stored.RawScrapedData)
	assert.Empty(t, stored.RawAnalysisResponse)
}
