package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediscope/crediscope/internal/models"
)

func TestDecidePublishStateScrapedDataUnavailable(t *testing.T) {
	item := &models.ContentItem{
		PublishState:   models.PublishStatePublished,
		RawScrapedData: models.ScrapedDataUnavailable,
		SourceName:     "Example News",
	}

	require.True(t, DecidePublishState(item))
	assert.Equal(t, models.PublishStateUnpublished, item.PublishState)
	assert.Equal(t, models.SourceUnavailable, item.SourceName)

	// Idempotent: a second run changes nothing.
	require.False(t, DecidePublishState(item))
	assert.Equal(t, models.PublishStateUnpublished, item.PublishState)
	assert.Equal(t, models.SourceUnavailable, item.SourceName)
}

func TestDecidePublishStatePendingAnalysis(t *testing.T) {
	item := &models.ContentItem{
		PublishState:   models.PublishStatePublished,
		RawScrapedData: `{"siteName": "Example News"}`,
		AnalysisReport: "**Analysis pending**",
	}

	require.True(t, DecidePublishState(item))
	assert.Equal(t, models.PublishStateUnpublished, item.PublishState)
	assert.Equal(t, models.AnalysisStatusPending, item.AnalysisStatus)
	assert.Equal(t, "Unpublished: **Analysis pending**", item.AnalysisReport)

	require.False(t, DecidePublishState(item))
	assert.Equal(t, "Unpublished: **Analysis pending**", item.AnalysisReport)
}

func TestDecidePublishStatePublishesWithSourceBackfill(t *testing.T) {
	item := &models.ContentItem{
		PublishState:   models.PublishStateUnpublished,
		RawScrapedData: `{"siteName": "BBC News", "text": "body"}`,
		AnalysisReport: "## Analysis\n\nA substantive report.\n",
		SourceName:     models.SourceUnavailable,
	}

	require.True(t, DecidePublishState(item))
	assert.Equal(t, models.PublishStatePublished, item.PublishState)
	assert.Equal(t, "BBC", item.SourceName)

	require.False(t, DecidePublishState(item))
	assert.Equal(t, models.PublishStatePublished, item.PublishState)
}

func TestDecidePublishStateKeepsExistingSourceName(t *testing.T) {
	item := &models.ContentItem{
		PublishState:   models.PublishStateUnpublished,
		RawScrapedData: `{"siteName": "BBC News"}`,
		AnalysisReport: "## Analysis\n\nA substantive report.\n",
		SourceName:     "Example News",
	}

	require.True(t, DecidePublishState(item))
	assert.Equal(t, models.PublishStatePublished, item.PublishState)
	assert.Equal(t, "Example News", item.SourceName)
}

func TestDecidePublishStatePendingStatusBlocksPublish(t *testing.T) {
	// The rendered report never carries a sentinel here, but the explicit
	// status says the analysis has not arrived.
	item := &models.ContentItem{
		PublishState:   models.PublishStateUnpublished,
		RawScrapedData: `{"siteName": "Example News"}`,
		AnalysisReport: "## Analysis\n\n### Scores\n\n- Credibility: n/a\n",
		AnalysisStatus: models.AnalysisStatusPending,
	}

	require.False(t, DecidePublishState(item))
	assert.Equal(t, models.PublishStateUnpublished, item.PublishState)
}

func TestDecidePublishStateNoPublishWithoutReport(t *testing.T) {
	item := &models.ContentItem{
		PublishState:   models.PublishStateUnpublished,
		RawScrapedData: `{"siteName": "Example News"}`,
	}

	require.False(t, DecidePublishState(item))
	assert.Equal(t, models.PublishStateUnpublished, item.PublishState)
}

func TestDecidePublishStateNoPublishWithUnusableData(t *testing.T) {
	item := &models.ContentItem{
		PublishState:   models.PublishStateUnpublished,
		AnalysisReport: "## Analysis\n\nA substantive report.\n",
	}

	require.False(t, DecidePublishState(item))
	assert.Equal(t, models.PublishStateUnpublished, item.PublishState)
}

func TestDecidePublishStateUnpublishedReportStaysDown(t *testing.T) {
	item := &models.ContentItem{
		PublishState:   models.PublishStateUnpublished,
		RawScrapedData: `{"siteName": "Example News"}`,
		AnalysisReport: "Unpublished: **Analysis pending**",
		AnalysisStatus: models.AnalysisStatusPending,
	}

	require.False(t, DecidePublishState(item))
	assert.Equal(t, models.PublishStateUnpublished, item.PublishState)
}

func TestSourceNameFromScrapedData(t *testing.T) {
	assert.Equal(t, "BBC", SourceNameFromScrapedData(`{"siteName": "BBC News"}`))
	assert.Equal(t, "Example News", SourceNameFromScrapedData(`{"siteName": "Example News"}`))
	assert.Equal(t, "", SourceNameFromScrapedData(`{"title": "no site name"}`))
	assert.Equal(t, "", SourceNameFromScrapedData("not json"))
	assert.Equal(t, "", SourceNameFromScrapedData(""))
	assert.Equal(t, "", SourceNameFromScrapedData(models.ScrapedDataUnavailable))
}
