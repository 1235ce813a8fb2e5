package extractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crediscope/crediscope/internal/models"
)

func TestResolvePublishDateOrder(t *testing.T) {
	obj := &models.ExtractionObject{
		EstimatedDate: "2024-03-01",
		Date:          "2024-04-01",
		PublishedAt:   "2024-05-01",
		Created:       "2024-06-01",
	}

	got := resolvePublishDate(obj)
	require.NotNil(t, got)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got.UTC())
}

func TestResolvePublishDateSkipsUnparseable(t *testing.T) {
	obj := &models.ExtractionObject{
		EstimatedDate: "around noon-ish",
		Date:          "",
		PublishedAt:   "Tue, 26 Aug 2025 12:00:00 GMT",
	}

	got := resolvePublishDate(obj)
	require.NotNil(t, got)
	require.Equal(t, 2025, got.Year())
	require.Equal(t, time.August, got.Month())
}

func TestResolvePublishDateNone(t *testing.T) {
	require.Nil(t, resolvePublishDate(&models.ExtractionObject{}))
	require.Nil(t, resolvePublishDate(&models.ExtractionObject{Created: "not a date"}))
}

func TestParseDateLayouts(t *testing.T) {
	for _, value := range []string{
		"2024-01-02T15:04:05Z",
		"Mon, 02 Jan 2006 15:04:05 MST",
		"2024-01-02 15:04:05",
		"2024-01-02",
	} {
		_, ok := parseDate(value)
		require.True(t, ok, "expected %q to parse", value)
	}
}
