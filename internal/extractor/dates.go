package extractor

import (
	"time"

	"github.com/crediscope/crediscope/internal/models"
)

var dateLayouts = []string{
	time.RFC3339,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// resolvePublishDate tries the upstream date candidates in a fixed order;
// the first one that parses wins.
func resolvePublishDate(obj *models.ExtractionObject) *time.Time {
	candidates := []string{obj.EstimatedDate, obj.Date, obj.PublishedAt, obj.Created}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if ts, ok := parseDate(candidate); ok {
			return &ts
		}
	}
	return nil
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
