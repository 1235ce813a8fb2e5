package processor

import (
	"encoding/json"
	"log/slog"

	"github.com/crediscope/crediscope/internal/models"
)

// DecidePublishState runs the publish-decision rules over the item's
// current field values. It is a pure function of the item and idempotent:
// re-running it on an already-decided item changes nothing. Rules are
// evaluated in order; each checks the current state before acting, so only
// one of them can flip the state per run.
//
// Returns true when it mutated the item.
func DecidePublishState(item *models.ContentItem) bool {
	changed := false

	// U1: scraped data unavailable.
	if item.RawScrapedData == models.ScrapedDataUnavailable {
		if item.PublishState != models.PublishStateUnpublished {
			item.PublishState = models.PublishStateUnpublished
			changed = true
		}
		if item.SourceName != models.SourceUnavailable {
			item.SourceName = models.SourceUnavailable
			changed = true
		}
	}

	// U2: analysis still pending.
	if containsPendingSentinel(item.AnalysisReport) {
		if item.PublishState != models.PublishStateUnpublished {
			item.PublishState = models.PublishStateUnpublished
			changed = true
		}
		if item.AnalysisStatus != models.AnalysisStatusPending {
			item.AnalysisStatus = models.AnalysisStatusPending
			changed = true
		}
		if !isAlreadyUnpublished(item.AnalysisReport) {
			item.AnalysisReport = markAlreadyUnpublished(item.AnalysisReport)
			changed = true
		}
	}

	// P1: publish. Only an unpublished item with real analysis text and
	// usable scraped data may flip. The report alone is not enough: the
	// rendered scaffolding is never empty, so a pending AnalysisStatus
	// blocks publication even when the report carries no sentinel.
	if item.PublishState == models.PublishStateUnpublished &&
		item.AnalysisStatus != models.AnalysisStatusPending &&
		item.AnalysisReport != "" &&
		!containsPendingSentinel(item.AnalysisReport) &&
		!isAlreadyUnpublished(item.AnalysisReport) &&
		scrapedDataUsable(item.RawScrapedData) {

		item.PublishState = models.PublishStatePublished
		changed = true

		if item.SourceName == models.SourceUnavailable {
			if name := SourceNameFromScrapedData(item.RawScrapedData); name != "" {
				item.SourceName = name
			}
		}
	}

	return changed
}

// SourceNameFromScrapedData recovers a source name from the stored raw
// extraction blob. Used by P1's backfill and the bulk backfill command.
func SourceNameFromScrapedData(raw string) string {
	if !scrapedDataUsable(raw) {
		return ""
	}

	var obj models.ExtractionObject
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		slog.Debug("[DataProcessor] Stored scraped data is not a JSON object, skipping backfill")
		return ""
	}

	if obj.SiteName != "" {
		return NormalizeSourceName(obj.SiteName)
	}
	return ""
}
