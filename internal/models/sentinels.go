package models

// In-band status strings carried inside item fields. Stored content
// written by earlier versions of the system flags state through these
// literals, so they are part of the data model, not display cosmetics.
const (
	// ScrapedDataUnavailable is the exact value stored as raw scraped
	// data when extraction produced nothing usable.
	ScrapedDataUnavailable = "Scraped data unavailable."

	// SourceUnavailable is the placeholder source name paired with
	// unavailable scraped data.
	SourceUnavailable = "Source Unavailable"
)
