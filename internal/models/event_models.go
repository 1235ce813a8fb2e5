package models

import "time"

// ProcessedItemEvent is emitted after a content item completes the full
// pipeline.
type ProcessedItemEvent struct {
	ItemID       string       `json:"item_id"`
	Title        string       `json:"title"`
	SourceName   string       `json:"source_name"`
	PublishState PublishState `json:"publish_state"`
	ProcessedAt  time.Time    `json:"processed_at"`
}
