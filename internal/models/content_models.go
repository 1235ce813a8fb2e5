package models

import "time"

type PublishState string

const (
	PublishStateUnpublished PublishState = "unpublished"
	PublishStatePublished   PublishState = "published"
)

// AnalysisStatus is the explicit pipeline status for an item's analysis,
// kept separate from any sentinel text rendered into the report.
type AnalysisStatus string

const (
	AnalysisStatusNone     AnalysisStatus = "none"
	AnalysisStatusPending  AnalysisStatus = "pending"
	AnalysisStatusComplete AnalysisStatus = "complete"
)

type TagCategory string

const (
	TagCategoryGeneral TagCategory = "general"
	TagCategorySource  TagCategory = "source"
)

// TagRef references a classification tag in the content store.
// Tags are resolved by get-or-create on (Name, Category); names are
// case-sensitive exact matches.
type TagRef struct {
	Name     string      `json:"name" bson:"name"`
	Category TagCategory `json:"category" bson:"category"`
	StoreID  string      `json:"store_id" bson:"store_id"`
}

// ContentItem is the article record flowing through the pipeline. It is
// created by an external ingestion step and mutated in place through each
// stage, persisted at stage boundaries so a crash leaves recoverable
// partial state.
type ContentItem struct {
	ID                  string              `json:"id" bson:"_id"`
	Title               string              `json:"title" bson:"title"`
	SourceURL           string              `json:"source_url" bson:"source_url"`
	BodyText            string              `json:"body_text" bson:"body_text"`
	PublishState        PublishState        `json:"publish_state" bson:"publish_state"`
	RawScrapedData      string              `json:"raw_scraped_data" bson:"raw_scraped_data"`
	RawAnalysisResponse string              `json:"raw_analysis_response" bson:"raw_analysis_response"`
	StructuredAnalysis  *StructuredAnalysis `json:"structured_analysis,omitempty" bson:"structured_analysis,omitempty"`
	AnalysisReport      string              `json:"analysis_report" bson:"analysis_report"`
	AnalysisStatus      AnalysisStatus      `json:"analysis_status" bson:"analysis_status"`
	SourceName          string              `json:"source_name" bson:"source_name"`
	Tags                []TagRef            `json:"tags,omitempty" bson:"tags,omitempty"`

	CredibilityScore      *int `json:"credibility_score,omitempty" bson:"credibility_score,omitempty"`
	BiasRating            *int `json:"bias_rating,omitempty" bson:"bias_rating,omitempty"`
	SentimentScore        *int `json:"sentiment_score,omitempty" bson:"sentiment_score,omitempty"`
	AuthoritarianismScore *int `json:"authoritarianism_score,omitempty" bson:"authoritarianism_score,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// HasTag reports whether the item already references a tag with the given
// name and category.
func (c *ContentItem) HasTag(name string, category TagCategory) bool {
	for _, t := range c.Tags {
		if t.Name == name && t.Category == category {
			return true
		}
	}
	return false
}
