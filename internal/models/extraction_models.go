package models

import "time"

// ExtractionAPIResponse is the wire shape returned by the article
// extraction API.
type ExtractionAPIResponse struct {
	Objects []ExtractionObject `json:"objects"`
}

// ExtractionObject is one extracted article as returned upstream. The four
// date fields are alternative publish-date candidates; which one is present
// varies by site.
type ExtractionObject struct {
	Text            string            `json:"text"`
	Title           string            `json:"title"`
	SiteName        string            `json:"siteName"`
	Author          string            `json:"author"`
	Breadcrumb      string            `json:"breadcrumb"`
	WordCount       int               `json:"wordCount"`
	HumanLanguage   string            `json:"humanLanguage"`
	NaturalLanguage string            `json:"naturalLanguage"`
	Images          []ExtractionImage `json:"images"`
	EstimatedDate   string            `json:"estimatedDate"`
	Date            string            `json:"date"`
	PublishedAt     string            `json:"publishedAt"`
	Created         string            `json:"created"`
}

type ExtractionImage struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Primary bool   `json:"primary,omitempty"`
}

// RawExtraction is the extractor's normalized result: the upstream object
// with its publish date resolved, plus the original JSON blob for storage
// on the content item.
type RawExtraction struct {
	Text        string
	Title       string
	SiteName    string
	Author      string
	Breadcrumb  string
	WordCount   int
	Language    string
	Summary     string
	Images      []ExtractionImage
	PublishedAt *time.Time
	RawJSON     string
}
