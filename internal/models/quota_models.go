package models

// DailyQuotaRecord is one per-source, per-day processing counter row.
// (SourceName, Date) is a unique composite key; Count only increases
// within a day.
type DailyQuotaRecord struct {
	SourceName string `json:"source_name" dynamodbav:"source_name"`
	Date       string `json:"date" dynamodbav:"date"`
	Count      int    `json:"count" dynamodbav:"item_count"`
	Limit      int    `json:"limit" dynamodbav:"quota_limit"`
	CreatedAt  int64  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt  int64  `json:"updated_at" dynamodbav:"updated_at"`
}

// QuotaSourceStats aggregates quota usage for one source across the
// retained window, for reporting.
type QuotaSourceStats struct {
	SourceName string `json:"source_name"`
	Days       int    `json:"days"`
	Total      int    `json:"total"`
	Today      int    `json:"today"`
	Limit      int    `json:"limit"`
}
