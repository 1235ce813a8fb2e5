package models

// Entity is an actor identified by the analysis model together with the
// motivations attributed to it.
type Entity struct {
	Name        string   `json:"name"`
	Motivations []string `json:"motivations"`
}

// StructuredAnalysis is the parsed shape of the AI analysis response.
// Every numeric field is independently optional; a missing field is not an
// error, which is why the scores are pointers rather than zero-valued ints.
type StructuredAnalysis struct {
	Entities              []Entity `json:"entities"`
	KeyMetric             string   `json:"key_metric,omitempty"`
	AnalysisText          string   `json:"analysis"`
	CredibilityScore      *int     `json:"credibility_score,omitempty"`
	BiasRating            *int     `json:"bias_rating,omitempty"`
	BiasAnalysisText      string   `json:"bias_analysis,omitempty"`
	SentimentScore        *int     `json:"sentiment_score,omitempty"`
	AuthoritarianismScore *int     `json:"authoritarianism_score,omitempty"`
}
