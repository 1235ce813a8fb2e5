package analysis

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"

	"github.com/crediscope/crediscope/internal/models"
)

const maxBiasAnalysisChars = 999

// ParseResponse extracts the StructuredAnalysis from the raw completion
// text. The model is asked for bare JSON but sometimes wraps it in prose or
// markdown fences, so only the substring between the first '{' and the last
// '}' is decoded. The parse never fails: malformed or missing fields are
// simply left empty, and validation is a separate gate.
func ParseResponse(raw string) *models.StructuredAnalysis {
	sa := &models.StructuredAnalysis{}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return sa
	}

	// Score fields decode as `any` so numbers arriving as JSON strings
	// still coerce.
	var aux struct {
		Entities []struct {
			Name        string `json:"name"`
			Motivations []any  `json:"motivations"`
		} `json:"entities"`
		KeyMetric             any `json:"key_metric"`
		Analysis              any `json:"analysis"`
		CredibilityScore      any `json:"credibility_score"`
		BiasRating            any `json:"bias_rating"`
		BiasAnalysis          any `json:"bias_analysis"`
		SentimentScore        any `json:"sentiment_score"`
		AuthoritarianismScore any `json:"authoritarianism_score"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &aux); err != nil {
		return sa
	}

	for _, e := range aux.Entities {
		entity := models.Entity{Name: strings.TrimSpace(e.Name)}
		for _, m := range e.Motivations {
			if s := strings.TrimSpace(cast.ToString(m)); s != "" {
				entity.Motivations = append(entity.Motivations, s)
			}
		}
		sa.Entities = append(sa.Entities, entity)
	}

	sa.KeyMetric = strings.TrimSpace(cast.ToString(aux.KeyMetric))
	sa.AnalysisText = strings.TrimSpace(cast.ToString(aux.Analysis))
	sa.BiasAnalysisText = truncateWithEllipsis(strings.TrimSpace(cast.ToString(aux.BiasAnalysis)), maxBiasAnalysisChars)

	sa.CredibilityScore = coerceScore(aux.CredibilityScore)
	sa.BiasRating = coerceScore(aux.BiasRating)
	sa.SentimentScore = coerceScore(aux.SentimentScore)
	sa.AuthoritarianismScore = coerceScore(aux.AuthoritarianismScore)

	return sa
}

// ValidateResponse is the explicit gate callers must check before trusting
// a parse: at least one entity with both a name and motivations.
func ValidateResponse(sa *models.StructuredAnalysis) bool {
	if sa == nil || len(sa.Entities) == 0 {
		return false
	}
	for _, e := range sa.Entities {
		if e.Name != "" && len(e.Motivations) > 0 {
			return true
		}
	}
	return false
}

func coerceScore(v any) *int {
	if v == nil {
		return nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return nil
	}
	if n < 0 || n > 100 {
		return nil
	}
	return &n
}

func truncateWithEllipsis(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
