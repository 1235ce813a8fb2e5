package processor

import (
	"github.com/jonreiter/govader"
)

var vaderAnalyzer = govader.NewSentimentIntensityAnalyzer()

// fallbackSentimentScore derives a 0-100 sentiment score from the analysis
// text when the model omitted one. VADER's compound score in [-1, 1] maps
// linearly onto the rubric scale.
func fallbackSentimentScore(text string) *int {
	if text == "" {
		return nil
	}

	plain := markdownToText(text)
	if plain == "" {
		return nil
	}

	compound := vaderAnalyzer.PolarityScores(plain).Compound
	score := int((compound + 1) / 2 * 100)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return &score
}
