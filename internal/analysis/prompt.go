package analysis

import (
	"fmt"
	"strings"
)

// AllowedMotivations is the closed vocabulary the model may assign to an
// entity. Responses outside the list still parse; the whitelist constrains
// the prompt, not the parser.
var AllowedMotivations = []string{
	"Power",
	"Profit",
	"Influence",
	"Control",
	"Ideology",
	"Fear",
	"Self-Preservation",
	"Self-Promotion",
	"Public Interest",
	"Reputation",
	"Security",
	"Competition",
}

const promptTemplate = `Analyze the following article and respond with a single JSON object and nothing else.

The JSON object must have exactly these fields:
- "entities": array of objects, each {"name": string, "motivations": array of strings}. Motivations MUST be chosen from this list: %s.
- "key_metric": the single most important figure or measurement in the article, as a short string, or omit if none.
- "analysis": a concise free-text analysis of the article (3-6 sentences).
- "credibility_score": integer 0-100. Rubric: 0-20 deceit, 21-40 questionable, 41-60 mixed, 61-80 reliable, 81-100 highly credible.
- "bias_rating": integer 0-100. Rubric: 0-20 extreme left, 21-40 left, 41-60 center, 61-80 right, 81-100 extreme right.
- "bias_analysis": a short free-text justification of the bias rating (under 999 characters).
- "sentiment_score": integer 0-100. Rubric: 0-20 very negative, 21-40 negative, 41-60 neutral, 61-80 positive, 81-100 very positive.
- "authoritarianism_score": integer 0-100. Rubric: 0-20 democratic, 21-40 mostly democratic, 41-60 mixed, 61-80 authoritarian leaning, 81-100 totalitarian.

Title: %s

Article:
%s`

// BuildPrompt renders the fixed analysis prompt for one article.
func BuildPrompt(text, title string) string {
	return fmt.Sprintf(promptTemplate, strings.Join(AllowedMotivations, ", "), title, text)
}
