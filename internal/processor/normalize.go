package processor

import "strings"

// canonicalMerges collapses known sub-brand names onto one canonical
// source. Rules are evaluated first-match-wins, before the exact-lookup
// map; patterns match case-insensitively as substrings.
var canonicalMerges = []struct {
	patterns  []string
	canonical string
}{
	{[]string{"bbc news", "bbc sport", "bbc radio", "bbc world"}, "BBC"},
	{[]string{"fox news", "fox business", "fox sports"}, "Fox News"},
	{[]string{"the new york times", "nytimes", "ny times"}, "The New York Times"},
	{[]string{"the washington post", "washington post", "washingtonpost"}, "The Washington Post"},
	{[]string{"the guardian", "guardian us", "guardian australia"}, "The Guardian"},
	{[]string{"cnn politics", "cnn business", "cnn international"}, "CNN"},
}

// sourceCanonicalMap handles one-off renames that are exact matches only.
var sourceCanonicalMap = map[string]string{
	"AP News":     "Associated Press",
	"AP":          "Associated Press",
	"Reuters.com": "Reuters",
	"NPR.org":     "NPR",
	"WSJ":         "The Wall Street Journal",
}

// NormalizeSourceName maps raw site names onto canonical source names.
// Order: merge rules, then exact map, then unmodified. Idempotent:
// canonical outputs map to themselves.
func NormalizeSourceName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return trimmed
	}

	lowered := strings.ToLower(trimmed)
	for _, rule := range canonicalMerges {
		for _, pattern := range rule.patterns {
			if strings.Contains(lowered, pattern) {
				return rule.canonical
			}
		}
	}

	if canonical, ok := sourceCanonicalMap[trimmed]; ok {
		return canonical
	}

	return trimmed
}
