package processor

import (
	"strings"

	"github.com/russross/blackfriday/v2"

	"github.com/crediscope/crediscope/internal/models"
)

// unpublishedPrefix rewrites a pending report into its "already
// unpublished" variant. The prefix doubles as the re-application guard.
const unpublishedPrefix = "Unpublished: "

// Literal substrings flagging a report whose analysis never arrived.
// Detection also runs over the markup-stripped text so markdown-wrapped
// variants ("**Analysis pending**") match too.
var pendingSentinels = []string{
	"analysis pending",
	"no analysis data available",
	"analysis not yet available",
}

// containsPendingSentinel reports whether the text carries any pending
// sentinel, plain or markup-wrapped. This is a compatibility shim for
// content stored before AnalysisStatus existed.
func containsPendingSentinel(text string) bool {
	if text == "" {
		return false
	}
	if matchesSentinel(text) {
		return true
	}
	return matchesSentinel(markdownToText(text))
}

func matchesSentinel(text string) bool {
	lowered := strings.ToLower(text)
	for _, sentinel := range pendingSentinels {
		if strings.Contains(lowered, sentinel) {
			return true
		}
	}
	return false
}

func isAlreadyUnpublished(text string) bool {
	return strings.HasPrefix(text, unpublishedPrefix)
}

// markAlreadyUnpublished rewrites pending text into the unpublished
// variant. Re-applying is a no-op: no double prefixing.
func markAlreadyUnpublished(text string) string {
	if isAlreadyUnpublished(text) {
		return text
	}
	return unpublishedPrefix + text
}

// markdownToText renders markdown and strips tags, leaving plain words.
func markdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	return strings.Join(strings.Fields(stripHTMLTags(string(output))), " ")
}

func stripHTMLTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// scrapedDataUsable reports whether stored raw scraped data is non-empty
// and not the unavailable sentinel.
func scrapedDataUsable(raw string) bool {
	return raw != "" && raw != models.ScrapedDataUnavailable
}
