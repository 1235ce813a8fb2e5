package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPendingSentinel(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "empty", text: "", want: false},
		{name: "plain sentinel", text: "Analysis pending for this item", want: true},
		{name: "case insensitive", text: "ANALYSIS PENDING", want: true},
		{name: "markdown wrapped", text: "**Analysis pending**", want: true},
		{name: "markdown heading", text: "## No analysis data available\n\nCheck back later.", want: true},
		{name: "not yet available", text: "Analysis not yet available.", want: true},
		{name: "real report", text: "## Analysis\n\nThe article covers the budget vote.", want: false},
		{name: "mentions the word analysis only", text: "Our analysis found strong sourcing.", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPendingSentinel(tt.text))
		})
	}
}

func TestMarkAlreadyUnpublishedNoDoublePrefix(t *testing.T) {
	once := markAlreadyUnpublished("**Analysis pending**")
	assert.Equal(t, "Unpublished: **Analysis pending**", once)

	twice := markAlreadyUnpublished(once)
	assert.Equal(t, once, twice)
	assert.True(t, isAlreadyUnpublished(twice))
}

func TestScrapedDataUsable(t *testing.T) {
	assert.False(t, scrapedDataUsable(""))
	assert.False(t, scrapedDataUsable("Scraped data unavailable."))
	assert.True(t, scrapedDataUsable(`{"siteName": "Example News"}`))
}
