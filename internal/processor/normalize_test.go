package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSourceName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"BBC News", "BBC"},
		{"bbc sport", "BBC"},
		{"BBC World Service", "BBC"},
		{"Fox News Digital", "Fox News"},
		{"NYTimes.com", "The New York Times"},
		{"The Washington Post", "The Washington Post"},
		{"Guardian US", "The Guardian"},
		{"CNN Politics", "CNN"},
		{"AP News", "Associated Press"},
		{"AP", "Associated Press"},
		{"Reuters.com", "Reuters"},
		{"WSJ", "The Wall Street Journal"},
		{"  Example News  ", "Example News"},
		{"Unknown Local Paper", "Unknown Local Paper"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSourceName(tt.in), "input %q", tt.in)
	}
}

// Canonical outputs must map to themselves so repeated normalization is a
// no-op.
func TestNormalizeSourceNameIdempotent(t *testing.T) {
	inputs := []string{
		"BBC News", "Fox Business", "NY Times", "washingtonpost",
		"The Guardian", "CNN International", "AP", "Reuters.com",
		"NPR.org", "WSJ", "Example News",
	}

	for _, in := range inputs {
		once := NormalizeSourceName(in)
		assert.Equal(t, once, NormalizeSourceName(once), "input %q", in)
	}
}
