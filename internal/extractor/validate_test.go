package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "plain article accepted", url: "https://example.com/politics/some-story", wantErr: false},
		{name: "unknown domain accepted by default", url: "https://tiny-local-paper.net/news/1234", wantErr: false},
		{name: "blocked domain", url: "https://youtube.com/watch?v=abc", wantErr: true},
		{name: "blocked subdomain", url: "https://www.facebook.com/some/post", wantErr: true},
		{name: "gallery url", url: "https://example.com/gallery/photos-of-the-week", wantErr: true},
		{name: "galleries url", url: "https://example.com/galleries/2024", wantErr: true},
		{name: "podcast url", url: "https://example.com/podcasts/episode-12", wantErr: true},
		{name: "video url", url: "https://example.com/videos/clip", wantErr: true},
		{name: "newsletter url", url: "https://example.com/newsletters/daily", wantErr: true},
		{name: "weather url", url: "https://example.com/weather/today", wantErr: true},
		{name: "coupons url", url: "https://example.com/coupons/deals", wantErr: true},
		{name: "live blog url", url: "https://example.com/live-blog/election", wantErr: true},
		{name: "ads url", url: "https://example.com/ads/banner", wantErr: true},
		{name: "missing scheme", url: "example.com/story", wantErr: true},
		{name: "ftp scheme", url: "ftp://example.com/story", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidURL))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateURLExtraBlockedDomains(t *testing.T) {
	t.Setenv("EXTRACTOR_BLOCKED_DOMAINS", "paywalled.example, other.test")

	require.Error(t, ValidateURL("https://paywalled.example/story"))
	require.Error(t, ValidateURL("https://news.other.test/story"))
	require.NoError(t, ValidateURL("https://example.com/story"))
}
