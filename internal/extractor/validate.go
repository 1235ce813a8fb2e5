package extractor

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
)

// The filter is a denylist: anything not matched below is accepted.
var blockedDomains = []string{
	"youtube.com",
	"facebook.com",
	"twitter.com",
	"x.com",
	"instagram.com",
	"tiktok.com",
	"pinterest.com",
	"reddit.com",
}

// URL shapes that are known not to be articles.
var nonArticlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`/ads?/`),
	regexp.MustCompile(`/galler(y|ies)/`),
	regexp.MustCompile(`/slideshows?/`),
	regexp.MustCompile(`/podcasts?/`),
	regexp.MustCompile(`/audio/`),
	regexp.MustCompile(`/videos?/`),
	regexp.MustCompile(`/newsletters?/`),
	regexp.MustCompile(`/weather/`),
	regexp.MustCompile(`/coupons?/`),
	regexp.MustCompile(`/live(-?blog|-news|-updates)?/`),
}

// ValidateURL rejects blocked domains and known non-article URL shapes
// before any network call is made.
func ValidateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	host := strings.ToLower(parsed.Hostname())
	for _, domain := range allBlockedDomains() {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return fmt.Errorf("%w: blocked domain %s", ErrInvalidURL, domain)
		}
	}

	lowered := strings.ToLower(raw)
	for _, pattern := range nonArticlePatterns {
		if pattern.MatchString(lowered) {
			return fmt.Errorf("%w: non-article pattern %s", ErrInvalidURL, pattern.String())
		}
	}

	return nil
}

func allBlockedDomains() []string {
	extra := os.Getenv("EXTRACTOR_BLOCKED_DOMAINS")
	if extra == "" {
		return blockedDomains
	}

	domains := append([]string(nil), blockedDomains...)
	for _, d := range strings.Split(extra, ",") {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}
