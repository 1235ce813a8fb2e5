// Package extractor validates article URLs and pulls full text from the
// third-party extraction API, honoring the shared per-key rate limit.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/crediscope/crediscope/internal/models"
	"github.com/crediscope/crediscope/internal/ratelimit"
)

// Extractor is the content-extraction stage.
type Extractor struct {
	client  *apiClient
	limiter *ratelimit.Limiter
}

// New reads the API token from the environment. A missing token is a
// configuration error; the caller must not run the pipeline.
func New(limiter *ratelimit.Limiter) (*Extractor, error) {
	token := os.Getenv("EXTRACTION_API_TOKEN")
	if token == "" {
		return nil, ErrNotConfigured
	}
	return &Extractor{
		client:  newAPIClient(token, os.Getenv("EXTRACTION_API_ENDPOINT")),
		limiter: limiter,
	}, nil
}

// newWithClient is used by tests to point at a local server.
func newWithClient(client *apiClient, limiter *ratelimit.Limiter) *Extractor {
	return &Extractor{client: client, limiter: limiter}
}

// Extract validates the URL, waits for the shared call slot, calls the
// extraction API, and normalizes the first returned object.
func (e *Extractor) Extract(ctx context.Context, articleURL string) (*models.RawExtraction, error) {
	if err := ValidateURL(articleURL); err != nil {
		return nil, err
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for call slot: %w", err)
	}

	body, status, err := e.client.fetch(ctx, articleURL)
	if err != nil {
		return nil, err
	}

	if status == http.StatusTooManyRequests {
		slog.Warn("[Extractor] Upstream rate limit hit, extending cooldown",
			slog.String("url", articleURL))
		if pErr := e.limiter.Penalize(ctx); pErr != nil {
			slog.Error("[Extractor] Failed to extend shared cooldown",
				slog.String("error", pErr.Error()))
		}
		return nil, ErrRateLimited
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, status)
	}

	envelope, err := decodeResponse(body)
	if err != nil {
		return nil, err
	}
	if len(envelope.Objects) == 0 {
		return nil, fmt.Errorf("%w: zero objects", ErrNoContent)
	}

	obj := envelope.Objects[0]
	if obj.Text == "" {
		return nil, fmt.Errorf("%w: empty text", ErrNoContent)
	}

	rawJSON, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: re-encoding object: %v", ErrUpstream, err)
	}

	extraction := &models.RawExtraction{
		Text:        obj.Text,
		Title:       obj.Title,
		SiteName:    obj.SiteName,
		Author:      obj.Author,
		Breadcrumb:  obj.Breadcrumb,
		WordCount:   obj.WordCount,
		Language:    obj.HumanLanguage,
		Summary:     obj.NaturalLanguage,
		Images:      obj.Images,
		PublishedAt: resolvePublishDate(&obj),
		RawJSON:     string(rawJSON),
	}

	slog.Info("[Extractor] Extracted article",
		slog.String("url", articleURL),
		slog.String("site", extraction.SiteName),
		slog.Int("word_count", extraction.WordCount))

	return extraction, nil
}
