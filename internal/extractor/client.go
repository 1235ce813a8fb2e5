package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/crediscope/crediscope/internal/models"
)

const (
	defaultAPIEndpoint = "https://api.diffbot.com/v3/article"

	// Timeout for individual extraction requests.
	extractionRequestTimeout = 30 * time.Second
)

// apiClient talks to the article extraction API. One GET per article:
// {token, url, naturalLanguage=summary}.
type apiClient struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

func newAPIClient(token, endpoint string) *apiClient {
	if endpoint == "" {
		endpoint = defaultAPIEndpoint
	}
	return &apiClient{
		httpClient: &http.Client{Timeout: extractionRequestTimeout},
		endpoint:   endpoint,
		token:      token,
	}
}

// fetch issues the extraction call and returns the raw response body along
// with the decoded shape, so callers can store the blob verbatim.
func (c *apiClient) fetch(ctx context.Context, articleURL string) ([]byte, int, error) {
	params := url.Values{}
	params.Set("token", c.token)
	params.Set("url", articleURL)
	params.Set("naturalLanguage", "summary")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, fmt.Errorf("%w: reading body: %v", ErrUpstream, err)
	}

	return body, res.StatusCode, nil
}

func decodeResponse(body []byte) (*models.ExtractionAPIResponse, error) {
	var envelope models.ExtractionAPIResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrUpstream, err)
	}
	return &envelope, nil
}
