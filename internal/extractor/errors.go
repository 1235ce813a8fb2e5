package extractor

import "errors"

var (
	// ErrNotConfigured means the extraction API token is missing; the
	// pipeline must not run at all.
	ErrNotConfigured = errors.New("extraction API token is not configured")

	// ErrInvalidURL marks URLs rejected by the denylist filter. Callers
	// skip these silently; they are not pipeline failures.
	ErrInvalidURL = errors.New("url rejected by article filter")

	// ErrRateLimited is returned on an upstream 429 after the shared
	// cooldown has been extended. There is no internal retry.
	ErrRateLimited = errors.New("extraction API rate limited")

	// ErrUpstream covers non-2xx responses and malformed payloads.
	ErrUpstream = errors.New("extraction API request failed")

	// ErrNoContent means the API answered but returned no usable text.
	ErrNoContent = errors.New("extraction returned no content")
)
