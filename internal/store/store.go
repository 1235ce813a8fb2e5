// Package store is the pipeline's narrow contract with the external
// content store: field reads/writes travel on the item itself, plus save
// and tag get-or-create.
package store

import (
	"context"
	"errors"

	"github.com/crediscope/crediscope/internal/models"
)

var ErrNotFound = errors.New("content item not found")

// ContentStore persists content items and classification tags.
type ContentStore interface {
	GetItem(ctx context.Context, id string) (*models.ContentItem, error)
	SaveItem(ctx context.Context, item *models.ContentItem) error

	// GetOrCreateTag resolves a tag by exact (name, category) match,
	// creating it when absent.
	GetOrCreateTag(ctx context.Context, name string, category models.TagCategory) (models.TagRef, error)

	// ListPendingItems returns items that have not been scraped yet.
	ListPendingItems(ctx context.Context, limit int) ([]*models.ContentItem, error)

	// ListItemsMissingScores returns items whose analysis left at least
	// one score field unset.
	ListItemsMissingScores(ctx context.Context, limit int) ([]*models.ContentItem, error)

	// ListItemsForSourceBackfill returns items with a missing or
	// placeholder source name but usable stored scraped data.
	ListItemsForSourceBackfill(ctx context.Context, limit int) ([]*models.ContentItem, error)
}
