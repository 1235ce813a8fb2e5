package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crediscope/crediscope/internal/models"
)

// MemoryStore is an in-process ContentStore for tests and local runs.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]models.ContentItem
	tags  map[string]models.TagRef // keyed by name+"\x00"+category
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]models.ContentItem),
		tags:  make(map[string]models.TagRef),
	}
}

func (s *MemoryStore) GetItem(_ context.Context, id string) (*models.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := item
	return &copied, nil
}

func (s *MemoryStore) SaveItem(_ context.Context, item *models.ContentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if item.ID == "" {
		item.ID = uuid.NewString()
		item.CreatedAt = now
	}
	if item.PublishState == "" {
		item.PublishState = models.PublishStateUnpublished
	}
	if item.AnalysisStatus == "" {
		item.AnalysisStatus = models.AnalysisStatusNone
	}
	item.UpdatedAt = now

	s.items[item.ID] = *item
	return nil
}

func (s *MemoryStore) GetOrCreateTag(_ context.Context, name string, category models.TagCategory) (models.TagRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := name + "\x00" + string(category)
	if ref, ok := s.tags[key]; ok {
		return ref, nil
	}

	ref := models.TagRef{Name: name, Category: category, StoreID: uuid.NewString()}
	s.tags[key] = ref
	return ref, nil
}

// TagCount reports how many distinct tags exist; test helper.
func (s *MemoryStore) TagCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tags)
}

func (s *MemoryStore) ListPendingItems(_ context.Context, limit int) ([]*models.ContentItem, error) {
	return s.list(limit, func(item models.ContentItem) bool {
		return item.RawScrapedData == ""
	})
}

func (s *MemoryStore) ListItemsMissingScores(_ context.Context, limit int) ([]*models.ContentItem, error) {
	return s.list(limit, func(item models.ContentItem) bool {
		if item.RawAnalysisResponse == "" {
			return false
		}
		return item.CredibilityScore == nil || item.BiasRating == nil ||
			item.SentimentScore == nil || item.AuthoritarianismScore == nil
	})
}

func (s *MemoryStore) ListItemsForSourceBackfill(_ context.Context, limit int) ([]*models.ContentItem, error) {
	return s.list(limit, func(item models.ContentItem) bool {
		if item.SourceName != "" && item.SourceName != models.SourceUnavailable {
			return false
		}
		return item.RawScrapedData != "" && item.RawScrapedData != models.ScrapedDataUnavailable
	})
}

func (s *MemoryStore) list(limit int, match func(models.ContentItem) bool) ([]*models.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []*models.ContentItem
	for _, item := range s.items {
		if match(item) {
			copied := item
			items = append(items, &copied)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
