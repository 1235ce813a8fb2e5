package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crediscope/crediscope/internal/models"
)

const (
	itemsCollection = "content_items"
	tagsCollection  = "tags"
)

type tagDocument struct {
	ID       string             `bson:"_id"`
	Name     string             `bson:"name"`
	Category models.TagCategory `bson:"category"`
	Created  time.Time          `bson:"created_at"`
}

// MongoStore is the production ContentStore.
type MongoStore struct {
	items *mongo.Collection
	tags  *mongo.Collection
}

func NewMongoStore(ctx context.Context) (*MongoStore, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "crediscope"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("[ContentStore] failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("[ContentStore] failed to ping mongo: %w", err)
	}

	db := client.Database(dbName)
	slog.Info("[ContentStore] Connected to mongo", slog.String("db", dbName))

	return &MongoStore{
		items: db.Collection(itemsCollection),
		tags:  db.Collection(tagsCollection),
	}, nil
}

func (s *MongoStore) GetItem(ctx context.Context, id string) (*models.ContentItem, error) {
	var item models.ContentItem
	err := s.items.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("[ContentStore] failed to load item %s: %w", id, err)
	}
	return &item, nil
}

func (s *MongoStore) SaveItem(ctx context.Context, item *models.ContentItem) error {
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

	opts := options.Replace().SetUpsert(true)
	if _, err := s.items.ReplaceOne(ctx, bson.M{"_id": item.ID}, item, opts); err != nil {
		return fmt.Errorf("[ContentStore] failed to save item %s: %w", item.ID, err)
	}
	return nil
}

func (s *MongoStore) GetOrCreateTag(ctx context.Context, name string, category models.TagCategory) (models.TagRef, error) {
	filter := bson.M{"name": name, "category": category}
	update := bson.M{"$setOnInsert": tagDocument{
		ID:       uuid.NewString(),
		Name:     name,
		Category: category,
		Created:  time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc tagDocument
	if err := s.tags.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return models.TagRef{}, fmt.Errorf("[ContentStore] failed to resolve tag %q/%s: %w", name, category, err)
	}

	return models.TagRef{Name: doc.Name, Category: doc.Category, StoreID: doc.ID}, nil
}

func (s *MongoStore) ListPendingItems(ctx context.Context, limit int) ([]*models.ContentItem, error) {
	filter := bson.M{"raw_scraped_data": ""}
	return s.listItems(ctx, filter, limit)
}

func (s *MongoStore) ListItemsMissingScores(ctx context.Context, limit int) ([]*models.ContentItem, error) {
	filter := bson.M{
		"raw_analysis_response": bson.M{"$ne": ""},
		"$or": bson.A{
			bson.M{"credibility_score": nil},
			bson.M{"bias_rating": nil},
			bson.M{"sentiment_score": nil},
			bson.M{"authoritarianism_score": nil},
		},
	}
	return s.listItems(ctx, filter, limit)
}

func (s *MongoStore) ListItemsForSourceBackfill(ctx context.Context, limit int) ([]*models.ContentItem, error) {
	filter := bson.M{
		"source_name":      bson.M{"$in": bson.A{"", models.SourceUnavailable}},
		"raw_scraped_data": bson.M{"$nin": bson.A{"", models.ScrapedDataUnavailable}},
	}
	return s.listItems(ctx, filter, limit)
}

func (s *MongoStore) listItems(ctx context.Context, filter bson.M, limit int) ([]*models.ContentItem, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.items.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("[ContentStore] failed to list items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*models.ContentItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("[ContentStore] failed to decode items: %w", err)
	}
	return items, nil
}
