package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/infrastructure/repository/entity"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStoreRepository implements StoreRepository using MongoDB
type MongoStoreRepository struct {
	collection *mongo.Collection
}

// NewMongoStoreRepository creates a new MongoDB store repository
func NewMongoStoreRepository(db *mongo.Database) ports.StoreRepository {
	return &MongoStoreRepository{
		collection: db.Collection("stores"),
	}
}

// Save creates or updates the record for its shop domain
func (r *MongoStoreRepository) Save(ctx context.Context, record *domain.StoreRecord) error {
	doc := entity.MongoStoreDocFromDomain(record)
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	// Create unique indexes on shop and apiKey if they don't exist
	for _, field := range []string{"shop", "apiKey"} {
		indexModel := mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
		_, _ = r.collection.Indexes().CreateOne(ctx, indexModel)
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"shop": record.Shop}
	update := bson.M{"$set": doc}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save store record: %w", err)
	}

	return nil
}

// FindByShop retrieves a record by shop domain
func (r *MongoStoreRepository) FindByShop(ctx context.Context, shop string) (*domain.StoreRecord, error) {
	var doc entity.MongoStoreDoc
	filter := bson.M{"shop": shop}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store record: %w", err)
	}

	return doc.ToDomain(), nil
}

// FindByAPIKey retrieves a record by its API key
func (r *MongoStoreRepository) FindByAPIKey(ctx context.Context, apiKey string) (*domain.StoreRecord, error) {
	var doc entity.MongoStoreDoc
	filter := bson.M{"apiKey": apiKey}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store record: %w", err)
	}

	return doc.ToDomain(), nil
}

// Delete removes the record for a shop domain
func (r *MongoStoreRepository) Delete(ctx context.Context, shop string) error {
	filter := bson.M{"shop": shop}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete store record: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("no store record for shop %s: %w", shop, domain.ErrNotFound)
	}
	return nil
}
