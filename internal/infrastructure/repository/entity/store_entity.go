package entity

import (
	"time"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoStoreDoc represents a connected store in MongoDB
type MongoStoreDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Shop           string             `bson:"shop"`
	AccessToken    string             `bson:"accessToken"`
	DataSelections MongoSelectionsDoc `bson:"dataSelections"`
	APIKey         string             `bson:"apiKey"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

// MongoSelectionsDoc holds the category flags inside a store document
type MongoSelectionsDoc struct {
	Orders        bool `bson:"orders"`
	Customers     bool `bson:"customers"`
	Products      bool `bson:"products"`
	Inventory     bool `bson:"inventory"`
	Analytics     bool `bson:"analytics"`
	CompleteStore bool `bson:"completeStore"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoStoreDoc) ToDomain() *domain.StoreRecord {
	return &domain.StoreRecord{
		ID:          d.ID.Hex(),
		Shop:        d.Shop,
		AccessToken: d.AccessToken,
		DataSelections: domain.Selections{
			Orders:        d.DataSelections.Orders,
			Customers:     d.DataSelections.Customers,
			Products:      d.DataSelections.Products,
			Inventory:     d.DataSelections.Inventory,
			Analytics:     d.DataSelections.Analytics,
			CompleteStore: d.DataSelections.CompleteStore,
		},
		APIKey:    d.APIKey,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoStoreDocFromDomain converts a domain entity to a MongoDB document
func MongoStoreDocFromDomain(record *domain.StoreRecord) *MongoStoreDoc {
	doc := &MongoStoreDoc{
		Shop:        record.Shop,
		AccessToken: record.AccessToken,
		DataSelections: MongoSelectionsDoc{
			Orders:        record.DataSelections.Orders,
			Customers:     record.DataSelections.Customers,
			Products:      record.DataSelections.Products,
			Inventory:     record.DataSelections.Inventory,
			Analytics:     record.DataSelections.Analytics,
			CompleteStore: record.DataSelections.CompleteStore,
		},
		APIKey:    record.APIKey,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}

	if record.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(record.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
