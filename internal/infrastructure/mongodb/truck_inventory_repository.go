package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/palletflow/dispatch-service/internal/domain"
	"github.com/palletflow/dispatch-service/pkg/mongodb"
)

const trucksCollection = "trucks"

// TruckInventoryRepository persists per-truck ledgers inside truck documents.
// The ledger lives under the document's inventory field; writes replace that
// whole subtree so the document always reflects one consistent ledger state.
type TruckInventoryRepository struct {
	collection *mongodb.CircuitBreakerCollection
}

// NewTruckInventoryRepository creates a new TruckInventoryRepository
func NewTruckInventoryRepository(client *mongodb.CircuitBreakerClient) *TruckInventoryRepository {
	repo := &TruckInventoryRepository{
		collection: client.Collection(trucksCollection),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *TruckInventoryRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "truckId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, _ = r.collection.Indexes().CreateMany(ctx, indexes)
}

// Load returns the truck's ledger, or (nil, nil) when the truck does not exist
func (r *TruckInventoryRepository) Load(ctx context.Context, truckID string) (*domain.TruckInventory, error) {
	var inv domain.TruckInventory
	err := r.collection.FindOne(ctx, bson.M{"truckId": truckID}, &inv)
	if err != nil {
		if mongodb.IsNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load truck inventory: %w", err)
	}
	if inv.Products == nil {
		inv.Products = make(map[string]*domain.ProductInventory)
	}
	return &inv, nil
}

// Save writes the whole inventory subtree of an existing truck document
func (r *TruckInventoryRepository) Save(ctx context.Context, inv *domain.TruckInventory) error {
	filter := bson.M{"truckId": inv.TruckID}
	update := bson.M{"$set": bson.M{"inventory": inv.Products}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to save truck inventory: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("truck %s not found", inv.TruckID)
	}
	return nil
}
