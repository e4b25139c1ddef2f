package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/craftkart/merchant-ops/internal/core/domain"
)

const collectionWarehouses = "warehouses"

// WarehouseRepository reads pickup locations for the warehouse resolver.
type WarehouseRepository struct {
	col *mongo.Collection
}

func NewWarehouseRepository(db *mongo.Database) *WarehouseRepository {
	return &WarehouseRepository{col: db.Collection(collectionWarehouses)}
}

func (r *WarehouseRepository) FindByName(ctx context.Context, name string) (*domain.Warehouse, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var w domain.Warehouse
	err := r.col.FindOne(ctx, bson.M{"name": name, "active": true}).Decode(&w)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// FindAnyActive returns the oldest active warehouse, preferring ones already
// registered with the carrier.
func (r *WarehouseRepository) FindAnyActive(ctx context.Context) (*domain.Warehouse, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{
		{Key: "registered_with_carrier", Value: -1},
		{Key: "_id", Value: 1},
	})

	var w domain.Warehouse
	err := r.col.FindOne(ctx, bson.M{"active": true}, opts).Decode(&w)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *WarehouseRepository) ListActive(ctx context.Context) ([]domain.Warehouse, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"active": true}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var warehouses []domain.Warehouse
	if err := cursor.All(ctx, &warehouses); err != nil {
		return nil, err
	}
	return warehouses, nil
}
