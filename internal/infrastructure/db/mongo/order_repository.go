package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/craftkart/merchant-ops/internal/core/domain"
)

const collectionOrders = "orders"
const collectionTrackingEvents = "tracking_events"

// OrderRepository implements ports.OrderRepository on MongoDB. Orders are
// written by the surrounding admin screens; this repository's only mutation
// paths are the shipment-outcome write and tracking status updates.
type OrderRepository struct {
	col    *mongo.Collection
	events *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		col:    db.Collection(collectionOrders),
		events: db.Collection(collectionTrackingEvents),
	}
}

func (r *OrderRepository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Order
	err := r.col.FindOne(ctx, bson.M{"_id": orderID}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByWaybill locates the order carrying the waybill in any shipment
// sub-record.
func (r *OrderRepository) FindByWaybill(ctx context.Context, waybill string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"shipment_details.waybills": waybill},
		{"reverse_shipment.waybill": waybill},
		{"replacement_shipment.waybill": waybill},
	}}

	var o domain.Order
	err := r.col.FindOne(ctx, filter).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// ApplyShipmentOutcome persists a shipment outcome as one conditional
// UpdateOne. The filter re-asserts the shipment-type preconditions, so under
// concurrent creation exactly one writer succeeds; the loser gets
// domain.ErrPrecondition and no partial write ever lands.
func (r *OrderRepository) ApplyShipmentOutcome(ctx context.Context, order *domain.Order, shipmentType domain.ShipmentType) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": order.ID}
	set := bson.M{"status": string(order.Status)}

	switch shipmentType {
	case domain.ShipmentForward:
		filter["shipment_created"] = false
		filter["status"] = bson.M{"$in": []string{
			string(domain.StatusConfirmed), string(domain.StatusProcessing), string(domain.StatusDispatched),
		}}
		set["shipment_created"] = true
		set["shipment_details"] = order.ShipmentDetails
		set["items"] = order.Items
	case domain.ShipmentMPS:
		filter["status"] = bson.M{"$in": []string{
			string(domain.StatusConfirmed), string(domain.StatusProcessing), string(domain.StatusDispatched),
		}}
		set["shipment_created"] = true
		set["shipment_details"] = order.ShipmentDetails
		set["items"] = order.Items
	case domain.ShipmentReverse:
		filter["reverse_shipment"] = bson.M{"$exists": false}
		filter["status"] = bson.M{"$in": []string{
			string(domain.StatusDelivered), string(domain.StatusCompleted),
		}}
		set["reverse_shipment"] = order.ReverseShipment
	case domain.ShipmentReplacement:
		filter["replacement_shipment"] = bson.M{"$exists": false}
		filter["status"] = bson.M{"$in": []string{
			string(domain.StatusDelivered), string(domain.StatusCompleted),
		}}
		set["replacement_shipment"] = order.ReplacementShipment
	}

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPrecondition
	}
	return nil
}

// UpdateStatusByWaybill atomically moves the order status for a tracking
// scan and records the scan in the audit collection.
func (r *OrderRepository) UpdateStatusByWaybill(ctx context.Context, waybill string, status domain.OrderStatus, event *domain.TrackingEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"shipment_details.waybills": waybill},
		{"reverse_shipment.waybill": waybill},
		{"replacement_shipment.waybill": waybill},
	}}
	update := bson.M{"$set": bson.M{"status": string(status)}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}

	doc := bson.M{
		"waybill":      event.Waybill,
		"status":       string(event.Status),
		"timestamp":    event.Timestamp.UTC(),
		"source":       event.Source,
		"processed_at": time.Now().UTC(),
	}
	if event.Location != "" {
		doc["location"] = event.Location
	}
	// Audit insert is non-fatal; the status move already landed.
	_, _ = r.events.InsertOne(ctx, doc)
	return nil
}

// EnsureIndexes creates the indexes the pipeline queries rely on.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "shipment_details.waybills", Value: 1}}},
		{Keys: bson.D{{Key: "reverse_shipment.waybill", Value: 1}}},
		{Keys: bson.D{{Key: "replacement_shipment.waybill", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
