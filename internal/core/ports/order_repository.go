package ports

import (
	"context"

	"github.com/craftkart/merchant-ops/internal/core/domain"
)

// OrderRepository defines persistence operations for orders. Orders are
// created by the surrounding admin screens; the pipeline reads them and
// applies exactly one mutation per shipment outcome.
type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)
	// FindByWaybill locates the order carrying the given waybill in any of
	// its shipment sub-records.
	FindByWaybill(ctx context.Context, waybill string) (*domain.Order, error)

	// ApplyShipmentOutcome persists the order mutation for a shipment outcome
	// as a single conditional write. The update filter re-asserts the
	// shipment-type preconditions, so a concurrent creator loses with
	// domain.ErrPrecondition instead of double-writing.
	ApplyShipmentOutcome(ctx context.Context, order *domain.Order, shipmentType domain.ShipmentType) error

	// UpdateStatusByWaybill atomically moves the order status in response to
	// a carrier tracking scan and appends a tracking history entry.
	UpdateStatusByWaybill(ctx context.Context, waybill string, status domain.OrderStatus, event *domain.TrackingEvent) error
}

// WarehouseRepository defines read access to warehouses.
type WarehouseRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Warehouse, error)
	FindAnyActive(ctx context.Context) (*domain.Warehouse, error)
	ListActive(ctx context.Context) ([]domain.Warehouse, error)
}
