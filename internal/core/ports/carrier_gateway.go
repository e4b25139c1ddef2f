package ports

import (
	"context"

	"github.com/craftkart/merchant-ops/internal/core/domain"
)

// CarrierGateway is the outbound port to the logistics carrier.
type CarrierGateway interface {
	// CreateShipments sends the records to the carrier's create endpoint.
	// It fails with domain.ErrCarrierNotConfigured when no usable credential
	// is present and with domain.ErrCarrierUnavailable on transport errors.
	CreateShipments(ctx context.Context, records []domain.CarrierShipmentRecord, pickupLocation string) (*domain.CarrierResponse, error)

	// CheckPincode runs the carrier's live serviceability lookup. Results may
	// be served from cache.
	CheckPincode(ctx context.Context, pincode string) (*domain.PincodeServiceability, error)
}
