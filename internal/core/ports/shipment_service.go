package ports

import (
	"context"

	"github.com/craftkart/merchant-ops/internal/core/domain"
)

// DimensionsInput holds package size in centimetres.
type DimensionsInput struct {
	Length float64
	Width  float64
	Height float64
}

// PackageInput describes one physical package of an MPS shipment.
type PackageInput struct {
	Weight      float64 // grams
	Dimensions  DimensionsInput
	Description string
	Value       float64
}

// CustomFlags carries the merchant-supplied carrier flags and overrides.
type CustomFlags struct {
	Fragile          bool
	DangerousGood    bool
	PlasticPackaging bool
	// AutoGenerateWaybill defaults to true; the supplied Waybill is only sent
	// to the carrier when the caller explicitly disabled auto-generation.
	AutoGenerateWaybill *bool
	Waybill             string
	HSNCode             string
}

// CreateShipmentInput carries all data needed to run the shipment pipeline.
type CreateShipmentInput struct {
	OrderID        string
	ShipmentType   domain.ShipmentType
	PickupLocation string
	ShippingMode   domain.ShippingMode

	Weight     float64 // grams, optional
	Dimensions *DimensionsInput
	Packages   []PackageInput // required and non-empty for MPS

	ProductCategory string
	EstimatedValue  float64
	// HSNCode is the explicit request-level code; Custom.HSNCode is the
	// merchant's custom-field fallback.
	HSNCode string
	Custom  CustomFlags
}

// CreateShipmentResult is returned after the pipeline has applied an outcome.
type CreateShipmentResult struct {
	OrderID        string
	ShipmentType   domain.ShipmentType
	WaybillNumbers []string
	PickupLocation string
	OutcomeKind    domain.OutcomeKind
	Remark         string
	CarrierRemark  string
	UpdatedOrder   *domain.Order
}

// ShipmentStatusView is the read-model for the shipment status endpoint.
type ShipmentStatusView struct {
	OrderID             string
	Status              domain.OrderStatus
	ShipmentCreated     bool
	ShipmentDetails     *domain.ForwardShipment
	ReverseShipment     *domain.ReverseShipment
	ReplacementShipment *domain.ReplacementShipment
	AvailableActions    []string
	Warehouses          []domain.Warehouse
	CanCreateShipment   bool
}

// ShipmentService runs the shipment creation pipeline and the status view.
type ShipmentService interface {
	CreateShipment(ctx context.Context, input CreateShipmentInput) (*CreateShipmentResult, error)
	GetShipmentStatus(ctx context.Context, orderID string) (*ShipmentStatusView, error)
}
