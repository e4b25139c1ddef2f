package handler

import (
	"time"

	"github.com/craftkart/merchant-ops/internal/core/domain"
)

// --- Request types ---

type dimensionsRequest struct {
	Length float64 `json:"length" validate:"omitempty,gt=0"`
	Width  float64 `json:"width"  validate:"omitempty,gt=0"`
	Height float64 `json:"height" validate:"omitempty,gt=0"`
}

type packageRequest struct {
	Weight      float64            `json:"weight"      validate:"omitempty,gt=0"`
	Dimensions  *dimensionsRequest `json:"dimensions"`
	Description string             `json:"description"`
	Value       float64            `json:"value"       validate:"omitempty,gte=0"`
}

type customFieldsRequest struct {
	Fragile             bool   `json:"fragile"`
	DangerousGood       bool   `json:"dangerousGood"`
	PlasticPackaging    bool   `json:"plasticPackaging"`
	AutoGenerateWaybill *bool  `json:"autoGenerateWaybill"`
	Waybill             string `json:"waybill"`
	HSNCode             string `json:"hsnCode"`
}

type createShipmentRequest struct {
	OrderID        string `json:"orderId"        validate:"required"`
	ShipmentType   string `json:"shipmentType"   validate:"required,oneof=FORWARD REVERSE REPLACEMENT MPS"`
	PickupLocation string `json:"pickupLocation" validate:"required"`
	ShippingMode   string `json:"shippingMode"   validate:"omitempty,oneof=Surface Express"`

	Weight     float64            `json:"weight"     validate:"omitempty,gt=0"`
	Dimensions *dimensionsRequest `json:"dimensions"`
	Packages   []packageRequest   `json:"packages"`

	ProductCategory string              `json:"productCategory"`
	EstimatedValue  float64             `json:"estimatedValue" validate:"omitempty,gte=0"`
	HSNCode         string              `json:"hsnCode"`
	CustomFields    customFieldsRequest `json:"customFields"`
}

// --- Response types ---
// Success bodies use the dashboard's { success, data } envelope. The types
// are intentionally separate from ports/domain types so the JSON contract is
// not coupled to internal service changes.

type createShipmentEnvelope struct {
	Success bool               `json:"success"`
	Data    createShipmentData `json:"data"`
}

type createShipmentData struct {
	OrderID         string              `json:"orderId"`
	ShipmentType    string              `json:"shipmentType"`
	WaybillNumbers  []string            `json:"waybillNumbers"`
	PickupLocation  string              `json:"pickupLocation"`
	OutcomeKind     string              `json:"outcomeKind"`
	CarrierResponse carrierResponseData `json:"carrierResponse"`
	UpdatedOrder    *updatedOrderData   `json:"updatedOrder,omitempty"`
}

type carrierResponseData struct {
	Remark        string `json:"remark,omitempty"`
	CarrierRemark string `json:"carrierRemark,omitempty"`
}

type updatedOrderData struct {
	OrderID             string               `json:"orderId"`
	Status              string               `json:"status"`
	ShipmentCreated     bool                 `json:"shipmentCreated"`
	ShipmentDetails     *forwardShipmentData `json:"shipmentDetails,omitempty"`
	ReverseShipment     *singleShipmentData  `json:"reverseShipment,omitempty"`
	ReplacementShipment *singleShipmentData  `json:"replacementShipment,omitempty"`
}

type forwardShipmentData struct {
	Waybills       []string  `json:"waybills"`
	PrimaryWaybill string    `json:"primaryWaybill"`
	MasterID       string    `json:"masterId,omitempty"`
	PickupLocation string    `json:"pickupLocation"`
	ShippingMode   string    `json:"shippingMode"`
	OutcomeKind    string    `json:"outcomeKind"`
	Remark         string    `json:"remark,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type singleShipmentData struct {
	Waybill        string    `json:"waybill"`
	PickupLocation string    `json:"pickupLocation"`
	OutcomeKind    string    `json:"outcomeKind"`
	Remark         string    `json:"remark,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type warehouseData struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type shipmentStatusEnvelope struct {
	Success bool               `json:"success"`
	Data    shipmentStatusData `json:"data"`
}

type shipmentStatusData struct {
	OrderID             string               `json:"orderId"`
	Status              string               `json:"status"`
	ShipmentCreated     bool                 `json:"shipmentCreated"`
	ShipmentDetails     *forwardShipmentData `json:"shipmentDetails,omitempty"`
	ReverseShipment     *singleShipmentData  `json:"reverseShipment,omitempty"`
	ReplacementShipment *singleShipmentData  `json:"replacementShipment,omitempty"`
	AvailableActions    []string             `json:"availableActions"`
	Warehouses          []warehouseData      `json:"warehouses"`
	CanCreateShipment   bool                 `json:"canCreateShipment"`
}

func shippingModeOrDefault(s string) domain.ShippingMode {
	if s == "" {
		return domain.ModeSurface
	}
	return domain.ShippingMode(s)
}
