package domain

import "time"

// ShipmentType selects the pipeline branch for a shipment request.
type ShipmentType string

const (
	ShipmentForward     ShipmentType = "FORWARD"
	ShipmentReverse     ShipmentType = "REVERSE"
	ShipmentReplacement ShipmentType = "REPLACEMENT"
	ShipmentMPS         ShipmentType = "MPS"
)

// Valid reports whether t is one of the supported shipment types.
func (t ShipmentType) Valid() bool {
	switch t {
	case ShipmentForward, ShipmentReverse, ShipmentReplacement, ShipmentMPS:
		return true
	}
	return false
}

// PaymentMode is the carrier-level payment mode attached to a shipment record.
type PaymentMode string

const (
	PaymentCOD     PaymentMode = "COD"
	PaymentPrepaid PaymentMode = "Prepaid"
	PaymentPickup  PaymentMode = "Pickup"
	PaymentRepl    PaymentMode = "REPL"
)

// ShippingMode is the carrier transport mode.
type ShippingMode string

const (
	ModeSurface ShippingMode = "Surface"
	ModeExpress ShippingMode = "Express"
)

// OutcomeKind classifies how the waybills on an outcome were obtained.
type OutcomeKind string

const (
	OutcomeReal        OutcomeKind = "real"
	OutcomePartial     OutcomeKind = "partial"
	OutcomeSynthesized OutcomeKind = "synthesized"
)

// ShipmentOutcome is the reconciled result of a shipment attempt. At least one
// waybill is always present; Kind says whether they came from the carrier.
type ShipmentOutcome struct {
	Waybills []string    `json:"waybills"`
	Kind     OutcomeKind `json:"kind"`
	Remark   string      `json:"remark"`
}

// ShipmentSubRecord is the per-type shipment record attached to an order.
// Exactly one concrete type exists per shipment kind, preserving the
// "at most one of each, chosen by type" invariant.
type ShipmentSubRecord interface {
	subRecord()
}

// ForwardShipment covers both FORWARD and MPS shipments.
type ForwardShipment struct {
	Waybills       []string     `json:"waybills" bson:"waybills"`
	PrimaryWaybill string       `json:"primary_waybill" bson:"primary_waybill"`
	MasterID       string       `json:"master_id,omitempty" bson:"master_id,omitempty"`
	PickupLocation string       `json:"pickup_location" bson:"pickup_location"`
	Mode           ShippingMode `json:"shipping_mode" bson:"shipping_mode"`
	OutcomeKind    OutcomeKind  `json:"outcome_kind" bson:"outcome_kind"`
	Remark         string       `json:"remark,omitempty" bson:"remark,omitempty"`
	CreatedAt      time.Time    `json:"created_at" bson:"created_at"`
}

type ReverseShipment struct {
	Waybill        string      `json:"waybill" bson:"waybill"`
	PickupLocation string      `json:"pickup_location" bson:"pickup_location"`
	OutcomeKind    OutcomeKind `json:"outcome_kind" bson:"outcome_kind"`
	Remark         string      `json:"remark,omitempty" bson:"remark,omitempty"`
	CreatedAt      time.Time   `json:"created_at" bson:"created_at"`
}

type ReplacementShipment struct {
	Waybill        string      `json:"waybill" bson:"waybill"`
	PickupLocation string      `json:"pickup_location" bson:"pickup_location"`
	OutcomeKind    OutcomeKind `json:"outcome_kind" bson:"outcome_kind"`
	Remark         string      `json:"remark,omitempty" bson:"remark,omitempty"`
	CreatedAt      time.Time   `json:"created_at" bson:"created_at"`
}

func (*ForwardShipment) subRecord()     {}
func (*ReverseShipment) subRecord()     {}
func (*ReplacementShipment) subRecord() {}
