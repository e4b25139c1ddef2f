package domain

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusConfirmed            OrderStatus = "Confirmed"
	StatusProcessing           OrderStatus = "Processing"
	StatusDispatched           OrderStatus = "Dispatched"
	StatusDelivered            OrderStatus = "Delivered"
	StatusCompleted            OrderStatus = "Completed"
	StatusCancelled            OrderStatus = "Cancelled"
	StatusReturnInitiated      OrderStatus = "Return Initiated"
	StatusReturned             OrderStatus = "Returned"
	StatusReplacementInitiated OrderStatus = "Replacement Initiated"
)

// PaymentMethodCOD is the only payment method that drives a COD carrier shipment.
const PaymentMethodCOD = "COD"

var ErrOrderNotFound = errors.New("order not found")
var ErrValidation = errors.New("invalid request")
var ErrPackagesRequired = fmt.Errorf("%w: packages are required for an MPS shipment", ErrValidation)
var ErrPrecondition = errors.New("order state does not allow this shipment")
var ErrShipmentAlreadyCreated = fmt.Errorf("%w: a forward shipment already exists", ErrPrecondition)
var ErrInvalidName = errors.New("recipient name is invalid")
var ErrServiceabilityBlocked = errors.New("pincode is not serviceable by the carrier")
var ErrCarrierNotConfigured = errors.New("carrier credentials are not configured")
var ErrCarrierRejected = errors.New("carrier rejected the shipment")
var ErrCarrierUnavailable = errors.New("carrier request failed")
var ErrInvalidTransition = errors.New("invalid status transition")

// trackingTransitions defines the order status moves that inbound carrier
// scans are allowed to make after a shipment has been created.
var trackingTransitions = map[OrderStatus][]OrderStatus{
	StatusDispatched:      {StatusDelivered, StatusCancelled},
	StatusDelivered:       {StatusCompleted},
	StatusReturnInitiated: {StatusReturned},
}

// CanTransitionTo reports whether a tracking scan may move the order from its
// current status to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range trackingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Address is the shipping destination recorded on an order.
type Address struct {
	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Pincode string `json:"pincode" bson:"pincode"`
}

// OrderItem is a single line item on an order.
type OrderItem struct {
	Name     string      `json:"name" bson:"name"`
	Quantity int         `json:"quantity" bson:"quantity"`
	Price    float64     `json:"price" bson:"price"`
	Status   OrderStatus `json:"status,omitempty" bson:"status,omitempty"`
	Waybill  string      `json:"waybill,omitempty" bson:"waybill,omitempty"`
}

// Order is the aggregate the shipment pipeline reads and, once an outcome
// exists, mutates in a single write.
type Order struct {
	ID              string      `json:"id" bson:"_id,omitempty"`
	Status          OrderStatus `json:"status" bson:"status"`
	CustomerName    string      `json:"customer_name" bson:"customer_name"`
	Phone           string      `json:"phone" bson:"phone"`
	ShippingAddress Address     `json:"shipping_address" bson:"shipping_address"`
	Items           []OrderItem `json:"items" bson:"items"`
	PaymentMethod   string      `json:"payment_method" bson:"payment_method"`
	TotalAmount     float64     `json:"total_amount" bson:"total_amount"`
	CreatedAt       time.Time   `json:"created_at" bson:"created_at"`

	ShipmentCreated     bool                 `json:"shipment_created" bson:"shipment_created"`
	ShipmentDetails     *ForwardShipment     `json:"shipment_details,omitempty" bson:"shipment_details,omitempty"`
	ReverseShipment     *ReverseShipment     `json:"reverse_shipment,omitempty" bson:"reverse_shipment,omitempty"`
	ReplacementShipment *ReplacementShipment `json:"replacement_shipment,omitempty" bson:"replacement_shipment,omitempty"`
}

// forwardStatuses are the order states from which a forward or MPS shipment
// may be created.
var forwardStatuses = []OrderStatus{StatusConfirmed, StatusProcessing, StatusDispatched}

// returnStatuses are the order states from which a reverse or replacement
// shipment may be created.
var returnStatuses = []OrderStatus{StatusDelivered, StatusCompleted}

func statusIn(s OrderStatus, set []OrderStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// CanCreateShipment checks the per-shipment-type preconditions. It returns a
// wrapped ErrPrecondition describing the violation, or nil.
func (o *Order) CanCreateShipment(t ShipmentType) error {
	switch t {
	case ShipmentForward:
		if o.ShipmentCreated {
			return ErrShipmentAlreadyCreated
		}
		if !statusIn(o.Status, forwardStatuses) {
			return fmt.Errorf("%w: forward shipment requires Confirmed, Processing or Dispatched, order is %s", ErrPrecondition, o.Status)
		}
	case ShipmentMPS:
		if !statusIn(o.Status, forwardStatuses) {
			return fmt.Errorf("%w: MPS shipment requires Confirmed, Processing or Dispatched, order is %s", ErrPrecondition, o.Status)
		}
	case ShipmentReverse:
		if !statusIn(o.Status, returnStatuses) {
			return fmt.Errorf("%w: reverse shipment requires Delivered or Completed, order is %s", ErrPrecondition, o.Status)
		}
		if o.ReverseShipment != nil {
			return fmt.Errorf("%w: a reverse shipment already exists", ErrPrecondition)
		}
	case ShipmentReplacement:
		if !statusIn(o.Status, returnStatuses) {
			return fmt.Errorf("%w: replacement shipment requires Delivered or Completed, order is %s", ErrPrecondition, o.Status)
		}
		if o.ReplacementShipment != nil {
			return fmt.Errorf("%w: a replacement shipment already exists", ErrPrecondition)
		}
	default:
		return fmt.Errorf("%w: unknown shipment type %q", ErrValidation, t)
	}
	return nil
}

// ApplyShipmentOutcome mutates the order for a successful shipment outcome.
// Callers must have checked CanCreateShipment first; the persistence layer
// re-asserts the same preconditions in its conditional write.
func (o *Order) ApplyShipmentOutcome(sub ShipmentSubRecord) {
	switch s := sub.(type) {
	case *ForwardShipment:
		o.ShipmentCreated = true
		o.Status = StatusDispatched
		o.ShipmentDetails = s
		for i := range o.Items {
			o.Items[i].Status = StatusDispatched
			o.Items[i].Waybill = s.PrimaryWaybill
		}
	case *ReverseShipment:
		o.Status = StatusReturnInitiated
		o.ReverseShipment = s
	case *ReplacementShipment:
		o.Status = StatusReplacementInitiated
		o.ReplacementShipment = s
	}
}

// AvailableActions derives the shipment actions currently permitted for the
// order, purely from status and existing sub-records.
func (o *Order) AvailableActions() []string {
	actions := make([]string, 0, 4)
	if o.CanCreateShipment(ShipmentForward) == nil {
		actions = append(actions, "create_shipment")
	}
	if o.CanCreateShipment(ShipmentMPS) == nil {
		actions = append(actions, "create_mps_shipment")
	}
	if o.CanCreateShipment(ShipmentReverse) == nil {
		actions = append(actions, "create_reverse_shipment")
	}
	if o.CanCreateShipment(ShipmentReplacement) == nil {
		actions = append(actions, "create_replacement_shipment")
	}
	return actions
}
