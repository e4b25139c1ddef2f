package domain

import (
	"errors"
	"testing"
	"time"
)

func sampleOrder(status OrderStatus) *Order {
	return &Order{
		ID:           "ORD-1001",
		Status:       status,
		CustomerName: "Riya Sharma",
		Phone:        "9876543210",
		Items: []OrderItem{
			{Name: "Cotton Kurta", Quantity: 1, Price: 899},
			{Name: "Silk Saree", Quantity: 1, Price: 2499},
		},
		PaymentMethod: PaymentMethodCOD,
		TotalAmount:   3398,
	}
}

func TestCanCreateShipment_Forward(t *testing.T) {
	for _, status := range []OrderStatus{StatusConfirmed, StatusProcessing, StatusDispatched} {
		if err := sampleOrder(status).CanCreateShipment(ShipmentForward); err != nil {
			t.Fatalf("status %s: unexpected error %v", status, err)
		}
	}

	o := sampleOrder(StatusConfirmed)
	o.ShipmentCreated = true
	if err := o.CanCreateShipment(ShipmentForward); !errors.Is(err, ErrShipmentAlreadyCreated) {
		t.Fatalf("expected ErrShipmentAlreadyCreated, got %v", err)
	}

	if err := sampleOrder(StatusDelivered).CanCreateShipment(ShipmentForward); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition, got %v", err)
	}
}

func TestCanCreateShipment_MPSAllowsExistingShipment(t *testing.T) {
	o := sampleOrder(StatusProcessing)
	o.ShipmentCreated = true
	if err := o.CanCreateShipment(ShipmentMPS); err != nil {
		t.Fatalf("MPS should not check shipment_created, got %v", err)
	}
}

func TestCanCreateShipment_ReverseAndReplacement(t *testing.T) {
	for _, typ := range []ShipmentType{ShipmentReverse, ShipmentReplacement} {
		if err := sampleOrder(StatusDelivered).CanCreateShipment(typ); err != nil {
			t.Fatalf("%s from Delivered: unexpected error %v", typ, err)
		}
		if err := sampleOrder(StatusConfirmed).CanCreateShipment(typ); !errors.Is(err, ErrPrecondition) {
			t.Fatalf("%s from Confirmed: expected ErrPrecondition, got %v", typ, err)
		}
	}

	o := sampleOrder(StatusDelivered)
	o.ReverseShipment = &ReverseShipment{Waybill: "1234567890"}
	if err := o.CanCreateShipment(ShipmentReverse); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("duplicate reverse: expected ErrPrecondition, got %v", err)
	}
	// An existing reverse shipment does not block a replacement.
	if err := o.CanCreateShipment(ShipmentReplacement); err != nil {
		t.Fatalf("replacement alongside reverse: unexpected error %v", err)
	}
}

func TestCanCreateShipment_UnknownType(t *testing.T) {
	if err := sampleOrder(StatusConfirmed).CanCreateShipment(ShipmentType("EXPRESS")); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestApplyShipmentOutcome_Forward(t *testing.T) {
	o := sampleOrder(StatusConfirmed)
	sub := &ForwardShipment{
		Waybills:       []string{"9900000001"},
		PrimaryWaybill: "9900000001",
		PickupLocation: "CraftKart Main Warehouse",
		CreatedAt:      time.Now(),
	}

	o.ApplyShipmentOutcome(sub)

	if !o.ShipmentCreated {
		t.Fatalf("shipment_created not set")
	}
	if o.Status != StatusDispatched {
		t.Fatalf("status = %s, want Dispatched", o.Status)
	}
	if o.ShipmentDetails != sub {
		t.Fatalf("shipment details not attached")
	}
	for i, item := range o.Items {
		if item.Status != StatusDispatched {
			t.Fatalf("item %d status = %s, want Dispatched", i, item.Status)
		}
		if item.Waybill != "9900000001" {
			t.Fatalf("item %d waybill = %q", i, item.Waybill)
		}
	}
}

func TestApplyShipmentOutcome_ReverseAndReplacement(t *testing.T) {
	o := sampleOrder(StatusDelivered)
	o.ApplyShipmentOutcome(&ReverseShipment{Waybill: "1234567890"})
	if o.Status != StatusReturnInitiated {
		t.Fatalf("status = %s, want Return Initiated", o.Status)
	}
	if o.ReverseShipment == nil {
		t.Fatalf("reverse shipment not attached")
	}

	o2 := sampleOrder(StatusDelivered)
	o2.ApplyShipmentOutcome(&ReplacementShipment{Waybill: "1234567891"})
	if o2.Status != StatusReplacementInitiated {
		t.Fatalf("status = %s, want Replacement Initiated", o2.Status)
	}
	if o2.ReplacementShipment == nil {
		t.Fatalf("replacement shipment not attached")
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusDispatched, StatusDelivered, true},
		{StatusDispatched, StatusCancelled, true},
		{StatusDelivered, StatusCompleted, true},
		{StatusReturnInitiated, StatusReturned, true},
		{StatusDelivered, StatusDispatched, false},
		{StatusCompleted, StatusDelivered, false},
		{StatusConfirmed, StatusDelivered, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Fatalf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAvailableActions(t *testing.T) {
	confirmed := sampleOrder(StatusConfirmed).AvailableActions()
	wantConfirmed := map[string]bool{"create_shipment": true, "create_mps_shipment": true}
	for _, a := range confirmed {
		if !wantConfirmed[a] {
			t.Fatalf("unexpected action %q for Confirmed order", a)
		}
		delete(wantConfirmed, a)
	}
	if len(wantConfirmed) != 0 {
		t.Fatalf("missing actions: %v", wantConfirmed)
	}

	delivered := sampleOrder(StatusDelivered).AvailableActions()
	found := map[string]bool{}
	for _, a := range delivered {
		found[a] = true
	}
	if !found["create_reverse_shipment"] || !found["create_replacement_shipment"] {
		t.Fatalf("delivered order actions = %v", delivered)
	}
	if found["create_shipment"] {
		t.Fatalf("delivered order must not allow forward shipment")
	}
}
