package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/craftkart/merchant-ops/internal/api/metrics"
	"github.com/craftkart/merchant-ops/internal/core/domain"
	"github.com/craftkart/merchant-ops/internal/core/normalize"
	"github.com/craftkart/merchant-ops/internal/core/ports"
)

// ShipmentService drives the shipment creation pipeline: build records,
// pre-check serviceability, call the carrier, reconcile the response, and
// apply the outcome to the order in a single write.
type ShipmentService struct {
	orders     ports.OrderRepository
	warehouses *WarehouseResolver
	whRepo     ports.WarehouseRepository
	builder    *RequestBuilder
	preval     *normalize.Prevalidator
	gateway    ports.CarrierGateway
	reconciler *Reconciler
	log        zerolog.Logger
}

func NewShipmentService(
	orders ports.OrderRepository,
	whRepo ports.WarehouseRepository,
	builder *RequestBuilder,
	preval *normalize.Prevalidator,
	gateway ports.CarrierGateway,
	reconciler *Reconciler,
	log zerolog.Logger,
) *ShipmentService {
	return &ShipmentService{
		orders:     orders,
		warehouses: NewWarehouseResolver(whRepo, log),
		whRepo:     whRepo,
		builder:    builder,
		preval:     preval,
		gateway:    gateway,
		reconciler: reconciler,
		log:        log,
	}
}

// CreateShipment runs the full pipeline for one shipment request.
func (s *ShipmentService) CreateShipment(ctx context.Context, in ports.CreateShipmentInput) (*ports.CreateShipmentResult, error) {
	// 1. Request-level validation: nothing external is called on failure.
	if err := validateInput(in); err != nil {
		return nil, err
	}

	// 2. Load the order.
	order, err := s.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}

	// 3. Shipment-type preconditions against current order state.
	if err := order.CanCreateShipment(in.ShipmentType); err != nil {
		return nil, err
	}

	// 4. Resolve the pickup warehouse (never fails, degrades tier by tier).
	warehouse := s.warehouses.Resolve(ctx, in.PickupLocation)

	// 5. Build carrier records; address and product fields degrade through
	// the normalizers rather than failing.
	records, clean := s.builder.Build(order, in, warehouse.Warehouse)

	// 6. Live carrier pincode check. An embargoed or explicitly
	// non-serviceable pincode blocks the request; lookup errors are soft.
	if err := s.checkPincode(ctx, clean.Pincode); err != nil {
		return nil, err
	}

	// 7–9. Derive the outcome: synthesis for data-quality and heuristic
	// concerns, a real carrier call otherwise.
	outcome, carrierRemark, err := s.resolveOutcome(ctx, records, clean, in)
	if err != nil {
		return nil, err
	}

	// 10. Apply the outcome to the order. The repository re-asserts the
	// preconditions in its update filter, so a concurrent creator loses
	// cleanly and no partial write ever lands.
	order.ApplyShipmentOutcome(subRecordFor(in, outcome, warehouse.Name))
	if err := s.orders.ApplyShipmentOutcome(ctx, order, in.ShipmentType); err != nil {
		return nil, err
	}

	metrics.ShipmentsCreatedTotal.WithLabelValues(string(in.ShipmentType)).Inc()
	metrics.ShipmentOutcomesTotal.WithLabelValues(string(outcome.Kind)).Inc()
	s.log.Info().
		Str("order_id", order.ID).
		Str("shipment_type", string(in.ShipmentType)).
		Str("outcome_kind", string(outcome.Kind)).
		Strs("waybills", outcome.Waybills).
		Msg("shipment created")

	return &ports.CreateShipmentResult{
		OrderID:        order.ID,
		ShipmentType:   in.ShipmentType,
		WaybillNumbers: outcome.Waybills,
		PickupLocation: warehouse.Name,
		OutcomeKind:    outcome.Kind,
		Remark:         outcome.Remark,
		CarrierRemark:  carrierRemark,
		UpdatedOrder:   order,
	}, nil
}

// GetShipmentStatus returns the shipment view for an order, including the
// actions its current state permits.
func (s *ShipmentService) GetShipmentStatus(ctx context.Context, orderID string) (*ports.ShipmentStatusView, error) {
	if orderID == "" {
		return nil, fmt.Errorf("%w: orderId is required", domain.ErrValidation)
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	warehouses, err := s.whRepo.ListActive(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("listing warehouses failed, returning empty list")
		warehouses = nil
	}

	return &ports.ShipmentStatusView{
		OrderID:             order.ID,
		Status:              order.Status,
		ShipmentCreated:     order.ShipmentCreated,
		ShipmentDetails:     order.ShipmentDetails,
		ReverseShipment:     order.ReverseShipment,
		ReplacementShipment: order.ReplacementShipment,
		AvailableActions:    order.AvailableActions(),
		Warehouses:          warehouses,
		CanCreateShipment:   order.CanCreateShipment(domain.ShipmentForward) == nil,
	}, nil
}

func validateInput(in ports.CreateShipmentInput) error {
	if in.OrderID == "" {
		return fmt.Errorf("%w: orderId is required", domain.ErrValidation)
	}
	if in.PickupLocation == "" {
		return fmt.Errorf("%w: pickupLocation is required", domain.ErrValidation)
	}
	if !in.ShipmentType.Valid() {
		return fmt.Errorf("%w: shipmentType must be FORWARD, REVERSE, REPLACEMENT or MPS", domain.ErrValidation)
	}
	if in.ShipmentType == domain.ShipmentMPS && len(in.Packages) == 0 {
		return domain.ErrPackagesRequired
	}
	return nil
}

// checkPincode consults the carrier's live serviceability endpoint. Lookup
// failures are logged and ignored; only an explicit negative blocks.
func (s *ShipmentService) checkPincode(ctx context.Context, pincode string) error {
	sv, err := s.gateway.CheckPincode(ctx, pincode)
	if err != nil {
		if errors.Is(err, domain.ErrCarrierNotConfigured) {
			return nil
		}
		s.log.Warn().Err(err).Str("pincode", pincode).Msg("pincode lookup failed, continuing")
		metrics.ServiceabilityChecksTotal.WithLabelValues("error").Inc()
		return nil
	}
	if !sv.Serviceable || sv.Embargo {
		metrics.ServiceabilityChecksTotal.WithLabelValues("blocked").Inc()
		reason := "not serviceable"
		if sv.Embargo {
			reason = "under embargo"
		}
		return fmt.Errorf("%w: pincode %s is %s", domain.ErrServiceabilityBlocked, pincode, reason)
	}
	metrics.ServiceabilityChecksTotal.WithLabelValues("ok").Inc()
	return nil
}

// resolveOutcome derives the outcome in order of cost: validation synthesis,
// then heuristic synthesis, then a real carrier call reconciled.
func (s *ShipmentService) resolveOutcome(
	ctx context.Context,
	records []domain.CarrierShipmentRecord,
	clean normalize.CleanedAddress,
	in ports.CreateShipmentInput,
) (domain.ShipmentOutcome, string, error) {
	if issues := domain.ValidateCarrierRecords(records); len(issues) > 0 {
		return s.reconciler.SynthesizeValidation(records, issues), "", nil
	}

	// The heuristic grades the merchant's raw address. The repaired address
	// from the normalizer always carries locality markers, so grading it
	// instead would never flag anything.
	finding := s.preval.Estimate(clean.OriginalAddress, clean.Pincode, clean.City)
	if !finding.LikelyServiceable {
		return s.reconciler.SynthesizeServiceability(records, finding), "", nil
	}

	resp, err := s.gateway.CreateShipments(ctx, records, in.PickupLocation)
	if err != nil {
		// Network and credential failures are terminal: the order is left
		// untouched and the error surfaces to the caller.
		metrics.CarrierErrorsTotal.WithLabelValues(carrierErrorReason(err)).Inc()
		return domain.ShipmentOutcome{}, "", err
	}

	diag := AddressDiag{Original: clean.OriginalAddress, Suggested: finding.Suggestion}
	if diag.Suggested == "" && clean.AddressRewritten {
		diag.Suggested = clean.Address
	}
	outcome, err := s.reconciler.Reconcile(records, resp, diag)
	if err != nil {
		metrics.CarrierErrorsTotal.WithLabelValues("rejected").Inc()
		return domain.ShipmentOutcome{}, "", err
	}
	return outcome, resp.Remark, nil
}

func carrierErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrCarrierNotConfigured):
		return "not_configured"
	case errors.Is(err, domain.ErrCarrierUnavailable):
		return "unavailable"
	default:
		return "other"
	}
}

// subRecordFor builds the per-type sub-record the outcome attaches to the order.
func subRecordFor(in ports.CreateShipmentInput, outcome domain.ShipmentOutcome, pickupLocation string) domain.ShipmentSubRecord {
	now := time.Now().UTC()
	switch in.ShipmentType {
	case domain.ShipmentReverse:
		return &domain.ReverseShipment{
			Waybill:        outcome.Waybills[0],
			PickupLocation: pickupLocation,
			OutcomeKind:    outcome.Kind,
			Remark:         outcome.Remark,
			CreatedAt:      now,
		}
	case domain.ShipmentReplacement:
		return &domain.ReplacementShipment{
			Waybill:        outcome.Waybills[0],
			PickupLocation: pickupLocation,
			OutcomeKind:    outcome.Kind,
			Remark:         outcome.Remark,
			CreatedAt:      now,
		}
	default: // FORWARD, MPS
		fwd := &domain.ForwardShipment{
			Waybills:       outcome.Waybills,
			PrimaryWaybill: outcome.Waybills[0],
			PickupLocation: pickupLocation,
			Mode:           in.ShippingMode,
			OutcomeKind:    outcome.Kind,
			Remark:         outcome.Remark,
			CreatedAt:      now,
		}
		if in.ShipmentType == domain.ShipmentMPS {
			fwd.MasterID = outcome.Waybills[0]
		}
		return fwd
	}
}
