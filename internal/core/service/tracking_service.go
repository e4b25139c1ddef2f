package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/craftkart/merchant-ops/internal/api/metrics"
	"github.com/craftkart/merchant-ops/internal/core/domain"
	"github.com/craftkart/merchant-ops/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, waybill, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, waybill, status string, ts time.Time) error
}

type trackingService struct {
	orders ports.OrderRepository
	dedup  DedupChecker
	log    zerolog.Logger
}

// NewTrackingService returns a TrackingService that applies carrier scans to
// order statuses.
func NewTrackingService(orders ports.OrderRepository, dedup DedupChecker, log zerolog.Logger) ports.TrackingService {
	return &trackingService{orders: orders, dedup: dedup, log: log}
}

// Process validates, deduplicates, and applies a single carrier scan.
func (s *trackingService) Process(ctx context.Context, in ports.TrackingEventInput) error {
	start := time.Now()
	newStatus := domain.OrderStatus(in.Status)

	// 1. Idempotency check, silently skipping duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.Waybill, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("waybill", in.Waybill).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.TrackingDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("waybill", in.Waybill).Str("status", in.Status).Msg("duplicate scan skipped")
		return nil
	}
	metrics.TrackingDedupTotal.WithLabelValues("miss").Inc()

	// 2. Find the order carrying the waybill.
	order, err := s.orders.FindByWaybill(ctx, in.Waybill)
	if err != nil {
		metrics.TrackingErrorsTotal.WithLabelValues("order_not_found").Inc()
		return fmt.Errorf("process scan: %w", err)
	}

	// 3. Validate the status move.
	if !order.Status.CanTransitionTo(newStatus) {
		metrics.TrackingErrorsTotal.WithLabelValues("invalid_transition").Inc()
		return fmt.Errorf("process scan: %w (from %s to %s)", domain.ErrInvalidTransition, order.Status, newStatus)
	}

	// 4. Mark processed before writing so a retry cannot double-apply.
	if markErr := s.dedup.Mark(ctx, in.Waybill, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("waybill", in.Waybill).Msg("failed to set dedup key")
	}

	// 5. Atomically update the order status + tracking history.
	event := &domain.TrackingEvent{
		Waybill:   in.Waybill,
		Status:    newStatus,
		Timestamp: in.Timestamp,
		Source:    in.Source,
		Location:  in.Location,
	}
	if err := s.orders.UpdateStatusByWaybill(ctx, in.Waybill, newStatus, event); err != nil {
		metrics.TrackingErrorsTotal.WithLabelValues("update_failed").Inc()
		return fmt.Errorf("process scan: update status: %w", err)
	}

	metrics.TrackingProcessedTotal.WithLabelValues(in.Status, in.Source).Inc()
	metrics.TrackingDuration.WithLabelValues(in.Status).Observe(time.Since(start).Seconds())
	s.log.Info().
		Str("waybill", in.Waybill).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("tracking scan applied")

	return nil
}
