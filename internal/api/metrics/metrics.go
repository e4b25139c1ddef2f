// Package metrics defines and registers all custom Prometheus metrics for the
// merchant ops API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "merchantops"

// ── Shipment pipeline metrics ─────────────────────────────────────────────────

// ShipmentsCreatedTotal counts shipments that completed the pipeline.
// Label:
//   - shipment_type: FORWARD, REVERSE, REPLACEMENT, or MPS
var ShipmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipments created, by shipment type.",
	},
	[]string{"shipment_type"},
)

// ShipmentOutcomesTotal counts outcomes by how their waybills were obtained.
// Label:
//   - kind: "real", "partial", or "synthesized"
var ShipmentOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipment_outcomes_total",
		Help:      "Total number of shipment outcomes, by outcome kind.",
	},
	[]string{"kind"},
)

// CarrierErrorsTotal counts failed carrier create calls.
// Label:
//   - reason: "not_configured", "unavailable", "rejected", or "other"
var CarrierErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "carrier_errors_total",
		Help:      "Total number of carrier create calls that failed.",
	},
	[]string{"reason"},
)

// ServiceabilityChecksTotal counts live pincode serviceability lookups.
// Label:
//   - result: "ok", "blocked", or "error"
var ServiceabilityChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "serviceability_checks_total",
		Help:      "Total number of live pincode serviceability checks, by result.",
	},
	[]string{"result"},
)

// ── Tracking webhook metrics ──────────────────────────────────────────────────

// TrackingProcessedTotal counts carrier scans that were applied successfully.
var TrackingProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_events_processed_total",
		Help:      "Total number of carrier tracking scans successfully applied.",
	},
	[]string{"status", "source"},
)

// TrackingErrorsTotal counts scans that failed processing.
// Label:
//   - reason: "invalid_transition", "order_not_found", or "update_failed"
var TrackingErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_events_errors_total",
		Help:      "Total number of carrier tracking scans that failed processing.",
	},
	[]string{"reason"},
)

// TrackingDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new scan, processed)
var TrackingDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_events_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// TrackingQueueDepth tracks the number of scans waiting in each worker channel.
var TrackingQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tracking_queue_depth",
		Help:      "Current number of scans pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// TrackingDuration measures how long a single scan takes to apply end-to-end.
var TrackingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tracking_event_duration_seconds",
		Help:      "Duration of scan processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"status"},
)
