package ports

import (
	"context"
	"time"
)

// TrackingEventInput is the DTO passed from the webhook handler to the
// tracking service.
type TrackingEventInput struct {
	Waybill   string
	Status    string
	Timestamp time.Time
	Source    string
	Location  string // optional
}

// TrackingService processes inbound carrier tracking scans.
type TrackingService interface {
	Process(ctx context.Context, event TrackingEventInput) error
}
