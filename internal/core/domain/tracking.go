package domain

import "time"

// TrackingEvent is a carrier scan pushed to the tracking webhook.
type TrackingEvent struct {
	Waybill   string
	Status    OrderStatus
	Timestamp time.Time
	Source    string
	Location  string // free-text scan location, optional
}
