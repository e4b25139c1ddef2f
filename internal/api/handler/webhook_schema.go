package handler

import "time"

type trackingEventRequest struct {
	Waybill   string    `json:"waybill"   validate:"required"`
	Status    string    `json:"status"    validate:"required,oneof=Delivered Completed Cancelled Returned"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Source    string    `json:"source"    validate:"required"`
	Location  string    `json:"location"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
