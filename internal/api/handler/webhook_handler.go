package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftkart/merchant-ops/internal/core/ports"
)

// ScanDispatcher is the interface the handler uses to enqueue tracking scans.
type ScanDispatcher interface {
	Enqueue(event ports.TrackingEventInput)
	EnqueueBatch(events []ports.TrackingEventInput)
}

// WebhookHandler ingests carrier tracking scans.
type WebhookHandler struct {
	dispatcher ScanDispatcher
}

// NewWebhookHandler creates a WebhookHandler backed by the given dispatcher.
func NewWebhookHandler(dispatcher ScanDispatcher) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher}
}

// Receive handles POST /webhooks/carrier/events. It enqueues a single scan
// and returns 202.
//
// @Summary      Ingest a single carrier tracking scan
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        body  body      trackingEventRequest  true  "Tracking scan"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /webhooks/carrier/events [post]
func (h *WebhookHandler) Receive(c echo.Context) error {
	var req trackingEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toTrackingInput(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "scan accepted"})
}

// ReceiveBatch handles POST /webhooks/carrier/events/batch. It enqueues a
// batch of scans and returns 202.
//
// @Summary      Ingest a batch of carrier tracking scans
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        body  body      []trackingEventRequest  true  "Array of tracking scans"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /webhooks/carrier/events/batch [post]
func (h *WebhookHandler) ReceiveBatch(c echo.Context) error {
	var reqs []trackingEventRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.TrackingEventInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("event[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toTrackingInput(req))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "scans accepted",
		Count:   len(inputs),
	})
}

func toTrackingInput(r trackingEventRequest) ports.TrackingEventInput {
	return ports.TrackingEventInput{
		Waybill:   r.Waybill,
		Status:    r.Status,
		Timestamp: r.Timestamp,
		Source:    r.Source,
		Location:  r.Location,
	}
}
