package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftkart/merchant-ops/internal/core/ports"
)

// ShipmentHandler handles HTTP requests for the shipment pipeline.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// Create handles POST /shipments.
//
// @Summary      Create a shipment for an order
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShipmentRequest  true  "Shipment request"
// @Success      200   {object}  createShipmentEnvelope
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.CreateShipment(c.Request().Context(), toCreateShipmentInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCreateShipmentResponse(result))
}

// Status handles GET /shipments?orderId=.
//
// @Summary      Get shipment status for an order
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  query     string  true  "Order ID"
// @Success      200      {object}  shipmentStatusEnvelope
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /shipments [get]
func (h *ShipmentHandler) Status(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	orderID := c.QueryParam("orderId")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "orderId query parameter is required")
	}

	view, err := h.service.GetShipmentStatus(c.Request().Context(), orderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toShipmentStatusResponse(view))
}
