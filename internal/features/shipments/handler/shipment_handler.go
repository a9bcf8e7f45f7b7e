package handler

import (
	"errors"
	"strings"

	"shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/shipments/service"

	"github.com/gofiber/fiber/v2"
)

// ShipmentHandler handles HTTP requests for the shipment query and update surface.
type ShipmentHandler struct {
	updateService *service.UpdateService
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(updateService *service.UpdateService) *ShipmentHandler {
	return &ShipmentHandler{
		updateService: updateService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// ListShipments godoc
// @Summary List all shipments
// @Description Returns a point-in-time snapshot of every tracked shipment
// @Tags shipments
// @Produce json
// @Success 200 {array} domain.Shipment
// @Router /shipments [get]
func (h *ShipmentHandler) ListShipments(c *fiber.Ctx) error {
	return c.JSON(h.updateService.ListShipments())
}

// GetShipment godoc
// @Summary Get one shipment by id
// @Description Returns the current snapshot of a shipment
// @Tags shipments
// @Produce json
// @Param id path string true "Shipment ID"
// @Success 200 {object} domain.Shipment
// @Failure 404 {object} ErrorResponse
// @Router /shipments/{id} [get]
func (h *ShipmentHandler) GetShipment(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "shipment id is required",
			RayID:   rayID(c),
		})
	}

	shipment, err := h.updateService.GetShipment(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.JSON(shipment)
}

// SubmitUpdate godoc
// @Summary Submit one update event
// @Description Applies an update event to its target shipment. Accepts a JSON event, or a raw "type,id,timestamp[,otherInfo]" line when sent as text/plain.
// @Tags shipments
// @Accept json
// @Accept plain
// @Produce json
// @Param event body domain.UpdateEvent true "Update event"
// @Success 200 {object} service.ProcessResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /updates [post]
func (h *ShipmentHandler) SubmitUpdate(c *fiber.Ctx) error {
	var (
		result *service.ProcessResult
		err    error
	)

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMETextPlain) {
		result, err = h.updateService.ProcessLine(string(c.Body()))
	} else {
		var ev domain.UpdateEvent
		if parseErr := c.BodyParser(&ev); parseErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: "invalid update event payload",
				RayID:   rayID(c),
			})
		}
		result, err = h.updateService.Process(ev)
	}

	if err != nil {
		return c.Status(statusForError(err)).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.JSON(result)
}

// ResetSimulation godoc
// @Summary Reset all shipment state
// @Description Clears the shipment store, as when a new replay run starts
// @Tags simulation
// @Success 204
// @Router /simulation/reset [post]
func (h *ShipmentHandler) ResetSimulation(c *fiber.Ctx) error {
	h.updateService.Reset()
	return c.SendStatus(fiber.StatusNoContent)
}

// statusForError maps the error taxonomy to HTTP status codes so failed
// submissions surface their specific reason.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrShipmentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUpdateRejected):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidUpdate), errors.Is(err, domain.ErrUnknownUpdateType):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// rayID returns the request id local when the middleware installed one.
func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
