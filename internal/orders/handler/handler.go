package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orderflow_backend/internal/orders/service"
	"orderflow_backend/internal/orders/transport"
	"orderflow_backend/platform/httpkit"
	"orderflow_backend/platform/validator"
)

// Handler handles HTTP requests for Design-stage orders.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new order handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create opens an order.
// POST /api/v1/orders
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateOrderRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// GetByID retrieves an order and its progress events.
// GET /api/v1/orders/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := httpkit.ParseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update edits order fields.
// PUT /api/v1/orders/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := httpkit.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req transport.UpdateOrderRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListProgressEvents lists the design activities of an order.
// GET /api/v1/orders/:id/progress
func (h *Handler) ListProgressEvents(c *gin.Context) {
	id, ok := httpkit.ParseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.svc.ListProgressEvents(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateProgressEvent adds a design activity.
// POST /api/v1/orders/:id/progress
func (h *Handler) CreateProgressEvent(c *gin.Context) {
	id, ok := httpkit.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req transport.ProgressEventRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.CreateProgressEvent(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateProgressEvent edits a design activity.
// PUT /api/v1/orders/:id/progress/:eventId
func (h *Handler) UpdateProgressEvent(c *gin.Context) {
	id, ok := httpkit.ParseIDParam(c, "id")
	if !ok {
		return
	}
	eventID, ok := httpkit.ParseIDParam(c, "eventId")
	if !ok {
		return
	}

	var req transport.ProgressEventRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.UpdateProgressEvent(c.Request.Context(), id, eventID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteProgressEvent removes a design activity.
// DELETE /api/v1/orders/:id/progress/:eventId
func (h *Handler) DeleteProgressEvent(c *gin.Context) {
	id, ok := httpkit.ParseIDParam(c, "id")
	if !ok {
		return
	}
	eventID, ok := httpkit.ParseIDParam(c, "eventId")
	if !ok {
		return
	}

	if err := h.svc.DeleteProgressEvent(c.Request.Context(), id, eventID); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}
