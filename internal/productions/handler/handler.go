package handler

import (
	"github.com/gin-gonic/gin"

	"orderflow_backend/internal/productions/service"
	"orderflow_backend/platform/httpkit"
)

// Handler handles HTTP requests for productions.
type Handler struct {
	svc *service.Service
}

// New creates a new production handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// GetByID retrieves a production and its sub-ledger.
// GET /api/v1/productions/:id
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
