package exports

import (
	"net/http"

	pipelinehandler "orderflow_backend/internal/pipeline/handler"
	"orderflow_backend/internal/pipeline/transport"
	"orderflow_backend/platform/httpkit"
	"orderflow_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request"

// ExportResponse is returned when the workbook was uploaded.
type ExportResponse struct {
	FileName  string `json:"fileName"`
	Rows      int    `json:"rows"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expiresAt"`
}

// Handler handles board export requests.
type Handler struct {
	svc *Service
	val *validator.Validator
}

// NewHandler creates a new export handler.
func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ExportBoard renders the filtered board to XLSX.
// POST /api/v1/exports/board
func (h *Handler) ExportBoard(c *gin.Context) {
	var q transport.BoardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	filter, err := pipelinehandler.ToListFilter(q)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	export, err := h.svc.ExportBoard(c.Request.Context(), filter)
	if httpkit.HandleError(c, err) {
		return
	}

	if export.Download != nil {
		httpkit.OK(c, ExportResponse{
			FileName:  export.FileName,
			Rows:      export.Rows,
			URL:       export.Download.URL,
			ExpiresAt: export.Download.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+export.FileName+"\"")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Data(http.StatusOK, xlsxType, export.Content)
}
