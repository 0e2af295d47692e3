// Package exports renders the unified order board to XLSX for download.
package exports

import (
	"orderflow_backend/internal/adapters/storage"
	apphttp "orderflow_backend/internal/http"
	"orderflow_backend/platform/httpkit"
	"orderflow_backend/platform/logger"
	"orderflow_backend/platform/validator"
)

// Module is the exports bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	log     *logger.Logger
}

// NewModule creates and initializes the exports module. store may be nil.
func NewModule(lister BoardLister, store storage.StorageService, bucket string, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{
		handler: NewHandler(NewService(lister, store, bucket, log), val),
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "exports"
}

// RegisterRoutes mounts export routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/exports")
	group.Use(httpkit.NewExportRateLimiter(m.log).RateLimit())
	group.POST("/board", m.handler.ExportBoard)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
