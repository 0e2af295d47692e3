// Package splits provides the Split-stage bounded context: split field edits
// and the per-category split_progress sub-ledger.
package splits

import (
	apphttp "orderflow_backend/internal/http"
	"orderflow_backend/internal/splits/handler"
	"orderflow_backend/internal/splits/repository"
	"orderflow_backend/internal/splits/service"
	"orderflow_backend/platform/config"
	"orderflow_backend/platform/logger"
	"orderflow_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the splits bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the splits module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.PipelineConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), cfg.GetPhoneDefaultRegion(), log)
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "splits"
}

// RegisterRoutes mounts split routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	splits := ctx.Protected.Group("/splits")
	splits.GET("/:id", m.handler.GetByID)
	splits.PUT("/:id", m.handler.Update)
	splits.PUT("/:id/items/:itemId", m.handler.UpdateItem)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
