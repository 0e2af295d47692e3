// Package productions provides the Production-stage bounded context and the
// production status rules in its domain package.
package productions

import (
	apphttp "orderflow_backend/internal/http"
	"orderflow_backend/internal/productions/handler"
	"orderflow_backend/internal/productions/repository"
	"orderflow_backend/internal/productions/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the productions bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the productions module.
func NewModule(pool *pgxpool.Pool) *Module {
	return &Module{handler: handler.New(service.New(repository.New(pool)))}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "productions"
}

// RegisterRoutes mounts production routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/productions/:id", m.handler.GetByID)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
