// Package orders provides the Design-stage bounded context: order intake,
// order field edits and design progress events.
package orders

import (
	apphttp "orderflow_backend/internal/http"
	"orderflow_backend/internal/orders/handler"
	"orderflow_backend/internal/orders/repository"
	"orderflow_backend/internal/orders/service"
	"orderflow_backend/platform/config"
	"orderflow_backend/platform/logger"
	"orderflow_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the orders bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the orders module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.PipelineConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), cfg.GetPhoneDefaultRegion(), log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "orders"
}

// Service returns the order service.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts order routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	orders := ctx.Protected.Group("/orders")
	orders.POST("", m.handler.Create)
	orders.GET("/:id", m.handler.GetByID)
	orders.PUT("/:id", m.handler.Update)
	orders.GET("/:id/progress", m.handler.ListProgressEvents)
	orders.POST("/:id/progress", m.handler.CreateProgressEvent)
	orders.PUT("/:id/progress/:eventId", m.handler.UpdateProgressEvent)
	orders.DELETE("/:id/progress/:eventId", m.handler.DeleteProgressEvent)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
