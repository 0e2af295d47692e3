// Package categories provides the category registry bounded context.
// The registry classifies category names as internally produced or externally
// purchased for every sub-ledger reconciliation.
package categories

import (
	"context"

	"orderflow_backend/internal/categories/handler"
	"orderflow_backend/internal/categories/repository"
	"orderflow_backend/internal/categories/service"
	apphttp "orderflow_backend/internal/http"
	"orderflow_backend/platform/logger"
	"orderflow_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the categories bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the categories module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "categories"
}

// Service returns the service layer; it doubles as the reconciliation classifier.
func (m *Module) Service() *service.Service {
	return m.service
}

// Seed loads the optional YAML seed file.
func (m *Module) Seed(ctx context.Context, path string) (int, error) {
	return m.service.SeedFromFile(ctx, path)
}

// RegisterRoutes mounts category routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/categories", m.handler.List)
	ctx.Protected.GET("/categories/:id", m.handler.GetByID)

	adminGroup := ctx.Admin.Group("/categories")
	adminGroup.POST("", m.handler.Create)
	adminGroup.PUT("/:id", m.handler.Update)
	adminGroup.DELETE("/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
