// Package pipeline provides the cross-stage bounded context: status
// transitions with their downstream cascade, category reconciliation,
// production status validation and the unified order board.
package pipeline

import (
	"orderflow_backend/internal/events"
	apphttp "orderflow_backend/internal/http"
	"orderflow_backend/internal/pipeline/handler"
	"orderflow_backend/internal/pipeline/service"
	"orderflow_backend/internal/stage"
	"orderflow_backend/platform/config"
	"orderflow_backend/platform/logger"
	"orderflow_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the pipeline bounded context module implementing http.Module.
type Module struct {
	handler     *handler.Handler
	service     *service.Service
	subscribers *Subscribers
}

// NewModule creates and initializes the pipeline module. enqueuer may be nil
// when Redis is not configured; cascades then rely on the periodic recompute.
func NewModule(
	pool *pgxpool.Pool,
	classifier service.Classifier,
	bus events.Bus,
	cfg config.PipelineConfig,
	val *validator.Validator,
	log *logger.Logger,
	enqueuer RecomputeEnqueuer,
) *Module {
	svc := service.New(service.NewPgRunner(pool), classifier, bus, cfg, log)
	return &Module{
		handler:     handler.New(svc, val),
		service:     svc,
		subscribers: NewSubscribers(log, enqueuer),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "pipeline"
}

// Service returns the pipeline service.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterHandlers subscribes the module's event handlers to bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	m.subscribers.RegisterHandlers(bus)
}

// RegisterRoutes mounts pipeline routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	orders := ctx.Protected.Group("/orders")
	orders.PUT("/:id/status", m.handler.Transition(stage.Design))
	orders.PUT("/:id/categories", m.handler.Reconcile(stage.Design))

	splits := ctx.Protected.Group("/splits")
	splits.PUT("/:id/status", m.handler.Transition(stage.Split))
	splits.PUT("/:id/categories", m.handler.Reconcile(stage.Split))
	splits.POST("/:id/place-order", m.handler.PlaceSplitOrder)
	splits.PUT("/:id/quote", m.handler.UpdateSplitQuote)

	productions := ctx.Protected.Group("/productions")
	productions.PUT("/:id", m.handler.UpdateProduction)
	productions.PUT("/:id/status", m.handler.Transition(stage.Production))
	productions.PUT("/:id/categories", m.handler.Reconcile(stage.Production))
	productions.POST("/:id/recompute", m.handler.RecomputeProduction)
	productions.PUT("/:id/items/:itemId", m.handler.UpdateProductionItem)

	board := ctx.Protected.Group("/board")
	board.GET("", m.handler.Board)
	board.GET("/:orderNumber/status", m.handler.CompositeStatus)
	board.GET("/:orderNumber/overview", m.handler.Overview)

	ctx.Admin.POST("/productions/recompute", m.handler.BatchRecompute)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
