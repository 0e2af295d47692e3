package pipeline

import (
	"context"
	"fmt"

	"orderflow_backend/internal/events"
	"orderflow_backend/internal/stage"
	"orderflow_backend/platform/logger"
	"orderflow_backend/platform/metrics"
)

// RecomputeEnqueuer schedules an out-of-band production status recompute.
type RecomputeEnqueuer interface {
	EnqueueProductionRecompute(ctx context.Context, productionID int64) error
}

// Subscribers turns pipeline events into metrics, logs and follow-up jobs.
type Subscribers struct {
	log      *logger.Logger
	enqueuer RecomputeEnqueuer
}

// NewSubscribers creates the pipeline event subscribers. enqueuer may be nil.
func NewSubscribers(log *logger.Logger, enqueuer RecomputeEnqueuer) *Subscribers {
	return &Subscribers{log: log, enqueuer: enqueuer}
}

// RegisterHandlers subscribes to the pipeline events on bus.
func (s *Subscribers) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.StageCascaded{}.EventName(), events.HandlerFunc(s.handleStageCascaded))
	bus.Subscribe(events.CategoriesReconciled{}.EventName(), events.HandlerFunc(s.handleCategoriesReconciled))
	bus.Subscribe(events.ProductionStatusChanged{}.EventName(), events.HandlerFunc(s.handleProductionStatusChanged))
	bus.Subscribe(events.SplitRevoking{}.EventName(), events.HandlerFunc(s.handleSplitRevoking))
}

func (s *Subscribers) handleStageCascaded(ctx context.Context, event events.Event) error {
	e, ok := event.(events.StageCascaded)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	if !e.Created {
		metrics.CascadeTotal.WithLabelValues(e.ToStage, "skipped").Inc()
		s.log.WithContext(ctx).CascadeSkipped(e.ToStage, e.OrderNumber)
		return nil
	}

	metrics.CascadeTotal.WithLabelValues(e.ToStage, "created").Inc()
	s.log.WithContext(ctx).Info("stage cascaded",
		"from", e.FromStage,
		"to", e.ToStage,
		"orderNumber", e.OrderNumber,
		"recordId", e.RecordID,
	)

	if e.ToStage != string(stage.Production) || s.enqueuer == nil {
		return nil
	}
	if err := s.enqueuer.EnqueueProductionRecompute(ctx, e.RecordID); err != nil {
		return fmt.Errorf("enqueue production recompute %d: %w", e.RecordID, err)
	}
	return nil
}

func (s *Subscribers) handleCategoriesReconciled(_ context.Context, event events.Event) error {
	e, ok := event.(events.CategoriesReconciled)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if n := len(e.Added); n > 0 {
		metrics.ReconcileItemsTotal.WithLabelValues(e.Stage, "added").Add(float64(n))
	}
	if n := len(e.Removed); n > 0 {
		metrics.ReconcileItemsTotal.WithLabelValues(e.Stage, "removed").Add(float64(n))
	}
	return nil
}

func (s *Subscribers) handleProductionStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.ProductionStatusChanged)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	metrics.ProductionStatusChanges.WithLabelValues(e.To).Inc()
	s.log.WithContext(ctx).Info("production status changed",
		"productionId", e.ProductionID,
		"orderNumber", e.OrderNumber,
		"from", e.From,
		"to", e.To,
	)
	return nil
}

func (s *Subscribers) handleSplitRevoking(ctx context.Context, event events.Event) error {
	e, ok := event.(events.SplitRevoking)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	s.log.WithContext(ctx).Warn("split revoking", "splitId", e.SplitID, "orderNumber", e.OrderNumber)
	return nil
}
