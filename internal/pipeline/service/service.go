// Package service is the stage pipeline: it keeps the Design, Split and
// Production records of an order consistent as the order advances. Every
// mutating operation runs in a single transaction spanning the status write,
// the downstream cascade and the sub-ledger reconciliation. Events are
// published only after the transaction commits.
package service

import (
	"context"
	"time"

	"orderflow_backend/internal/events"
	"orderflow_backend/internal/ledger"
	"orderflow_backend/platform/config"
	"orderflow_backend/platform/logger"
)

// DefaultDeliveryOffsetDays is the gap between payment and expected delivery.
const DefaultDeliveryOffsetDays = 20

// Classifier maps category names to sub-ledger item types. It never fails;
// unknown names default to internal.
type Classifier interface {
	Classify(ctx context.Context, names []string) map[string]ledger.ItemType
}

// Service implements the cross-stage operations.
type Service struct {
	runner             TxRunner
	classifier         Classifier
	bus                events.Bus
	log                *logger.Logger
	deliveryOffsetDays int
	now                func() time.Time
}

// New creates the pipeline service.
func New(runner TxRunner, classifier Classifier, bus events.Bus, cfg config.PipelineConfig, log *logger.Logger) *Service {
	offset := cfg.GetDeliveryOffsetDays()
	if offset <= 0 {
		offset = DefaultDeliveryOffsetDays
	}
	return &Service{
		runner:             runner,
		classifier:         classifier,
		bus:                bus,
		log:                log,
		deliveryOffsetDays: offset,
		now:                time.Now,
	}
}

// today returns the current date in the stored format.
func (s *Service) today() string {
	return ledger.FormatDate(s.now())
}

// outbox collects events raised inside a transaction.
type outbox []events.Event

func (o *outbox) add(e events.Event) {
	*o = append(*o, e)
}

func (s *Service) publish(ctx context.Context, pending outbox) {
	if s.bus == nil {
		return
	}
	for _, e := range pending {
		s.bus.Publish(ctx, e)
	}
}

// inTx runs fn in a write transaction and publishes its events on commit.
func (s *Service) inTx(ctx context.Context, fn func(uow UnitOfWork, out *outbox) error) error {
	var pending outbox
	err := s.runner.InTx(ctx, func(uow UnitOfWork) error {
		pending = pending[:0]
		return fn(uow, &pending)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, pending)
	return nil
}
