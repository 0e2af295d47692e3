package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"orderflow_backend/internal/events"
	"orderflow_backend/internal/ledger"
	ordersrepo "orderflow_backend/internal/orders/repository"
	splitsrepo "orderflow_backend/internal/splits/repository"
	"orderflow_backend/internal/stage"
	"orderflow_backend/platform/config"
	"orderflow_backend/platform/logger"
)

var testNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

type recordingBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.published))
	for _, e := range b.published {
		names = append(names, e.EventName())
	}
	return names
}

type fixture struct {
	ctx    context.Context
	runner *memRunner
	bus    *recordingBus
	svc    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	runner := newMemRunner()
	bus := &recordingBus{}
	classifier := staticClassifier{"Glass": ledger.External, "Stone": ledger.External}
	svc := New(runner, classifier, bus, &config.Config{DeliveryOffsetDays: 20}, logger.Nop())
	svc.now = func() time.Time { return testNow }
	return &fixture{ctx: context.Background(), runner: runner, bus: bus, svc: svc}
}

// seedReadyOrder stores an order whose place order and payment steps are done.
func (f *fixture) seedReadyOrder(number, categories string) ordersrepo.Order {
	o := f.runner.seedOrder(ordersrepo.Order{
		OrderNumber:    number,
		CustomerName:   "Li Wei",
		Address:        "18 Riverside Road",
		AssignmentDate: "2024-02-01",
		CategoryName:   categories,
		OrderType:      "whole house",
		Status:         stage.DesignPayment,
	})
	f.runner.seedProgress(o.ID, "place order", strPtr("2024-03-05"))
	f.runner.seedProgress(o.ID, "payment", strPtr("2024-03-01"))
	return o
}

// placeOrder moves an order to placed and returns the cascaded Split.
func (f *fixture) placeOrder(t *testing.T, o ordersrepo.Order) splitsrepo.Split {
	t.Helper()
	_, err := f.svc.ApplyStatusTransition(f.ctx, stage.Design, o.ID, stage.StatusPlaced)
	require.NoError(t, err)
	split, ok := f.runner.snapshot().splitByNumber(o.OrderNumber)
	require.True(t, ok)
	return split
}

// datesSplitItems sets split_date on internal and purchase_date on external items.
func (f *fixture) datesSplitItems(splitID int64, internal, external string) {
	f.runner.mu.Lock()
	defer f.runner.mu.Unlock()
	items := f.runner.state.splitItems[splitID]
	for i := range items {
		if items[i].ItemType == ledger.External {
			items[i].PurchaseDate = strPtr(external)
		} else {
			items[i].SplitDate = strPtr(internal)
		}
	}
}

func ordersOrder(number, categories string) ordersrepo.Order {
	return ordersrepo.Order{
		OrderNumber:    number,
		CustomerName:   "Zhang Min",
		Address:        "7 Lake Street",
		AssignmentDate: "2024-02-15",
		CategoryName:   categories,
		OrderType:      "kitchen",
		Status:         stage.DesignMeasuring,
	}
}
