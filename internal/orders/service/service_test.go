package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow_backend/internal/orders/repository"
	"orderflow_backend/internal/orders/transport"
	"orderflow_backend/internal/stage"
	"orderflow_backend/platform/apperr"
	"orderflow_backend/platform/logger"
)

type fakeRepo struct {
	orders map[int64]repository.Order
	events map[int64][]repository.ProgressEvent
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: map[int64]repository.Order{}, events: map[int64][]repository.ProgressEvent{}}
}

func (r *fakeRepo) Create(ctx context.Context, p repository.CreateParams) (repository.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == p.OrderNumber {
			return repository.Order{}, apperr.Conflict("order number already exists")
		}
	}
	r.nextID++
	o := repository.Order{
		ID: r.nextID, OrderNumber: p.OrderNumber, CustomerName: p.CustomerName, ContactPhone: p.ContactPhone,
		AssignmentDate: p.AssignmentDate, CategoryName: p.CategoryName, Status: p.Status,
	}
	r.orders[o.ID] = o
	return o, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (repository.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return repository.Order{}, apperr.NotFound("order not found")
	}
	return o, nil
}

func (r *fakeRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (repository.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return repository.Order{}, apperr.NotFound("order not found")
}

func (r *fakeRepo) Update(ctx context.Context, id int64, p repository.UpdateParams) (repository.Order, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return o, err
	}
	if p.CustomerName != nil {
		o.CustomerName = *p.CustomerName
	}
	if p.ContactPhone != nil {
		o.ContactPhone = p.ContactPhone
	}
	r.orders[id] = o
	return o, nil
}

func (r *fakeRepo) ListProgressEvents(ctx context.Context, orderID int64) ([]repository.ProgressEvent, error) {
	return append([]repository.ProgressEvent{}, r.events[orderID]...), nil
}

func (r *fakeRepo) CreateProgressEvent(ctx context.Context, orderID int64, p repository.ProgressEventParams) (repository.ProgressEvent, error) {
	r.nextID++
	e := repository.ProgressEvent{ID: r.nextID, OrderID: orderID, TaskItem: *p.TaskItem, ActualDate: p.ActualDate}
	r.events[orderID] = append(r.events[orderID], e)
	return e, nil
}

func (r *fakeRepo) UpdateProgressEvent(ctx context.Context, orderID, eventID int64, p repository.ProgressEventParams) (repository.ProgressEvent, error) {
	for i, e := range r.events[orderID] {
		if e.ID == eventID {
			if p.ActualDate != nil {
				e.ActualDate = p.ActualDate
			}
			r.events[orderID][i] = e
			return e, nil
		}
	}
	return repository.ProgressEvent{}, apperr.NotFound("progress event not found")
}

func (r *fakeRepo) DeleteProgressEvent(ctx context.Context, orderID, eventID int64) error {
	events := r.events[orderID]
	for i, e := range events {
		if e.ID == eventID {
			r.events[orderID] = append(events[:i], events[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("progress event not found")
}

func strPtr(s string) *string { return &s }

func TestCreateDefaultsAndNormalizes(t *testing.T) {
	svc := New(newFakeRepo(), "CN", logger.Nop())

	got, err := svc.Create(context.Background(), transport.CreateOrderRequest{
		OrderNumber:    " ORD-001 ",
		CustomerName:   "Li Wei",
		ContactPhone:   strPtr("138 0013 8000"),
		AssignmentDate: "2024-03-01",
		CategoryName:   "Cabinet， Door,,Cabinet ",
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-001", got.OrderNumber)
	assert.Equal(t, stage.DesignMeasuring, got.Status)
	assert.Equal(t, "Cabinet,Door,Cabinet", got.CategoryName)
	require.NotNil(t, got.ContactPhone)
	assert.Equal(t, "+8613800138000", *got.ContactPhone)
}

func TestCreateRejectsPlaced(t *testing.T) {
	svc := New(newFakeRepo(), "", logger.Nop())
	_, err := svc.Create(context.Background(), transport.CreateOrderRequest{
		OrderNumber: "ORD-002", CustomerName: "Zhang", AssignmentDate: "2024-03-01", Status: stage.StatusPlaced,
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCreateDuplicateOrderNumber(t *testing.T) {
	svc := New(newFakeRepo(), "", logger.Nop())
	req := transport.CreateOrderRequest{OrderNumber: "ORD-003", CustomerName: "Wang", AssignmentDate: "2024-03-01"}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), req)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestProgressEvents(t *testing.T) {
	ctx := context.Background()
	svc := New(newFakeRepo(), "", logger.Nop())
	order, err := svc.Create(ctx, transport.CreateOrderRequest{OrderNumber: "ORD-004", CustomerName: "Chen", AssignmentDate: "2024-03-01"})
	require.NoError(t, err)

	_, err = svc.CreateProgressEvent(ctx, order.ID, transport.ProgressEventRequest{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.CreateProgressEvent(ctx, 999, transport.ProgressEventRequest{TaskItem: strPtr("place order")})
	assert.True(t, apperr.IsNotFound(err))

	event, err := svc.CreateProgressEvent(ctx, order.ID, transport.ProgressEventRequest{TaskItem: strPtr("place order")})
	require.NoError(t, err)

	updated, err := svc.UpdateProgressEvent(ctx, order.ID, event.ID, transport.ProgressEventRequest{ActualDate: strPtr("2024-03-10")})
	require.NoError(t, err)
	require.NotNil(t, updated.ActualDate)
	assert.Equal(t, "2024-03-10", *updated.ActualDate)

	detail, err := svc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, detail.ProgressEvents, 1)

	require.NoError(t, svc.DeleteProgressEvent(ctx, order.ID, event.ID))
	assert.True(t, apperr.IsNotFound(svc.DeleteProgressEvent(ctx, order.ID, event.ID)))
}
