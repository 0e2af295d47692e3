package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow_backend/internal/ledger"
	"orderflow_backend/internal/splits/repository"
	"orderflow_backend/internal/splits/transport"
	"orderflow_backend/platform/apperr"
	"orderflow_backend/platform/logger"
)

type fakeRepo struct {
	split repository.Split
	items map[int64]repository.Item
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (repository.Split, error) {
	if id != r.split.ID {
		return repository.Split{}, apperr.NotFound("split not found")
	}
	return r.split, nil
}

func (r *fakeRepo) Update(ctx context.Context, id int64, p repository.UpdateParams) (repository.Split, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return repository.Split{}, err
	}
	if p.Splitter != nil {
		r.split.Splitter = p.Splitter
	}
	if p.ContactPhone != nil {
		r.split.ContactPhone = p.ContactPhone
	}
	return r.split, nil
}

func (r *fakeRepo) ListItems(ctx context.Context, splitID int64) ([]repository.Item, error) {
	out := make([]repository.Item, 0, len(r.items))
	for _, i := range r.items {
		out = append(out, i)
	}
	return out, nil
}

func (r *fakeRepo) GetItem(ctx context.Context, splitID, itemID int64) (repository.Item, error) {
	i, ok := r.items[itemID]
	if !ok || i.SplitID != splitID {
		return repository.Item{}, apperr.NotFound("split item not found")
	}
	return i, nil
}

func (r *fakeRepo) UpdateItem(ctx context.Context, splitID, itemID int64, p repository.ItemParams) (repository.Item, error) {
	i, err := r.GetItem(ctx, splitID, itemID)
	if err != nil {
		return i, err
	}
	if p.SplitDate != nil {
		i.SplitDate = p.SplitDate
	}
	if p.PurchaseDate != nil {
		i.PurchaseDate = p.PurchaseDate
	}
	if p.CycleDays != nil {
		i.CycleDays = p.CycleDays
	}
	r.items[itemID] = i
	return i, nil
}

func strPtr(s string) *string { return &s }

func newFixture() *fakeRepo {
	return &fakeRepo{
		split: repository.Split{ID: 7, OrderNumber: "ORD-001", OrderDate: strPtr("2024-03-10")},
		items: map[int64]repository.Item{
			1: {ID: 1, SplitID: 7, ItemType: ledger.Internal, CategoryName: "Cabinet"},
			2: {ID: 2, SplitID: 7, ItemType: ledger.External, CategoryName: "Stone"},
		},
	}
}

func TestUpdateItemRefreshesCycleDays(t *testing.T) {
	repo := newFixture()
	svc := New(repo, "", logger.Nop())
	ctx := context.Background()

	internal, err := svc.UpdateItem(ctx, 7, 1, transport.UpdateSplitItemRequest{SplitDate: strPtr("2024-03-15")})
	require.NoError(t, err)
	require.NotNil(t, internal.CycleDays)
	assert.Equal(t, "5 days", *internal.CycleDays)

	external, err := svc.UpdateItem(ctx, 7, 2, transport.UpdateSplitItemRequest{PurchaseDate: strPtr("2024-03-30")})
	require.NoError(t, err)
	assert.Equal(t, "20 days", *external.CycleDays)
}

func TestUpdateItemNotFound(t *testing.T) {
	svc := New(newFixture(), "", logger.Nop())

	_, err := svc.UpdateItem(context.Background(), 7, 99, transport.UpdateSplitItemRequest{})
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.UpdateItem(context.Background(), 8, 1, transport.UpdateSplitItemRequest{})
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateNormalizesPhone(t *testing.T) {
	svc := New(newFixture(), "CN", logger.Nop())

	got, err := svc.Update(context.Background(), 7, transport.UpdateSplitRequest{
		Splitter:     strPtr(" Zhao "),
		ContactPhone: strPtr("13800138000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Zhao", *got.Splitter)
	assert.Equal(t, "+8613800138000", *got.ContactPhone)
}
