package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow_backend/internal/events"
	"orderflow_backend/internal/ledger"
	"orderflow_backend/internal/stage"
	"orderflow_backend/platform/apperr"
)

func splitItemTypes(st *memState, splitID int64) map[string]ledger.ItemType {
	out := map[string]ledger.ItemType{}
	for _, i := range st.splitItems[splitID] {
		out[i.CategoryName] = i.ItemType
	}
	return out
}

func TestReconcileSplitWritesBackToOrder(t *testing.T) {
	f := newFixture(t)
	o := f.seedReadyOrder("ORD-010", "Cabinet,Glass")
	split := f.placeOrder(t, o)

	res, err := f.svc.ReconcileCategories(f.ctx, stage.Split, split.ID, "Cabinet，Door", ledger.ScopeAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"Door"}, res.Added)
	assert.Equal(t, []string{"Glass"}, res.Removed)
	assert.Equal(t, []string{"Cabinet"}, res.Kept)
	assert.Equal(t, "Cabinet,Door", res.CategoryName)

	st := f.runner.snapshot()
	assert.Equal(t, map[string]ledger.ItemType{"Cabinet": ledger.Internal, "Door": ledger.Internal}, splitItemTypes(st, split.ID))
	assert.Equal(t, "Cabinet,Door", st.splits[split.ID].CategoryName)
	assert.Equal(t, "Cabinet,Door", st.orders[o.ID].CategoryName)
	assert.Contains(t, f.bus.names(), events.CategoriesReconciled{}.EventName())
}

func TestReconcileLeavesKeptRowsUntouched(t *testing.T) {
	f := newFixture(t)
	o := f.seedReadyOrder("ORD-011", "Cabinet,Glass")
	split := f.placeOrder(t, o)
	f.datesSplitItems(split.ID, "2024-03-06", "2024-03-07")
	before := f.runner.snapshot().splitItems[split.ID]

	res, err := f.svc.ReconcileCategories(f.ctx, stage.Split, split.ID, "Glass,Cabinet", ledger.ScopeAll)
	require.NoError(t, err)
	assert.False(t, res.Changed())
	assert.Equal(t, before, f.runner.snapshot().splitItems[split.ID])
}

func TestReconcileTypedScopeReclassifies(t *testing.T) {
	f := newFixture(t)
	o := f.seedReadyOrder("ORD-012", "Cabinet,Glass,Stone")
	split := f.placeOrder(t, o)

	res, err := f.svc.ReconcileCategories(f.ctx, stage.Split, split.ID, "Glass", ledger.ScopeInternal)
	require.NoError(t, err)
	assert.Equal(t, []string{"Glass"}, res.Added)
	assert.ElementsMatch(t, []string{"Cabinet", "Glass"}, res.Removed)
	assert.Equal(t, "Stone,Glass", res.CategoryName)

	st := f.runner.snapshot()
	assert.Equal(t, map[string]ledger.ItemType{"Glass": ledger.Internal, "Stone": ledger.External}, splitItemTypes(st, split.ID))
}

func TestReconcileOrderSeedsOnlyEmptySplit(t *testing.T) {
	f := newFixture(t)
	o := f.seedReadyOrder("ORD-013", "")
	split := f.placeOrder(t, o)
	require.Empty(t, f.runner.snapshot().splitItems[split.ID])

	res, err := f.svc.ReconcileCategories(f.ctx, stage.Design, o.ID, "Cabinet,Glass", ledger.ScopeAll)
	require.NoError(t, err)
	require.NotNil(t, res.Propagated)
	assert.Equal(t, []string{"Cabinet", "Glass"}, res.Propagated.Added)

	st := f.runner.snapshot()
	assert.Len(t, st.splitItems[split.ID], 2)
	assert.Equal(t, "Cabinet,Glass", st.splits[split.ID].CategoryName)

	res, err = f.svc.ReconcileCategories(f.ctx, stage.Design, o.ID, "Cabinet", ledger.ScopeAll)
	require.NoError(t, err)
	assert.Nil(t, res.Propagated)

	st = f.runner.snapshot()
	assert.Equal(t, "Cabinet", st.orders[o.ID].CategoryName)
	assert.Len(t, st.splitItems[split.ID], 2, "an edited split keeps its own list")
}

func TestReconcileUnknownRecord(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ReconcileCategories(f.ctx, stage.Split, 42, "Cabinet", ledger.ScopeAll)
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.svc.ReconcileCategories(f.ctx, stage.Stage("warehouse"), 1, "Cabinet", ledger.ScopeAll)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestPlanReconcile(t *testing.T) {
	existing := []ledger.Entry{
		{Category: "Cabinet", Type: ledger.Internal},
		{Category: "Glass", Type: ledger.External},
	}

	all := planReconcile(existing, []string{"Cabinet", "Door", "Door"}, ledger.ScopeAll)
	assert.Equal(t, []string{"Door"}, all.ToAdd)
	assert.Equal(t, []string{"Glass"}, all.ToRemove)
	assert.Equal(t, []string{"Cabinet"}, all.Kept)

	external := planReconcile(existing, []string{"Glass"}, ledger.ScopeExternal)
	assert.True(t, external.Empty(), "internal rows are out of scope")

	assert.Equal(t, []string{"Cabinet", "Door"}, survivors(existing, all))
}
