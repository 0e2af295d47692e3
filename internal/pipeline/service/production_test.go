package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow_backend/internal/events"
	"orderflow_backend/internal/ledger"
	productionsrepo "orderflow_backend/internal/productions/repository"
	"orderflow_backend/internal/stage"
)

// seedProduction runs an order through both cascades.
func (f *fixture) seedProduction(t *testing.T, number, categories string) productionsrepo.Production {
	t.Helper()
	o := f.seedReadyOrder(number, categories)
	split := f.placeOrder(t, o)
	_, err := f.svc.PlaceSplitOrder(f.ctx, split.ID)
	require.NoError(t, err)
	prod, ok := f.runner.snapshot().productionByNumber(number)
	require.True(t, ok)
	return prod
}

func itemID(t *testing.T, f *fixture, prodID int64, category string) int64 {
	t.Helper()
	for _, i := range f.runner.snapshot().prodItems[prodID] {
		if i.CategoryName == category {
			return i.ID
		}
	}
	t.Fatalf("no item %q", category)
	return 0
}

func TestItemEditRecomputesStatus(t *testing.T) {
	f := newFixture(t)
	prod := f.seedProduction(t, "ORD-020", "Cabinet")

	_, err := f.svc.UpdateProductionItem(f.ctx, prod.ID, itemID(t, f, prod.ID, "Cabinet"), productionsrepo.ItemParams{ActualStorageDate: strPtr("2024-03-12")})
	require.NoError(t, err)
	assert.Equal(t, stage.ProductionUnmaterialed, f.runner.snapshot().prods[prod.ID].Status, "hardware is still missing")

	_, err = f.svc.UpdateProductionItem(f.ctx, prod.ID, itemID(t, f, prod.ID, HardwareCategory), productionsrepo.ItemParams{ActualStorageDate: strPtr("2024-03-12")})
	require.NoError(t, err)
	assert.Equal(t, stage.ProductionMaterialed, f.runner.snapshot().prods[prod.ID].Status)
	assert.Contains(t, f.bus.names(), events.ProductionStatusChanged{}.EventName())
}

func TestReconcileProductionRecomputesStatus(t *testing.T) {
	f := newFixture(t)
	prod := f.seedProduction(t, "ORD-021", "Cabinet")

	_, err := f.svc.UpdateProductionItem(f.ctx, prod.ID, itemID(t, f, prod.ID, "Cabinet"), productionsrepo.ItemParams{ActualStorageDate: strPtr("2024-03-12")})
	require.NoError(t, err)

	res, err := f.svc.ReconcileCategories(f.ctx, stage.Production, prod.ID, "Cabinet,Glass", ledger.ScopeAll)
	require.NoError(t, err)
	assert.Equal(t, []string{HardwareCategory}, res.Removed)
	assert.Equal(t, []string{"Glass"}, res.Added)

	st := f.runner.snapshot()
	assert.Equal(t, stage.ProductionMaterialed, st.prods[prod.ID].Status)
	assert.Len(t, st.prodItems[prod.ID], 2)
}

func TestUpdateProductionMovesStatusBothWays(t *testing.T) {
	f := newFixture(t)
	prod := f.seedProduction(t, "ORD-022", "Cabinet")

	updated, err := f.svc.UpdateProduction(f.ctx, prod.ID, productionsrepo.UpdateParams{ActualDeliveryDate: strPtr("2024-04-02")})
	require.NoError(t, err)
	assert.Equal(t, stage.ProductionShipped, updated.Status)

	updated, err = f.svc.UpdateProduction(f.ctx, prod.ID, productionsrepo.UpdateParams{ActualDeliveryDate: strPtr(""), CuttingDate: strPtr("2024-03-15")})
	require.NoError(t, err)
	assert.Equal(t, stage.ProductionCut, updated.Status)
}

func TestCompletedIsTerminal(t *testing.T) {
	f := newFixture(t)
	prod := f.seedProduction(t, "ORD-023", "Cabinet")

	res, err := f.svc.ApplyStatusTransition(f.ctx, stage.Production, prod.ID, stage.ProductionCompleted)
	require.NoError(t, err)
	assert.Equal(t, stage.ProductionUnmaterialed, res.OldStatus)

	status, err := f.svc.RecomputeProductionStatus(f.ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, stage.ProductionCompleted, status)

	all, err := f.svc.RecomputeAllProductions(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBatchValidateMarksFailures(t *testing.T) {
	f := newFixture(t)
	prod := f.seedProduction(t, "ORD-024", "Cabinet")

	got := f.svc.BatchValidate(f.ctx, []int64{prod.ID, 9999})
	assert.Equal(t, map[int64]string{prod.ID: stage.ProductionUnmaterialed, 9999: BatchFailed}, got)
}

func TestCountProduction(t *testing.T) {
	items := []productionsrepo.Item{
		{CategoryName: "Cabinet", ItemType: ledger.Internal, ActualStorageDate: strPtr("2024-03-01"), StorageTime: strPtr("2024-03-04")},
		{CategoryName: "Door", ItemType: ledger.Internal, ActualStorageDate: strPtr("2024-03-02")},
		{CategoryName: "Glass", ItemType: ledger.External, ActualArrivalDate: strPtr("2024-03-03")},
		{CategoryName: "Stone", ItemType: ledger.External},
	}

	c := CountProduction(items)
	assert.Equal(t, 2, c.InternalItems)
	assert.Equal(t, 1, c.Stored)
	assert.Equal(t, 2, c.Materialed)
	assert.Equal(t, 2, c.ExternalItems)
	assert.Equal(t, 1, c.ExternalArrived)
	assert.Equal(t, PurchasePartial, c.PurchaseStatus)
	assert.Equal(t, "Cabinet:2024-03-01; Door:2024-03-02; Glass:2024-03-03; Stone:", c.PurchaseDetail)

	empty := CountProduction(nil)
	assert.Equal(t, PurchaseNoProgress, empty.PurchaseDetail)
	assert.Empty(t, empty.PurchaseStatus)
}

func TestGetOverview(t *testing.T) {
	f := newFixture(t)
	f.seedProduction(t, "ORD-025", "Cabinet,Glass")

	ov, err := f.svc.GetOverview(f.ctx, "ORD-025")
	require.NoError(t, err)
	require.NotNil(t, ov.Order)
	require.NotNil(t, ov.Split)
	require.NotNil(t, ov.Production)
	assert.Len(t, ov.ProgressEvents, 2)
	assert.Len(t, ov.SplitItems, 2)
	assert.Len(t, ov.ProductionItems, 3)
	assert.Equal(t, "production-unmaterialed", ov.CompositeStatus)
	require.NotNil(t, ov.Counters)
	assert.Equal(t, PurchaseNotStarted, ov.Counters.PurchaseStatus)

	_, err = f.svc.GetOverview(f.ctx, "ORD-404")
	assert.Error(t, err)
}
