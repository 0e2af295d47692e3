package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"orderflow_backend/internal/ledger"
	"orderflow_backend/internal/stage"
)

func strPtr(s string) *string { return &s }

func TestDerive(t *testing.T) {
	stored := Item{ItemType: ledger.Internal, ActualStorageDate: strPtr("2024-04-01"), StorageTime: strPtr("2024-04-02")}
	materialed := Item{ItemType: ledger.Internal, ActualStorageDate: strPtr("2024-04-01")}
	pending := Item{ItemType: ledger.Internal}
	external := Item{ItemType: ledger.External}

	tests := []struct {
		name   string
		record Record
		items  []Item
		want   string
	}{
		{"completed is terminal", Record{Status: stage.ProductionCompleted}, nil, stage.ProductionCompleted},
		{"completed ignores regressions", Record{Status: stage.ProductionCompleted}, []Item{pending}, stage.ProductionCompleted},
		{"delivery date ships", Record{ActualDeliveryDate: strPtr("2024-05-01")}, []Item{pending}, stage.ProductionShipped},
		{"all internal stored", Record{}, []Item{stored, stored, external}, stage.ProductionStored},
		{"stored outranks cut", Record{CuttingDate: strPtr("2024-04-10")}, []Item{stored}, stage.ProductionStored},
		{"cutting date", Record{CuttingDate: strPtr("2024-04-10")}, []Item{stored, pending}, stage.ProductionCut},
		{"all internal materialed", Record{}, []Item{materialed, stored}, stage.ProductionMaterialed},
		{"partially materialed", Record{}, []Item{materialed, pending}, stage.ProductionUnmaterialed},
		{"external only never stored", Record{}, []Item{external}, stage.ProductionUnmaterialed},
		{"no items", Record{}, nil, stage.ProductionUnmaterialed},
		{"blank dates are unset", Record{CuttingDate: strPtr("  ")}, []Item{{ItemType: ledger.Internal, StorageTime: strPtr("")}}, stage.ProductionUnmaterialed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Derive(tc.record, tc.items))
		})
	}
}

func TestDeriveMovesBackward(t *testing.T) {
	items := []Item{{ItemType: ledger.Internal, ActualStorageDate: strPtr("2024-04-01"), StorageTime: strPtr("2024-04-02")}}
	assert.Equal(t, stage.ProductionStored, Derive(Record{Status: stage.ProductionUnmaterialed}, items))

	items[0].StorageTime = nil
	assert.Equal(t, stage.ProductionMaterialed, Derive(Record{Status: stage.ProductionStored}, items))
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 1, Priority(stage.ProductionUnmaterialed))
	assert.Equal(t, 3, Priority(stage.ProductionCut))
	assert.Equal(t, 6, Priority(stage.ProductionCompleted))
	assert.Equal(t, 0, Priority("placed"))
}
