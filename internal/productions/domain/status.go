// Package domain holds the production status rules. They are pure functions
// over a production snapshot and its sub-ledger so the same rules serve the
// HTTP path, the cascade and the batch recompute job.
package domain

import (
	"orderflow_backend/internal/ledger"
	"orderflow_backend/internal/stage"
)

// Record is the part of a production that drives its status.
type Record struct {
	Status             string
	CuttingDate        *string
	ActualDeliveryDate *string
}

// Item is the part of a production_progress row that drives the status.
type Item struct {
	ItemType          ledger.ItemType
	ActualStorageDate *string
	StorageTime       *string
}

// Derive computes a production's status. The first matching rule wins:
//
//  1. completed stays completed
//  2. actual delivery date set: shipped
//  3. every internal item has a storage time: stored
//  4. cutting date set: cut
//  5. every internal item has an actual storage date: materialed
//  6. otherwise unmaterialed
//
// Rules 3 and 5 need at least one internal item. The result is derived from
// scratch on each call, so a status can move backward except from completed.
func Derive(p Record, items []Item) string {
	if p.Status == stage.ProductionCompleted {
		return stage.ProductionCompleted
	}
	if !ledger.IsBlank(p.ActualDeliveryDate) {
		return stage.ProductionShipped
	}
	if allInternal(items, func(i Item) bool { return !ledger.IsBlank(i.StorageTime) }) {
		return stage.ProductionStored
	}
	if !ledger.IsBlank(p.CuttingDate) {
		return stage.ProductionCut
	}
	if allInternal(items, func(i Item) bool { return !ledger.IsBlank(i.ActualStorageDate) }) {
		return stage.ProductionMaterialed
	}
	return stage.ProductionUnmaterialed
}

func allInternal(items []Item, pred func(Item) bool) bool {
	seen := false
	for _, i := range items {
		if i.ItemType != ledger.Internal {
			continue
		}
		seen = true
		if !pred(i) {
			return false
		}
	}
	return seen
}

// Priority returns the 1-based progress rank of a production status, or 0
// for an unknown value.
func Priority(status string) int {
	for i, s := range stage.ProductionStatuses {
		if s == status {
			return i + 1
		}
	}
	return 0
}
