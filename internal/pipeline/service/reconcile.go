package service

import (
	"context"

	"orderflow_backend/internal/events"
	"orderflow_backend/internal/ledger"
	productionsrepo "orderflow_backend/internal/productions/repository"
	splitsrepo "orderflow_backend/internal/splits/repository"
	"orderflow_backend/internal/stage"
	"orderflow_backend/platform/apperr"
)

// ReconcileResult reports what a category reconciliation changed.
type ReconcileResult struct {
	Stage        stage.Stage
	RecordID     int64
	OrderNumber  string
	Added        []string
	Removed      []string
	Kept         []string
	CategoryName string
	// Propagated is the seed of an empty Split triggered from the Order side.
	Propagated *ReconcileResult
}

// Changed reports whether any row was added or removed.
func (r ReconcileResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// ReconcileCategories makes the sub-ledger of a stage record match raw, a
// delimited category list. scope limits the work to one item type; under a
// type scope, desired categories held with the other type are reclassified.
//
// Split-side changes are written back to the Order's category list. An
// Order-side change seeds the Split only while the Split's sub-ledger is
// still empty.
func (s *Service) ReconcileCategories(ctx context.Context, st stage.Stage, recordID int64, raw string, scope ledger.Scope) (ReconcileResult, error) {
	if !st.Valid() {
		return ReconcileResult{}, apperr.Validation("unknown stage")
	}
	desired := ledger.ParseCategoryList(raw)

	var result ReconcileResult
	err := s.inTx(ctx, func(uow UnitOfWork, out *outbox) error {
		var err error
		switch st {
		case stage.Design:
			result, err = s.reconcileOrder(ctx, uow, recordID, desired)
		case stage.Split:
			var split splitsrepo.Split
			if split, err = uow.Splits.GetByID(ctx, recordID); err != nil {
				return err
			}
			result, err = s.reconcileSplit(ctx, uow, split, scope, desired, true)
		case stage.Production:
			var prod productionsrepo.Production
			if prod, err = uow.Productions.GetByID(ctx, recordID); err != nil {
				return err
			}
			result, err = s.reconcileLedger(ctx, uow.Productions, stage.Production, prod.ID, prod.OrderNumber, scope, desired)
			if err == nil && result.Changed() {
				_, err = s.recompute(ctx, uow, prod, out)
			}
		}
		if err != nil {
			return err
		}

		for r := &result; r != nil; r = r.Propagated {
			if r.Changed() {
				out.add(events.CategoriesReconciled{
					BaseEvent:   events.NewBaseEvent(),
					Stage:       string(r.Stage),
					RecordID:    r.RecordID,
					OrderNumber: r.OrderNumber,
					Added:       r.Added,
					Removed:     r.Removed,
				})
			}
		}
		return nil
	})
	if err != nil {
		return ReconcileResult{}, err
	}
	return result, nil
}

// reconcileOrder stores the Order's authoritative list and seeds an empty Split.
func (s *Service) reconcileOrder(ctx context.Context, uow UnitOfWork, orderID int64, desired []string) (ReconcileResult, error) {
	order, err := uow.Orders.GetByID(ctx, orderID)
	if err != nil {
		return ReconcileResult{}, err
	}

	joined := ledger.JoinCategoryList(desired)
	delta := ledger.Diff(ledger.ParseCategoryList(order.CategoryName), desired)
	result := ReconcileResult{
		Stage:        stage.Design,
		RecordID:     order.ID,
		OrderNumber:  order.OrderNumber,
		Added:        nonNil(delta.ToAdd),
		Removed:      nonNil(delta.ToRemove),
		Kept:         nonNil(delta.Kept),
		CategoryName: joined,
	}
	if joined != order.CategoryName {
		if err := uow.Orders.UpdateCategoryName(ctx, order.ID, joined); err != nil {
			return ReconcileResult{}, err
		}
	}

	split, err := uow.Splits.GetByOrderNumber(ctx, order.OrderNumber)
	if apperr.IsNotFound(err) {
		return result, nil
	}
	if err != nil {
		return ReconcileResult{}, err
	}

	existing, err := uow.Splits.ListEntries(ctx, split.ID)
	if err != nil {
		return ReconcileResult{}, err
	}
	if len(existing) > 0 || len(desired) == 0 {
		// the Split list is authoritative once it has rows
		return result, nil
	}

	seeded, err := s.reconcileSplit(ctx, uow, split, ledger.ScopeAll, desired, false)
	if err != nil {
		return ReconcileResult{}, err
	}
	result.Propagated = &seeded
	return result, nil
}

// reconcileSplit reconciles a Split's sub-ledger, stores the joined survivors
// on the Split and, when propagate is set, on the Order as well.
func (s *Service) reconcileSplit(ctx context.Context, uow UnitOfWork, split splitsrepo.Split, scope ledger.Scope, desired []string, propagate bool) (ReconcileResult, error) {
	result, err := s.reconcileLedger(ctx, uow.Splits, stage.Split, split.ID, split.OrderNumber, scope, desired)
	if err != nil {
		return ReconcileResult{}, err
	}

	if result.CategoryName != split.CategoryName {
		if err := uow.Splits.UpdateCategoryName(ctx, split.ID, result.CategoryName); err != nil {
			return ReconcileResult{}, err
		}
	}
	if !propagate {
		return result, nil
	}

	order, err := uow.Orders.GetByOrderNumber(ctx, split.OrderNumber)
	if apperr.IsNotFound(err) {
		return result, nil
	}
	if err != nil {
		return ReconcileResult{}, err
	}
	if order.CategoryName != result.CategoryName {
		if err := uow.Orders.UpdateCategoryName(ctx, order.ID, result.CategoryName); err != nil {
			return ReconcileResult{}, err
		}
	}
	return result, nil
}

// reconcileLedger applies the difference between a sub-ledger and desired.
func (s *Service) reconcileLedger(ctx context.Context, store SubLedgerStore, st stage.Stage, ownerID int64, orderNumber string, scope ledger.Scope, desired []string) (ReconcileResult, error) {
	existing, err := store.ListEntries(ctx, ownerID)
	if err != nil {
		return ReconcileResult{}, err
	}

	delta := planReconcile(existing, desired, scope)
	result := ReconcileResult{
		Stage:        st,
		RecordID:     ownerID,
		OrderNumber:  orderNumber,
		Added:        nonNil(delta.ToAdd),
		Removed:      nonNil(delta.ToRemove),
		Kept:         nonNil(delta.Kept),
		CategoryName: ledger.JoinCategoryList(survivors(existing, delta)),
	}
	if delta.Empty() {
		return result, nil
	}

	if err := store.DeleteEntries(ctx, ownerID, delta.ToRemove); err != nil {
		return ReconcileResult{}, err
	}

	if len(delta.ToAdd) > 0 {
		types := s.classify(ctx, scope, delta.ToAdd)
		entries := make([]ledger.Entry, 0, len(delta.ToAdd))
		for _, name := range delta.ToAdd {
			entries = append(entries, ledger.Entry{Category: name, Type: types[name]})
		}
		if err := store.InsertEntries(ctx, ownerID, orderNumber, entries); err != nil {
			return ReconcileResult{}, err
		}
	}
	return result, nil
}

func (s *Service) classify(ctx context.Context, scope ledger.Scope, names []string) map[string]ledger.ItemType {
	if itemType, ok := scope.ItemType(); ok {
		types := make(map[string]ledger.ItemType, len(names))
		for _, name := range names {
			types[name] = itemType
		}
		return types
	}
	return s.classifier.Classify(ctx, names)
}

// planReconcile computes the rows to add and remove. Under a type scope only
// rows of that type are compared with desired, and a desired category held
// with the other type is removed and re-added.
func planReconcile(existing []ledger.Entry, desired []string, scope ledger.Scope) ledger.Delta {
	itemType, typed := scope.ItemType()
	if !typed {
		return ledger.Diff(entryNames(existing), desired)
	}

	inScope := make([]string, 0, len(existing))
	for _, e := range existing {
		if e.Type == itemType {
			inScope = append(inScope, e.Category)
		}
	}
	delta := ledger.Diff(inScope, desired)

	wanted := make(map[string]struct{}, len(desired))
	for _, name := range desired {
		wanted[name] = struct{}{}
	}
	for _, e := range existing {
		if _, ok := wanted[e.Category]; ok && e.Type != itemType {
			delta.ToRemove = append(delta.ToRemove, e.Category)
		}
	}
	return delta
}

// survivors lists the categories after delta is applied: untouched rows in
// their stored order, then additions in desired order.
func survivors(existing []ledger.Entry, delta ledger.Delta) []string {
	removed := make(map[string]struct{}, len(delta.ToRemove))
	for _, name := range delta.ToRemove {
		removed[name] = struct{}{}
	}
	out := make([]string, 0, len(existing)+len(delta.ToAdd))
	for _, name := range ledger.Unique(entryNames(existing)) {
		if _, ok := removed[name]; !ok {
			out = append(out, name)
		}
	}
	return append(out, delta.ToAdd...)
}

func entryNames(entries []ledger.Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Category)
	}
	return names
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
