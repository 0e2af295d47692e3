package service

import (
	"context"

	"orderflow_backend/internal/ledger"
	splitsrepo "orderflow_backend/internal/splits/repository"
	"orderflow_backend/internal/stage"
)

// RecomputeDesignCycles sets design_cycle to the days since assignment for
// every order not yet placed. An unparseable assignment date yields 0. It
// returns the number of rows changed.
func (s *Service) RecomputeDesignCycles(ctx context.Context) (int64, error) {
	var changed int64
	err := s.runner.InTx(ctx, func(uow UnitOfWork) error {
		candidates, err := uow.Orders.ListCycleCandidates(ctx, stage.StatusPlaced)
		if err != nil {
			return err
		}

		now := s.now()
		ids := make([]int64, 0, len(candidates))
		days := make([]int32, 0, len(candidates))
		for _, c := range candidates {
			cycle := 0
			if assigned, ok := ledger.ParseDate(c.AssignmentDate); ok {
				cycle = ledger.DaysBetween(assigned, now)
			} else if !ledger.IsBlank(&c.AssignmentDate) {
				s.log.WithContext(ctx).DateParseFailed("assignment_date", c.AssignmentDate)
			}
			if cycle == c.DesignCycle {
				continue
			}
			ids = append(ids, c.ID)
			days = append(days, int32(cycle))
		}

		changed, err = uow.Orders.UpdateDesignCycles(ctx, ids, days)
		return err
	})
	return changed, err
}

// RecomputeSplitCycles sets cycle_days on every split item from its Split's
// order date to the item's split or purchase date. It returns the number of
// rows changed.
func (s *Service) RecomputeSplitCycles(ctx context.Context) (int64, error) {
	var changed int64
	err := s.runner.InTx(ctx, func(uow UnitOfWork) error {
		items, err := uow.Splits.ListCycleItems(ctx)
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(items))
		values := make([]string, 0, len(items))
		for _, item := range items {
			value := ledger.CycleDays(item.OrderDate, cycleReference(item))
			if item.CycleDays != nil && *item.CycleDays == value || item.CycleDays == nil && value == "" {
				continue
			}
			ids = append(ids, item.ID)
			values = append(values, value)
		}

		changed, err = uow.Splits.UpdateCycleDays(ctx, ids, values)
		return err
	})
	return changed, err
}

func cycleReference(item splitsrepo.CycleItem) *string {
	if item.ItemType == ledger.External {
		return item.PurchaseDate
	}
	return item.SplitDate
}
