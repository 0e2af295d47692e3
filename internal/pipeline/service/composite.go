package service

import (
	"context"

	"orderflow_backend/internal/stage"
)

// Statuses holds the stored status of each stage record of one order. A nil
// field means the stage record does not exist.
type Statuses struct {
	Design     *string
	Split      *string
	Production *string
}

func (s Statuses) of(st stage.Stage) *string {
	switch st {
	case stage.Design:
		return s.Design
	case stage.Split:
		return s.Split
	case stage.Production:
		return s.Production
	default:
		return nil
	}
}

// Compose renders the composite status of an order. An empty scope reports
// the furthest stage the order has reached; a stage scope reports that
// stage's status only, or "" when its record is absent.
func Compose(st Statuses, scope stage.Stage) string {
	if scope.Valid() {
		if status := st.of(scope); status != nil {
			return scope.Qualify(*status)
		}
		return ""
	}

	if st.Design != nil && *st.Design != stage.StatusPlaced {
		return stage.Design.Qualify(*st.Design)
	}
	if st.Split == nil {
		if st.Design != nil {
			return stage.Design.Qualify(stage.StatusPlaced)
		}
		if st.Production != nil {
			return stage.Production.Qualify(*st.Production)
		}
		return ""
	}
	if *st.Split != stage.StatusPlaced || st.Production == nil {
		return stage.Split.Qualify(*st.Split)
	}
	return stage.Production.Qualify(*st.Production)
}

// GetCompositeStatus returns the merged composite status of an order, or ""
// when it has no records or the read failed.
func (s *Service) GetCompositeStatus(ctx context.Context, orderNumber string) string {
	return s.ResolveStatus(ctx, orderNumber, "")
}

// ResolveStatus returns the composite status of one order under scope.
func (s *Service) ResolveStatus(ctx context.Context, orderNumber string, scope stage.Stage) string {
	return s.ResolveMany(ctx, []string{orderNumber}, scope)[orderNumber]
}

// ResolveMany resolves a batch of orders in one read-only transaction.
// Orders with no record are absent from the result.
func (s *Service) ResolveMany(ctx context.Context, orderNumbers []string, scope stage.Stage) map[string]string {
	out := make(map[string]string, len(orderNumbers))
	if len(orderNumbers) == 0 {
		return out
	}

	var statuses map[string]Statuses
	err := s.runner.InReadTx(ctx, func(uow UnitOfWork) error {
		var err error
		statuses, err = loadStatuses(ctx, uow, orderNumbers)
		return err
	})
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("resolve composite status", err)
		return out
	}

	for number, st := range statuses {
		if composite := Compose(st, scope); composite != "" {
			out[number] = composite
		}
	}
	return out
}

func loadStatuses(ctx context.Context, uow UnitOfWork, orderNumbers []string) (map[string]Statuses, error) {
	out := make(map[string]Statuses, len(orderNumbers))
	for _, st := range stage.Ordered {
		byNumber, err := uow.summaries(st).StatusesByNumbers(ctx, orderNumbers)
		if err != nil {
			return nil, err
		}
		for number, status := range byNumber {
			status := status
			entry := out[number]
			switch st {
			case stage.Design:
				entry.Design = &status
			case stage.Split:
				entry.Split = &status
			case stage.Production:
				entry.Production = &status
			}
			out[number] = entry
		}
	}
	return out, nil
}
