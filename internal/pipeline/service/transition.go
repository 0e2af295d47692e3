package service

import (
	"context"
	"fmt"

	"orderflow_backend/internal/events"
	"orderflow_backend/internal/ledger"
	"orderflow_backend/internal/stage"
	"orderflow_backend/platform/apperr"
)

// UpdatedRecord is the outcome of a status transition.
type UpdatedRecord struct {
	Stage       stage.Stage
	RecordID    int64
	OrderNumber string
	OldStatus   string
	NewStatus   string
	Cascades    []CascadeOutcome
}

// ApplyStatusTransition stores newStatus on a stage record and runs the
// resulting cascade in the same transaction.
func (s *Service) ApplyStatusTransition(ctx context.Context, st stage.Stage, recordID int64, newStatus string) (UpdatedRecord, error) {
	if !st.Valid() {
		return UpdatedRecord{}, apperr.Validation("unknown stage")
	}
	if !stage.AcceptsStatus(st, newStatus) {
		return UpdatedRecord{}, apperr.Validation(fmt.Sprintf("status %q is not allowed for stage %s", newStatus, st))
	}

	var result UpdatedRecord
	err := s.inTx(ctx, func(uow UnitOfWork, out *outbox) error {
		var err error
		result, err = s.applyTransition(ctx, uow, st, recordID, newStatus, out)
		return err
	})
	if err != nil {
		return UpdatedRecord{}, err
	}
	return result, nil
}

// PlaceSplitOrder places a Split together with its Order and creates the
// Production.
func (s *Service) PlaceSplitOrder(ctx context.Context, splitID int64) (UpdatedRecord, error) {
	return s.ApplyStatusTransition(ctx, stage.Split, splitID, stage.StatusPlaced)
}

func (s *Service) applyTransition(ctx context.Context, uow UnitOfWork, st stage.Stage, recordID int64, newStatus string, out *outbox) (UpdatedRecord, error) {
	result := UpdatedRecord{Stage: st, RecordID: recordID, NewStatus: newStatus}

	switch st {
	case stage.Design:
		order, err := uow.Orders.GetByID(ctx, recordID)
		if err != nil {
			return result, err
		}
		result.OrderNumber, result.OldStatus = order.OrderNumber, order.Status
		if newStatus == stage.StatusPlaced && order.Status != stage.StatusPlaced {
			progress, err := uow.Orders.ListProgressEvents(ctx, order.ID)
			if err != nil {
				return result, err
			}
			if actualDateOf(progress, stage.DesignPlaceOrder) == nil {
				return result, apperr.Validation("order cannot be placed before the place order step has an actual date")
			}
		}
		if order.Status != newStatus {
			if err := uow.Orders.UpdateStatus(ctx, order.ID, newStatus); err != nil {
				return result, err
			}
		}

	case stage.Split:
		split, err := uow.Splits.GetByID(ctx, recordID)
		if err != nil {
			return result, err
		}
		result.OrderNumber, result.OldStatus = split.OrderNumber, split.Status
		if split.Status != newStatus {
			if err := uow.Splits.UpdateStatus(ctx, split.ID, newStatus); err != nil {
				return result, err
			}
		}

	case stage.Production:
		prod, err := uow.Productions.GetByID(ctx, recordID)
		if err != nil {
			return result, err
		}
		result.OrderNumber, result.OldStatus = prod.OrderNumber, prod.Status
		if prod.Status != newStatus {
			if err := uow.Productions.UpdateStatus(ctx, prod.ID, newStatus); err != nil {
				return result, err
			}
			out.add(events.ProductionStatusChanged{
				BaseEvent:    events.NewBaseEvent(),
				ProductionID: prod.ID,
				OrderNumber:  prod.OrderNumber,
				From:         prod.Status,
				To:           newStatus,
			})
		}
		return result, nil
	}

	cascades, err := s.onStatusChange(ctx, uow, st, result.OrderNumber, result.OldStatus, newStatus, out)
	if err != nil {
		return result, err
	}
	result.Cascades = cascades
	return result, nil
}

// UpdateSplitQuote stores a Split's quote status. A paid quote with a
// payment date also records the date on the Order's payment step.
func (s *Service) UpdateSplitQuote(ctx context.Context, splitID int64, quoteStatus string, paymentDate *string) error {
	if quoteStatus != stage.QuotePaid && quoteStatus != stage.QuoteUnpaid {
		return apperr.Validation(fmt.Sprintf("unknown quote status %q", quoteStatus))
	}
	if paymentDate != nil {
		if _, ok := ledger.ParseDate(*paymentDate); !ok {
			return apperr.Validation("payment date must be YYYY-MM-DD")
		}
	}

	return s.inTx(ctx, func(uow UnitOfWork, out *outbox) error {
		split, err := uow.Splits.GetByID(ctx, splitID)
		if err != nil {
			return err
		}
		if err := uow.Splits.UpdateQuote(ctx, split.ID, quoteStatus, paymentDate); err != nil {
			return err
		}
		if quoteStatus != stage.QuotePaid || paymentDate == nil {
			return nil
		}

		order, err := uow.Orders.GetByOrderNumber(ctx, split.OrderNumber)
		if apperr.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		return uow.Orders.UpsertProgressActualDate(ctx, order.ID, stage.DesignPayment, stage.DesignPayment, *paymentDate)
	})
}
