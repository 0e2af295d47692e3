package service

import (
	"context"

	"orderflow_backend/internal/events"
	"orderflow_backend/internal/productions/domain"
	productionsrepo "orderflow_backend/internal/productions/repository"
	"orderflow_backend/internal/stage"
)

// BatchFailed marks an id whose recompute failed in BatchValidate.
const BatchFailed = "failed"

// RecomputeProductionStatus re-derives and stores the status of a production.
func (s *Service) RecomputeProductionStatus(ctx context.Context, productionID int64) (string, error) {
	var status string
	err := s.inTx(ctx, func(uow UnitOfWork, out *outbox) error {
		prod, err := uow.Productions.GetByID(ctx, productionID)
		if err != nil {
			return err
		}
		status, err = s.recompute(ctx, uow, prod, out)
		return err
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// BatchValidate recomputes each production independently. A failed id maps
// to BatchFailed and does not stop the batch.
func (s *Service) BatchValidate(ctx context.Context, ids []int64) map[int64]string {
	results := make(map[int64]string, len(ids))
	for _, id := range ids {
		status, err := s.RecomputeProductionStatus(ctx, id)
		if err != nil {
			s.log.WithContext(ctx).Warn("production recompute failed", "production_id", id, "error", err)
			results[id] = BatchFailed
			continue
		}
		results[id] = status
	}
	return results
}

// RecomputeAllProductions runs BatchValidate over every production that is
// not completed.
func (s *Service) RecomputeAllProductions(ctx context.Context) (map[int64]string, error) {
	var ids []int64
	err := s.runner.InReadTx(ctx, func(uow UnitOfWork) error {
		var err error
		ids, err = uow.Productions.ListRecomputeIDs(ctx, stage.ProductionCompleted)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.BatchValidate(ctx, ids), nil
}

// UpdateProduction applies field edits and recomputes the status in the same
// transaction.
func (s *Service) UpdateProduction(ctx context.Context, productionID int64, p productionsrepo.UpdateParams) (productionsrepo.Production, error) {
	var prod productionsrepo.Production
	err := s.inTx(ctx, func(uow UnitOfWork, out *outbox) error {
		var err error
		if prod, err = uow.Productions.Update(ctx, productionID, p); err != nil {
			return err
		}
		status, err := s.recompute(ctx, uow, prod, out)
		if err != nil {
			return err
		}
		prod.Status = status
		return nil
	})
	if err != nil {
		return productionsrepo.Production{}, err
	}
	return prod, nil
}

// UpdateProductionItem edits one sub-ledger item and recomputes the status
// of its production in the same transaction.
func (s *Service) UpdateProductionItem(ctx context.Context, productionID, itemID int64, p productionsrepo.ItemParams) (productionsrepo.Item, error) {
	var item productionsrepo.Item
	err := s.inTx(ctx, func(uow UnitOfWork, out *outbox) error {
		prod, err := uow.Productions.GetByID(ctx, productionID)
		if err != nil {
			return err
		}
		if item, err = uow.Productions.UpdateItem(ctx, prod.ID, itemID, p); err != nil {
			return err
		}
		_, err = s.recompute(ctx, uow, prod, out)
		return err
	})
	if err != nil {
		return productionsrepo.Item{}, err
	}
	return item, nil
}

// recompute derives the status of prod from its current items and stores it
// when it differs.
func (s *Service) recompute(ctx context.Context, uow UnitOfWork, prod productionsrepo.Production, out *outbox) (string, error) {
	items, err := uow.Productions.ListItems(ctx, prod.ID)
	if err != nil {
		return "", err
	}

	derived := domain.Derive(prod.Record(), productionsrepo.DomainItems(items))
	if derived == prod.Status {
		return derived, nil
	}
	if err := uow.Productions.UpdateStatus(ctx, prod.ID, derived); err != nil {
		return "", err
	}
	out.add(events.ProductionStatusChanged{
		BaseEvent:    events.NewBaseEvent(),
		ProductionID: prod.ID,
		OrderNumber:  prod.OrderNumber,
		From:         prod.Status,
		To:           derived,
	})
	return derived, nil
}
