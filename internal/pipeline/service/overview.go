package service

import (
	"context"
	"strings"

	"orderflow_backend/internal/ledger"
	ordersrepo "orderflow_backend/internal/orders/repository"
	productionsrepo "orderflow_backend/internal/productions/repository"
	splitsrepo "orderflow_backend/internal/splits/repository"
	"orderflow_backend/platform/apperr"
)

// Purchase states of a production's external items.
const (
	PurchaseNotStarted = "not purchased"
	PurchasePartial    = "partially arrived"
	PurchaseComplete   = "all arrived"
	PurchaseNoProgress = "no progress"
)

// ProductionCounters summarizes a production sub-ledger.
type ProductionCounters struct {
	InternalItems   int
	Stored          int
	Materialed      int
	ExternalItems   int
	ExternalArrived int
	// PurchaseStatus is "" when the production has no external items.
	PurchaseStatus string
	// PurchaseDetail lists "category:date" per item, the date being the
	// storage date for internal items and the arrival date for external ones.
	PurchaseDetail string
}

// Overview is every stage record of one order.
type Overview struct {
	OrderNumber     string
	CompositeStatus string
	Order           *ordersrepo.Order
	ProgressEvents  []ordersrepo.ProgressEvent
	Split           *splitsrepo.Split
	SplitItems      []splitsrepo.Item
	Production      *productionsrepo.Production
	ProductionItems []productionsrepo.Item
	Counters        *ProductionCounters
}

// GetOverview loads an order across all stages in one read-only transaction.
// It fails with NotFound when no stage has a record for orderNumber.
func (s *Service) GetOverview(ctx context.Context, orderNumber string) (Overview, error) {
	ov := Overview{OrderNumber: orderNumber}

	err := s.runner.InReadTx(ctx, func(uow UnitOfWork) error {
		statuses := Statuses{}

		order, err := uow.Orders.GetByOrderNumber(ctx, orderNumber)
		switch {
		case err == nil:
			ov.Order = &order
			statuses.Design = &order.Status
			if ov.ProgressEvents, err = uow.Orders.ListProgressEvents(ctx, order.ID); err != nil {
				return err
			}
		case !apperr.IsNotFound(err):
			return err
		}

		split, err := uow.Splits.GetByOrderNumber(ctx, orderNumber)
		switch {
		case err == nil:
			ov.Split = &split
			statuses.Split = &split.Status
			if ov.SplitItems, err = uow.Splits.ListItems(ctx, split.ID); err != nil {
				return err
			}
		case !apperr.IsNotFound(err):
			return err
		}

		prod, err := uow.Productions.GetByOrderNumber(ctx, orderNumber)
		switch {
		case err == nil:
			ov.Production = &prod
			statuses.Production = &prod.Status
			if ov.ProductionItems, err = uow.Productions.ListItems(ctx, prod.ID); err != nil {
				return err
			}
			counters := CountProduction(ov.ProductionItems)
			ov.Counters = &counters
		case !apperr.IsNotFound(err):
			return err
		}

		ov.CompositeStatus = Compose(statuses, "")
		return nil
	})
	if err != nil {
		return Overview{}, err
	}
	if ov.Order == nil && ov.Split == nil && ov.Production == nil {
		return Overview{}, apperr.NotFound("order not found")
	}
	return ov, nil
}

// CountProduction computes the sub-ledger counters of a production.
func CountProduction(items []productionsrepo.Item) ProductionCounters {
	var c ProductionCounters
	parts := make([]string, 0, len(items))
	for _, item := range items {
		var date *string
		switch item.ItemType {
		case ledger.Internal:
			c.InternalItems++
			if !ledger.IsBlank(item.StorageTime) {
				c.Stored++
			}
			if !ledger.IsBlank(item.ActualStorageDate) {
				c.Materialed++
			}
			date = item.ActualStorageDate
		case ledger.External:
			c.ExternalItems++
			if !ledger.IsBlank(item.ActualArrivalDate) {
				c.ExternalArrived++
			}
			date = item.ActualArrivalDate
		default:
			continue
		}

		part := item.CategoryName + ":"
		if !ledger.IsBlank(date) {
			part += strings.TrimSpace(*date)
		}
		parts = append(parts, part)
	}

	switch {
	case c.ExternalItems == 0:
	case c.ExternalArrived == 0:
		c.PurchaseStatus = PurchaseNotStarted
	case c.ExternalArrived < c.ExternalItems:
		c.PurchaseStatus = PurchasePartial
	default:
		c.PurchaseStatus = PurchaseComplete
	}

	if len(parts) == 0 {
		c.PurchaseDetail = PurchaseNoProgress
	} else {
		c.PurchaseDetail = strings.Join(parts, "; ")
	}
	return c
}
