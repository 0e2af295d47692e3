package service

import (
	"context"
	"strings"

	"orderflow_backend/internal/events"
	"orderflow_backend/internal/ledger"
	ordersrepo "orderflow_backend/internal/orders/repository"
	"orderflow_backend/internal/productions/domain"
	productionsrepo "orderflow_backend/internal/productions/repository"
	splitsrepo "orderflow_backend/internal/splits/repository"
	"orderflow_backend/internal/stage"
	"orderflow_backend/platform/apperr"
)

// HardwareCategory is the internal item every Production carries.
const HardwareCategory = "Hardware"

// CascadeOutcome describes one downstream creation attempt.
type CascadeOutcome struct {
	From        stage.Stage
	To          stage.Stage
	OrderNumber string
	RecordID    int64
	Created     bool
}

// onStatusChange runs the downstream effects of a stored status change:
// Order placed creates the Split, Split placed places the Order and creates
// the Production, Order revoked moves the Split to revoking.
func (s *Service) onStatusChange(ctx context.Context, uow UnitOfWork, st stage.Stage, orderNumber, oldStatus, newStatus string, out *outbox) ([]CascadeOutcome, error) {
	switch st {
	case stage.Design:
		if newStatus == stage.DesignRevoked && oldStatus != stage.DesignRevoked {
			if err := s.revokeSplit(ctx, uow, orderNumber, out); err != nil {
				return nil, err
			}
		}
		if oldStatus == stage.StatusPlaced || newStatus != stage.StatusPlaced {
			return nil, nil
		}
		order, err := uow.Orders.GetByOrderNumber(ctx, orderNumber)
		if err != nil {
			return nil, err
		}
		outcome, err := s.cascadeToSplit(ctx, uow, order, out)
		if err != nil {
			return nil, err
		}
		return []CascadeOutcome{outcome}, nil

	case stage.Split:
		if newStatus != stage.StatusPlaced {
			return nil, nil
		}
		split, err := uow.Splits.GetByOrderNumber(ctx, orderNumber)
		if err != nil {
			return nil, err
		}
		if err := s.placeOrder(ctx, uow, orderNumber); err != nil {
			return nil, err
		}
		outcome, err := s.cascadeToProduction(ctx, uow, split, out)
		if err != nil {
			return nil, err
		}
		return []CascadeOutcome{outcome}, nil
	}
	return nil, nil
}

// placeOrder marks the Order placed when its Split is placed. The place
// order progress event is not required on this path.
func (s *Service) placeOrder(ctx context.Context, uow UnitOfWork, orderNumber string) error {
	order, err := uow.Orders.GetByOrderNumber(ctx, orderNumber)
	if apperr.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if order.Status == stage.StatusPlaced {
		return nil
	}
	return uow.Orders.UpdateStatus(ctx, order.ID, stage.StatusPlaced)
}

func (s *Service) revokeSplit(ctx context.Context, uow UnitOfWork, orderNumber string, out *outbox) error {
	split, err := uow.Splits.GetByOrderNumber(ctx, orderNumber)
	if apperr.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if split.Status == stage.SplitRevoking {
		return nil
	}
	if err := uow.Splits.UpdateStatus(ctx, split.ID, stage.SplitRevoking); err != nil {
		return err
	}
	out.add(events.SplitRevoking{BaseEvent: events.NewBaseEvent(), SplitID: split.ID, OrderNumber: orderNumber})
	return nil
}

// cascadeToSplit creates the Split of a placed Order unless one exists.
func (s *Service) cascadeToSplit(ctx context.Context, uow UnitOfWork, order ordersrepo.Order, out *outbox) (CascadeOutcome, error) {
	outcome := CascadeOutcome{From: stage.Design, To: stage.Split, OrderNumber: order.OrderNumber}

	existing, err := uow.Splits.GetByOrderNumber(ctx, order.OrderNumber)
	if err == nil {
		outcome.RecordID = existing.ID
		s.raiseCascaded(outcome, out)
		return outcome, nil
	}
	if !apperr.IsNotFound(err) {
		return outcome, err
	}

	progress, err := uow.Orders.ListProgressEvents(ctx, order.ID)
	if err != nil {
		return outcome, err
	}
	paymentDate := actualDateOf(progress, stage.DesignPayment)
	quoteStatus := stage.QuoteUnpaid
	if paymentDate != nil {
		quoteStatus = stage.QuotePaid
	}

	transitionDate := s.today()
	split, created, err := uow.Splits.CreateIfAbsent(ctx, splitsrepo.CreateParams{
		OrderNumber:         order.OrderNumber,
		CustomerName:        order.CustomerName,
		Address:             order.Address,
		ContactPhone:        order.ContactPhone,
		OrderDate:           &transitionDate,
		Designer:            order.Designer,
		Salesperson:         order.Salesperson,
		OrderAmount:         order.OrderAmount,
		CabinetArea:         order.CabinetArea,
		WallPanelArea:       order.WallPanelArea,
		OrderType:           order.OrderType,
		IsInstallation:      order.IsInstallation,
		QuoteStatus:         quoteStatus,
		CustomerPaymentDate: paymentDate,
		Status:              stage.SplitNotStarted,
	})
	if err != nil {
		return outcome, err
	}
	if !created {
		s.raiseCascaded(outcome, out)
		return outcome, nil
	}

	outcome.RecordID = split.ID
	outcome.Created = true
	if _, err := s.reconcileSplit(ctx, uow, split, ledger.ScopeAll, ledger.ParseCategoryList(order.CategoryName), false); err != nil {
		return outcome, err
	}
	s.raiseCascaded(outcome, out)
	return outcome, nil
}

// cascadeToProduction creates the Production of a placed Split unless one exists.
func (s *Service) cascadeToProduction(ctx context.Context, uow UnitOfWork, split splitsrepo.Split, out *outbox) (CascadeOutcome, error) {
	outcome := CascadeOutcome{From: stage.Split, To: stage.Production, OrderNumber: split.OrderNumber}

	existing, err := uow.Productions.GetByOrderNumber(ctx, split.OrderNumber)
	if err == nil {
		outcome.RecordID = existing.ID
		s.raiseCascaded(outcome, out)
		return outcome, nil
	}
	if !apperr.IsNotFound(err) {
		return outcome, err
	}

	paymentDate, err := s.paymentDate(ctx, uow, split)
	if err != nil {
		return outcome, err
	}

	var expectedDelivery *string
	var orderDays *int
	if paid, ok := ledger.ParseDatePtr(paymentDate); ok {
		expected := ledger.FormatDate(paid.AddDate(0, 0, s.deliveryOffsetDays))
		days := ledger.DaysBetween(paid, s.now())
		expectedDelivery = &expected
		orderDays = &days
	} else if paymentDate != nil {
		s.log.WithContext(ctx).DateParseFailed("customer_payment_date", *paymentDate)
	}

	entries, err := uow.Splits.ListEntries(ctx, split.ID)
	if err != nil {
		return outcome, err
	}
	entries = withHardware(entries, s.today())

	prod, created, err := uow.Productions.CreateIfAbsent(ctx, productionsrepo.CreateParams{
		OrderNumber:          split.OrderNumber,
		CustomerName:         split.CustomerName,
		Address:              split.Address,
		Splitter:             split.Splitter,
		Designer:             split.Designer,
		IsInstallation:       split.IsInstallation,
		CustomerPaymentDate:  paymentDate,
		SplitOrderDate:       split.OrderDate,
		OrderDays:            orderDays,
		ExpectedDeliveryDate: expectedDelivery,
		Status:               domain.Derive(domain.Record{}, seedItems(entries)),
	})
	if err != nil {
		return outcome, err
	}
	if !created {
		s.raiseCascaded(outcome, out)
		return outcome, nil
	}

	if err := uow.Productions.InsertEntries(ctx, prod.ID, split.OrderNumber, entries); err != nil {
		return outcome, err
	}
	outcome.RecordID = prod.ID
	outcome.Created = true
	s.raiseCascaded(outcome, out)
	return outcome, nil
}

// paymentDate prefers the Order's payment progress event and falls back to
// the Split's customer payment date.
func (s *Service) paymentDate(ctx context.Context, uow UnitOfWork, split splitsrepo.Split) (*string, error) {
	order, err := uow.Orders.GetByOrderNumber(ctx, split.OrderNumber)
	if apperr.IsNotFound(err) {
		return split.CustomerPaymentDate, nil
	}
	if err != nil {
		return nil, err
	}

	progress, err := uow.Orders.ListProgressEvents(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if date := actualDateOf(progress, stage.DesignPayment); date != nil {
		return date, nil
	}
	if ledger.IsBlank(split.CustomerPaymentDate) {
		return nil, nil
	}
	return split.CustomerPaymentDate, nil
}

func (s *Service) raiseCascaded(outcome CascadeOutcome, out *outbox) {
	out.add(events.StageCascaded{
		BaseEvent:   events.NewBaseEvent(),
		FromStage:   string(outcome.From),
		ToStage:     string(outcome.To),
		OrderNumber: outcome.OrderNumber,
		RecordID:    outcome.RecordID,
		Created:     outcome.Created,
	})
}

// withHardware appends the hardware item unless a category of the same
// name, in any case, is already present.
func withHardware(entries []ledger.Entry, date string) []ledger.Entry {
	for _, e := range entries {
		if strings.EqualFold(strings.TrimSpace(e.Category), HardwareCategory) {
			return entries
		}
	}
	return append(entries, ledger.Entry{Category: HardwareCategory, Type: ledger.Internal, Date: &date})
}

func seedItems(entries []ledger.Entry) []domain.Item {
	items := make([]domain.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, domain.Item{ItemType: e.Type})
	}
	return items
}

// actualDateOf returns the actual date of the first progress event whose
// task contains keyword, ignoring case, and that has one.
func actualDateOf(progress []ordersrepo.ProgressEvent, keyword string) *string {
	for _, e := range progress {
		if !strings.Contains(strings.ToLower(e.TaskItem), keyword) || ledger.IsBlank(e.ActualDate) {
			continue
		}
		date := strings.TrimSpace(*e.ActualDate)
		return &date
	}
	return nil
}
