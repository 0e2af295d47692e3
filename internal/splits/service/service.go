// Package service implements Split-stage field and sub-ledger item edits.
package service

import (
	"context"
	"strings"
	"time"

	"orderflow_backend/internal/ledger"
	"orderflow_backend/internal/splits/repository"
	"orderflow_backend/internal/splits/transport"
	"orderflow_backend/platform/logger"
	"orderflow_backend/platform/phone"
	"orderflow_backend/platform/sanitize"
)

// Service provides business logic for splits.
type Service struct {
	repo   repository.Repository
	region string
	log    *logger.Logger
}

// New creates a new split service.
func New(repo repository.Repository, region string, log *logger.Logger) *Service {
	if region == "" {
		region = phone.DefaultRegion
	}
	return &Service{repo: repo, region: region, log: log}
}

// GetByID retrieves a split with its sub-ledger.
func (s *Service) GetByID(ctx context.Context, id int64) (transport.SplitDetailResponse, error) {
	split, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.SplitDetailResponse{}, err
	}
	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return transport.SplitDetailResponse{}, err
	}
	return transport.SplitDetailResponse{SplitResponse: ToSplitResponse(split), Items: ToItemResponses(items)}, nil
}

// Update edits split fields.
func (s *Service) Update(ctx context.Context, id int64, req transport.UpdateSplitRequest) (transport.SplitResponse, error) {
	var contactPhone *string
	if req.ContactPhone != nil {
		normalized := phone.NormalizeE164(*req.ContactPhone, s.region)
		contactPhone = &normalized
	}

	split, err := s.repo.Update(ctx, id, repository.UpdateParams{
		CustomerName:   trimPtr(req.CustomerName),
		Address:        trimPtr(req.Address),
		ContactPhone:   contactPhone,
		Splitter:       trimPtr(req.Splitter),
		OrderAmount:    req.OrderAmount,
		CompletionDate: req.CompletionDate,
		Remarks:        sanitize.TextPtr(req.Remarks),
	})
	if err != nil {
		return transport.SplitResponse{}, err
	}
	return ToSplitResponse(split), nil
}

// UpdateItem edits a sub-ledger row and refreshes its cycle_days from the
// split's order date to the row's split or purchase date.
func (s *Service) UpdateItem(ctx context.Context, splitID, itemID int64, req transport.UpdateSplitItemRequest) (transport.SplitItemResponse, error) {
	split, err := s.repo.GetByID(ctx, splitID)
	if err != nil {
		return transport.SplitItemResponse{}, err
	}
	current, err := s.repo.GetItem(ctx, splitID, itemID)
	if err != nil {
		return transport.SplitItemResponse{}, err
	}

	merged := current
	if req.SplitDate != nil {
		merged.SplitDate = req.SplitDate
	}
	if req.PurchaseDate != nil {
		merged.PurchaseDate = req.PurchaseDate
	}
	cycle := ledger.CycleDays(split.OrderDate, merged.ReferenceDate())

	item, err := s.repo.UpdateItem(ctx, splitID, itemID, repository.ItemParams{
		PlannedDate:  req.PlannedDate,
		SplitDate:    req.SplitDate,
		PurchaseDate: req.PurchaseDate,
		CycleDays:    &cycle,
		Status:       trimPtr(req.Status),
		Remarks:      sanitize.TextPtr(req.Remarks),
	})
	if err != nil {
		return transport.SplitItemResponse{}, err
	}
	return ToItemResponse(item), nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	t := strings.TrimSpace(*value)
	return &t
}

// ToSplitResponse maps a split to its API shape.
func ToSplitResponse(s repository.Split) transport.SplitResponse {
	return transport.SplitResponse{
		ID:                  s.ID,
		OrderNumber:         s.OrderNumber,
		CustomerName:        s.CustomerName,
		Address:             s.Address,
		ContactPhone:        s.ContactPhone,
		OrderDate:           s.OrderDate,
		Designer:            s.Designer,
		Salesperson:         s.Salesperson,
		OrderAmount:         s.OrderAmount,
		CabinetArea:         s.CabinetArea,
		WallPanelArea:       s.WallPanelArea,
		OrderType:           s.OrderType,
		IsInstallation:      s.IsInstallation,
		CategoryName:        s.CategoryName,
		Splitter:            s.Splitter,
		QuoteStatus:         s.QuoteStatus,
		CustomerPaymentDate: s.CustomerPaymentDate,
		CompletionDate:      s.CompletionDate,
		Remarks:             s.Remarks,
		Status:              s.Status,
		CreatedAt:           s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           s.UpdatedAt.Format(time.RFC3339),
	}
}

// ToItemResponse maps a sub-ledger row.
func ToItemResponse(i repository.Item) transport.SplitItemResponse {
	return transport.SplitItemResponse{
		ID:           i.ID,
		SplitID:      i.SplitID,
		ItemType:     string(i.ItemType),
		CategoryName: i.CategoryName,
		PlannedDate:  i.PlannedDate,
		SplitDate:    i.SplitDate,
		PurchaseDate: i.PurchaseDate,
		CycleDays:    i.CycleDays,
		Status:       i.Status,
		Remarks:      i.Remarks,
	}
}

// ToItemResponses maps a sub-ledger.
func ToItemResponses(items []repository.Item) []transport.SplitItemResponse {
	out := make([]transport.SplitItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, ToItemResponse(i))
	}
	return out
}
