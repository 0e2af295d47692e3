// Package service provides read access to productions. Writes recompute the
// production status and therefore live in the stage pipeline.
package service

import (
	"context"
	"time"

	"orderflow_backend/internal/productions/repository"
	"orderflow_backend/internal/productions/transport"
)

// Service provides business logic for productions.
type Service struct {
	repo repository.Repository
}

// New creates a new production service.
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// GetByID retrieves a production with its sub-ledger.
func (s *Service) GetByID(ctx context.Context, id int64) (transport.ProductionDetailResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ProductionDetailResponse{}, err
	}
	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return transport.ProductionDetailResponse{}, err
	}
	return transport.ProductionDetailResponse{ProductionResponse: ToProductionResponse(p), Items: ToItemResponses(items)}, nil
}

// ToProductionResponse maps a production to its API shape.
func ToProductionResponse(p repository.Production) transport.ProductionResponse {
	return transport.ProductionResponse{
		ID:                   p.ID,
		OrderNumber:          p.OrderNumber,
		CustomerName:         p.CustomerName,
		Address:              p.Address,
		Splitter:             p.Splitter,
		Designer:             p.Designer,
		IsInstallation:       p.IsInstallation,
		CustomerPaymentDate:  p.CustomerPaymentDate,
		SplitOrderDate:       p.SplitOrderDate,
		OrderDays:            p.OrderDays,
		ExpectedDeliveryDate: p.ExpectedDeliveryDate,
		Board18:              p.Board18,
		Board09:              p.Board09,
		CuttingDate:          p.CuttingDate,
		ExpectedShippingDate: p.ExpectedShippingDate,
		ActualDeliveryDate:   p.ActualDeliveryDate,
		Remarks:              p.Remarks,
		SpecialNotes:         p.SpecialNotes,
		Status:               p.Status,
		CreatedAt:            p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            p.UpdatedAt.Format(time.RFC3339),
	}
}

// ToItemResponse maps a production_progress row.
func ToItemResponse(i repository.Item) transport.ProductionItemResponse {
	return transport.ProductionItemResponse{
		ID:                   i.ID,
		ProductionID:         i.ProductionID,
		ItemType:             string(i.ItemType),
		CategoryName:         i.CategoryName,
		OrderDate:            i.OrderDate,
		ExpectedMaterialDate: i.ExpectedMaterialDate,
		ActualStorageDate:    i.ActualStorageDate,
		StorageTime:          i.StorageTime,
		Quantity:             i.Quantity,
		ExpectedArrivalDate:  i.ExpectedArrivalDate,
		ActualArrivalDate:    i.ActualArrivalDate,
	}
}

// ToItemResponses maps a sub-ledger.
func ToItemResponses(items []repository.Item) []transport.ProductionItemResponse {
	out := make([]transport.ProductionItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, ToItemResponse(i))
	}
	return out
}
