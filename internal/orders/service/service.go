// Package service implements Design-stage order management: order intake,
// field edits and progress events. Status and category changes go through the
// stage pipeline because they reach into the downstream stages.
package service

import (
	"context"
	"strings"
	"time"

	"orderflow_backend/internal/ledger"
	"orderflow_backend/internal/orders/repository"
	"orderflow_backend/internal/orders/transport"
	"orderflow_backend/internal/stage"
	"orderflow_backend/platform/apperr"
	"orderflow_backend/platform/logger"
	"orderflow_backend/platform/phone"
	"orderflow_backend/platform/sanitize"
)

// Service provides business logic for Design-stage orders.
type Service struct {
	repo   repository.Repository
	region string
	log    *logger.Logger
}

// New creates a new order service. region is the default phone region.
func New(repo repository.Repository, region string, log *logger.Logger) *Service {
	if region == "" {
		region = phone.DefaultRegion
	}
	return &Service{repo: repo, region: region, log: log}
}

// Create opens an order in the Design stage.
func (s *Service) Create(ctx context.Context, req transport.CreateOrderRequest) (transport.OrderResponse, error) {
	orderNumber := strings.TrimSpace(req.OrderNumber)
	if orderNumber == "" {
		return transport.OrderResponse{}, apperr.Validation("order number is required")
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = stage.DesignMeasuring
	}
	if status == stage.StatusPlaced {
		return transport.OrderResponse{}, apperr.Validation("a new order cannot start as placed")
	}

	o, err := s.repo.Create(ctx, repository.CreateParams{
		OrderNumber:    orderNumber,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		Address:        strings.TrimSpace(req.Address),
		ContactPhone:   s.normalizePhone(req.ContactPhone),
		Designer:       req.Designer,
		Salesperson:    req.Salesperson,
		AssignmentDate: req.AssignmentDate,
		OrderDate:      req.OrderDate,
		CategoryName:   ledger.JoinCategoryList(ledger.ParseCategoryList(req.CategoryName)),
		OrderType:      strings.TrimSpace(req.OrderType),
		CabinetArea:    req.CabinetArea,
		WallPanelArea:  req.WallPanelArea,
		OrderAmount:    req.OrderAmount,
		IsInstallation: req.IsInstallation,
		Remarks:        sanitize.TextPtr(req.Remarks),
		Status:         status,
	})
	if err != nil {
		return transport.OrderResponse{}, err
	}

	s.log.WithContext(ctx).Info("order created", "id", o.ID, "orderNumber", o.OrderNumber, "status", o.Status)
	return ToOrderResponse(o), nil
}

// GetByID retrieves an order with its progress events.
func (s *Service) GetByID(ctx context.Context, id int64) (transport.OrderDetailResponse, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.OrderDetailResponse{}, err
	}

	events, err := s.repo.ListProgressEvents(ctx, id)
	if err != nil {
		return transport.OrderDetailResponse{}, err
	}

	return transport.OrderDetailResponse{
		OrderResponse:  ToOrderResponse(o),
		ProgressEvents: ToEventResponses(events),
	}, nil
}

// Update edits order fields.
func (s *Service) Update(ctx context.Context, id int64, req transport.UpdateOrderRequest) (transport.OrderResponse, error) {
	o, err := s.repo.Update(ctx, id, repository.UpdateParams{
		CustomerName:   trimPtr(req.CustomerName),
		Address:        trimPtr(req.Address),
		ContactPhone:   s.normalizePhone(req.ContactPhone),
		Designer:       req.Designer,
		Salesperson:    req.Salesperson,
		AssignmentDate: req.AssignmentDate,
		OrderDate:      req.OrderDate,
		OrderType:      trimPtr(req.OrderType),
		CabinetArea:    req.CabinetArea,
		WallPanelArea:  req.WallPanelArea,
		OrderAmount:    req.OrderAmount,
		IsInstallation: req.IsInstallation,
		Remarks:        sanitize.TextPtr(req.Remarks),
	})
	if err != nil {
		return transport.OrderResponse{}, err
	}
	return ToOrderResponse(o), nil
}

// ListProgressEvents returns the events of an order.
func (s *Service) ListProgressEvents(ctx context.Context, orderID int64) (transport.ProgressEventListResponse, error) {
	if _, err := s.repo.GetByID(ctx, orderID); err != nil {
		return transport.ProgressEventListResponse{}, err
	}
	events, err := s.repo.ListProgressEvents(ctx, orderID)
	if err != nil {
		return transport.ProgressEventListResponse{}, err
	}
	return transport.ProgressEventListResponse{Items: ToEventResponses(events)}, nil
}

// CreateProgressEvent adds a design activity to an order.
func (s *Service) CreateProgressEvent(ctx context.Context, orderID int64, req transport.ProgressEventRequest) (transport.ProgressEventResponse, error) {
	if req.TaskItem == nil || strings.TrimSpace(*req.TaskItem) == "" {
		return transport.ProgressEventResponse{}, apperr.Validation("task item is required")
	}
	if _, err := s.repo.GetByID(ctx, orderID); err != nil {
		return transport.ProgressEventResponse{}, err
	}

	e, err := s.repo.CreateProgressEvent(ctx, orderID, toEventParams(req))
	if err != nil {
		return transport.ProgressEventResponse{}, err
	}
	return ToEventResponse(e), nil
}

// UpdateProgressEvent edits a design activity.
func (s *Service) UpdateProgressEvent(ctx context.Context, orderID, eventID int64, req transport.ProgressEventRequest) (transport.ProgressEventResponse, error) {
	e, err := s.repo.UpdateProgressEvent(ctx, orderID, eventID, toEventParams(req))
	if err != nil {
		return transport.ProgressEventResponse{}, err
	}
	return ToEventResponse(e), nil
}

// DeleteProgressEvent removes a design activity.
func (s *Service) DeleteProgressEvent(ctx context.Context, orderID, eventID int64) error {
	return s.repo.DeleteProgressEvent(ctx, orderID, eventID)
}

func (s *Service) normalizePhone(raw *string) *string {
	if raw == nil {
		return nil
	}
	normalized := phone.NormalizeE164(*raw, s.region)
	return &normalized
}

func toEventParams(req transport.ProgressEventRequest) repository.ProgressEventParams {
	return repository.ProgressEventParams{
		TaskItem:    trimPtr(req.TaskItem),
		PlannedDate: req.PlannedDate,
		ActualDate:  req.ActualDate,
		Remarks:     sanitize.TextPtr(req.Remarks),
	}
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	t := strings.TrimSpace(*value)
	return &t
}

// ToOrderResponse maps an order to its API shape.
func ToOrderResponse(o repository.Order) transport.OrderResponse {
	return transport.OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerName:   o.CustomerName,
		Address:        o.Address,
		ContactPhone:   o.ContactPhone,
		Designer:       o.Designer,
		Salesperson:    o.Salesperson,
		AssignmentDate: o.AssignmentDate,
		OrderDate:      o.OrderDate,
		CategoryName:   o.CategoryName,
		OrderType:      o.OrderType,
		DesignCycle:    o.DesignCycle,
		CabinetArea:    o.CabinetArea,
		WallPanelArea:  o.WallPanelArea,
		OrderAmount:    o.OrderAmount,
		IsInstallation: o.IsInstallation,
		Remarks:        o.Remarks,
		Status:         o.Status,
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      o.UpdatedAt.Format(time.RFC3339),
	}
}

// ToEventResponse maps a progress event to its API shape.
func ToEventResponse(e repository.ProgressEvent) transport.ProgressEventResponse {
	return transport.ProgressEventResponse{
		ID:          e.ID,
		OrderID:     e.OrderID,
		TaskItem:    e.TaskItem,
		PlannedDate: e.PlannedDate,
		ActualDate:  e.ActualDate,
		Remarks:     e.Remarks,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}

// ToEventResponses maps a list of progress events.
func ToEventResponses(events []repository.ProgressEvent) []transport.ProgressEventResponse {
	out := make([]transport.ProgressEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, ToEventResponse(e))
	}
	return out
}
