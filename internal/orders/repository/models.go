// Package repository provides data access for Design-stage orders and their
// progress events.
package repository

import (
	"context"
	"time"
)

// Order is the Design-stage record. OrderNumber is the cross-stage key and
// never changes after creation.
type Order struct {
	ID             int64
	OrderNumber    string
	CustomerName   string
	Address        string
	ContactPhone   *string
	Designer       *string
	Salesperson    *string
	AssignmentDate string
	OrderDate      *string
	CategoryName   string
	OrderType      string
	DesignCycle    int
	CabinetArea    *float64
	WallPanelArea  *float64
	OrderAmount    *float64
	IsInstallation bool
	Remarks        *string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProgressEvent is one design activity. A "place order" event with an actual
// date gates the transition to placed.
type ProgressEvent struct {
	ID          int64
	OrderID     int64
	TaskItem    string
	PlannedDate string
	ActualDate  *string
	Remarks     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateParams holds the columns of a new order.
type CreateParams struct {
	OrderNumber    string
	CustomerName   string
	Address        string
	ContactPhone   *string
	Designer       *string
	Salesperson    *string
	AssignmentDate string
	OrderDate      *string
	CategoryName   string
	OrderType      string
	CabinetArea    *float64
	WallPanelArea  *float64
	OrderAmount    *float64
	IsInstallation bool
	Remarks        *string
	Status         string
}

// UpdateParams carries optional field edits. Status and category list are
// changed only through the stage pipeline.
type UpdateParams struct {
	CustomerName   *string
	Address        *string
	ContactPhone   *string
	Designer       *string
	Salesperson    *string
	AssignmentDate *string
	OrderDate      *string
	OrderType      *string
	CabinetArea    *float64
	WallPanelArea  *float64
	OrderAmount    *float64
	IsInstallation *bool
	Remarks        *string
}

// ProgressEventParams holds the fields of a progress event write.
type ProgressEventParams struct {
	TaskItem    *string
	PlannedDate *string
	ActualDate  *string
	Remarks     *string
}

// CycleCandidate is an order whose design_cycle is recomputed daily.
type CycleCandidate struct {
	ID             int64
	AssignmentDate string
	DesignCycle    int
}

// Repository is the order data access surface used by the service.
type Repository interface {
	Create(ctx context.Context, p CreateParams) (Order, error)
	GetByID(ctx context.Context, id int64) (Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (Order, error)
	Update(ctx context.Context, id int64, p UpdateParams) (Order, error)
	ListProgressEvents(ctx context.Context, orderID int64) ([]ProgressEvent, error)
	CreateProgressEvent(ctx context.Context, orderID int64, p ProgressEventParams) (ProgressEvent, error)
	UpdateProgressEvent(ctx context.Context, orderID, eventID int64, p ProgressEventParams) (ProgressEvent, error)
	DeleteProgressEvent(ctx context.Context, orderID, eventID int64) error
}

var _ Repository = (*Repo)(nil)
