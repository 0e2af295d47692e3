// Package repository provides data access for Production records and their
// production_progress sub-ledger.
package repository

import (
	"context"
	"time"

	"orderflow_backend/internal/ledger"
	"orderflow_backend/internal/productions/domain"
)

// Production is the manufacturing stage record of an order.
type Production struct {
	ID                   int64
	OrderNumber          string
	CustomerName         string
	Address              string
	Splitter             *string
	Designer             *string
	IsInstallation       bool
	CustomerPaymentDate  *string
	SplitOrderDate       *string
	OrderDays            *int
	ExpectedDeliveryDate *string
	Board18              *string
	Board09              *string
	CuttingDate          *string
	ExpectedShippingDate *string
	ActualDeliveryDate   *string
	Remarks              *string
	SpecialNotes         *string
	Status               string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Record returns the status-relevant snapshot of p.
func (p Production) Record() domain.Record {
	return domain.Record{Status: p.Status, CuttingDate: p.CuttingDate, ActualDeliveryDate: p.ActualDeliveryDate}
}

// Item is one production_progress row.
type Item struct {
	ID                   int64
	ProductionID         int64
	OrderNumber          string
	ItemType             ledger.ItemType
	CategoryName         string
	OrderDate            *string
	ExpectedMaterialDate *string
	ActualStorageDate    *string
	StorageTime          *string
	Quantity             *string
	ExpectedArrivalDate  *string
	ActualArrivalDate    *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DomainItems returns the status-relevant snapshot of items.
func DomainItems(items []Item) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, i := range items {
		out = append(out, domain.Item{ItemType: i.ItemType, ActualStorageDate: i.ActualStorageDate, StorageTime: i.StorageTime})
	}
	return out
}

// CreateParams holds the columns denormalized from the Split when a
// Production is cascaded.
type CreateParams struct {
	OrderNumber          string
	CustomerName         string
	Address              string
	Splitter             *string
	Designer             *string
	IsInstallation       bool
	CustomerPaymentDate  *string
	SplitOrderDate       *string
	OrderDays            *int
	ExpectedDeliveryDate *string
	Status               string
}

// UpdateParams carries optional field edits.
type UpdateParams struct {
	ExpectedDeliveryDate *string
	Board18              *string
	Board09              *string
	CuttingDate          *string
	ExpectedShippingDate *string
	ActualDeliveryDate   *string
	Remarks              *string
	SpecialNotes         *string
}

// ItemParams carries optional sub-ledger item edits.
type ItemParams struct {
	ExpectedMaterialDate *string
	ActualStorageDate    *string
	StorageTime          *string
	Quantity             *string
	ExpectedArrivalDate  *string
	ActualArrivalDate    *string
}

// Repository is the production data access surface used by the service.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Production, error)
	ListItems(ctx context.Context, productionID int64) ([]Item, error)
}

var _ Repository = (*Repo)(nil)
