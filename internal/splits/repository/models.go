// Package repository provides data access for Split records and their
// per-category split_progress sub-ledger.
package repository

import (
	"context"
	"time"

	"orderflow_backend/internal/ledger"
)

// Split is the bill-of-materials stage record of an order.
type Split struct {
	ID                  int64
	OrderNumber         string
	CustomerName        string
	Address             string
	ContactPhone        *string
	OrderDate           *string
	Designer            *string
	Salesperson         *string
	OrderAmount         *float64
	CabinetArea         *float64
	WallPanelArea       *float64
	OrderType           string
	IsInstallation      bool
	CategoryName        string
	Splitter            *string
	QuoteStatus         string
	CustomerPaymentDate *string
	CompletionDate      *string
	Remarks             *string
	Status              string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Item is one split_progress row. Internal items carry SplitDate, external
// items carry PurchaseDate.
type Item struct {
	ID           int64
	SplitID      int64
	OrderNumber  string
	ItemType     ledger.ItemType
	CategoryName string
	PlannedDate  *string
	SplitDate    *string
	PurchaseDate *string
	CycleDays    *string
	Status       string
	Remarks      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReferenceDate returns the type-specific completion date of the item.
func (i Item) ReferenceDate() *string {
	if i.ItemType == ledger.External {
		return i.PurchaseDate
	}
	return i.SplitDate
}

// CreateParams holds the columns copied from the Order when a Split is cascaded.
type CreateParams struct {
	OrderNumber         string
	CustomerName        string
	Address             string
	ContactPhone        *string
	OrderDate           *string
	Designer            *string
	Salesperson         *string
	OrderAmount         *float64
	CabinetArea         *float64
	WallPanelArea       *float64
	OrderType           string
	IsInstallation      bool
	CategoryName        string
	QuoteStatus         string
	CustomerPaymentDate *string
	Status              string
}

// UpdateParams carries optional field edits.
type UpdateParams struct {
	CustomerName   *string
	Address        *string
	ContactPhone   *string
	Splitter       *string
	OrderAmount    *float64
	CompletionDate *string
	Remarks        *string
}

// ItemParams carries optional sub-ledger item edits.
type ItemParams struct {
	PlannedDate  *string
	SplitDate    *string
	PurchaseDate *string
	CycleDays    *string
	Status       *string
	Remarks      *string
}

// CycleItem is a split_progress row with its Split's order date, used by the
// cycle_days batch job.
type CycleItem struct {
	ID           int64
	ItemType     ledger.ItemType
	OrderDate    *string
	SplitDate    *string
	PurchaseDate *string
	CycleDays    *string
}

// Repository is the split data access surface used by the service.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Split, error)
	Update(ctx context.Context, id int64, p UpdateParams) (Split, error)
	ListItems(ctx context.Context, splitID int64) ([]Item, error)
	GetItem(ctx context.Context, splitID, itemID int64) (Item, error)
	UpdateItem(ctx context.Context, splitID, itemID int64, p ItemParams) (Item, error)
}

var _ Repository = (*Repo)(nil)
