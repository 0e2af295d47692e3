// Package repository provides data access for the category registry.
package repository

import (
	"context"
	"time"
)

// Category type values stored in categories.category_type.
const (
	TypeInternalProduction = "internal-production"
	TypeExternalPurchase   = "external-purchase"
)

// Category is a registry row.
type Category struct {
	ID        int64
	Name      string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListParams filters List. Nil fields are ignored.
type ListParams struct {
	Name *string
	Type *string
}

// UpdateParams carries optional updates. Nil fields are left unchanged.
type UpdateParams struct {
	Name *string
	Type *string
}

// SeedEntry is one category to insert when missing.
type SeedEntry struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Repository defines category registry persistence.
type Repository interface {
	Create(ctx context.Context, name, categoryType string) (Category, error)
	GetByID(ctx context.Context, id int64) (Category, error)
	List(ctx context.Context, params ListParams) ([]Category, error)
	Update(ctx context.Context, id int64, params UpdateParams) (Category, error)
	Delete(ctx context.Context, id int64) error
	// TypesByName returns the category_type of each known name.
	TypesByName(ctx context.Context, names []string) (map[string]string, error)
	// InsertMissing inserts entries whose names are not registered yet and
	// returns how many were inserted.
	InsertMissing(ctx context.Context, entries []SeedEntry) (int, error)
}
