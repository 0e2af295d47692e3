package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"orderflow_backend/internal/ledger"
	"orderflow_backend/platform/apperr"
)

const itemNotFoundMessage = "production item not found"

const itemColumns = `
	id, production_id, order_number, item_type, category_name, order_date,
	expected_material_date, actual_storage_date, storage_time, quantity,
	expected_arrival_date, actual_arrival_date, created_at, updated_at`

func scanItem(row pgx.Row) (Item, error) {
	var i Item
	var itemType string
	err := row.Scan(&i.ID, &i.ProductionID, &i.OrderNumber, &itemType, &i.CategoryName, &i.OrderDate,
		&i.ExpectedMaterialDate, &i.ActualStorageDate, &i.StorageTime, &i.Quantity,
		&i.ExpectedArrivalDate, &i.ActualArrivalDate, &i.CreatedAt, &i.UpdatedAt)
	i.ItemType = ledger.ItemType(itemType)
	return i, err
}

// ListItems returns a production's sub-ledger in insertion order.
func (r *Repo) ListItems(ctx context.Context, productionID int64) ([]Item, error) {
	rows, err := r.q.Query(ctx, `SELECT`+itemColumns+` FROM production_progress WHERE production_id = $1 ORDER BY id`, productionID)
	if err != nil {
		return nil, fmt.Errorf("list production items: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production item: %w", err)
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// UpdateItem applies the non-nil fields of p to one row. An empty string
// clears a date.
func (r *Repo) UpdateItem(ctx context.Context, productionID, itemID int64, p ItemParams) (Item, error) {
	i, err := scanItem(r.q.QueryRow(ctx, `
		UPDATE production_progress SET
			expected_material_date = NULLIF(COALESCE($3, expected_material_date), ''),
			actual_storage_date    = NULLIF(COALESCE($4, actual_storage_date), ''),
			storage_time           = NULLIF(COALESCE($5, storage_time), ''),
			quantity               = NULLIF(COALESCE($6, quantity), ''),
			expected_arrival_date  = NULLIF(COALESCE($7, expected_arrival_date), ''),
			actual_arrival_date    = NULLIF(COALESCE($8, actual_arrival_date), ''),
			updated_at             = now()
		WHERE id = $2 AND production_id = $1
		RETURNING`+itemColumns,
		productionID, itemID, p.ExpectedMaterialDate, p.ActualStorageDate, p.StorageTime, p.Quantity,
		p.ExpectedArrivalDate, p.ActualArrivalDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, apperr.NotFound(itemNotFoundMessage)
		}
		return Item{}, fmt.Errorf("update production item: %w", err)
	}
	return i, nil
}

// ListEntries returns the sub-ledger as exchange entries carrying order_date.
func (r *Repo) ListEntries(ctx context.Context, productionID int64) ([]ledger.Entry, error) {
	items, err := r.ListItems(ctx, productionID)
	if err != nil {
		return nil, err
	}
	entries := make([]ledger.Entry, 0, len(items))
	for _, i := range items {
		entries = append(entries, ledger.Entry{Category: i.CategoryName, Type: i.ItemType, Date: i.OrderDate})
	}
	return entries, nil
}

// InsertEntries adds sub-ledger rows with the entry date as order_date. A
// category already present on the production is left as is.
func (r *Repo) InsertEntries(ctx context.Context, productionID int64, orderNumber string, entries []ledger.Entry) error {
	for _, e := range entries {
		_, err := r.q.Exec(ctx, `
			INSERT INTO production_progress (production_id, order_number, item_type, category_name, order_date)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (production_id, category_name) DO NOTHING`,
			productionID, orderNumber, string(e.Type), e.Category, e.Date)
		if err != nil {
			return fmt.Errorf("insert production item %q: %w", e.Category, err)
		}
	}
	return nil
}

// DeleteEntries removes the rows of the named categories.
func (r *Repo) DeleteEntries(ctx context.Context, productionID int64, names []string) error {
	if len(names) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM production_progress WHERE production_id = $1 AND category_name = ANY($2)`, productionID, names); err != nil {
		return fmt.Errorf("delete production items: %w", err)
	}
	return nil
}
