package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"orderflow_backend/internal/ledger"
	"orderflow_backend/platform/apperr"
)

const itemNotFoundMessage = "split item not found"

const itemColumns = `
	id, split_id, order_number, item_type, category_name, planned_date, split_date,
	purchase_date, cycle_days, status, remarks, created_at, updated_at`

func scanItem(row pgx.Row) (Item, error) {
	var i Item
	var itemType string
	err := row.Scan(&i.ID, &i.SplitID, &i.OrderNumber, &itemType, &i.CategoryName, &i.PlannedDate, &i.SplitDate,
		&i.PurchaseDate, &i.CycleDays, &i.Status, &i.Remarks, &i.CreatedAt, &i.UpdatedAt)
	i.ItemType = ledger.ItemType(itemType)
	return i, err
}

// ListItems returns a split's sub-ledger in insertion order.
func (r *Repo) ListItems(ctx context.Context, splitID int64) ([]Item, error) {
	rows, err := r.q.Query(ctx, `SELECT`+itemColumns+` FROM split_progress WHERE split_id = $1 ORDER BY id`, splitID)
	if err != nil {
		return nil, fmt.Errorf("list split items: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan split item: %w", err)
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// GetItem retrieves one sub-ledger row of a split.
func (r *Repo) GetItem(ctx context.Context, splitID, itemID int64) (Item, error) {
	i, err := scanItem(r.q.QueryRow(ctx, `SELECT`+itemColumns+` FROM split_progress WHERE id = $2 AND split_id = $1`, splitID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, apperr.NotFound(itemNotFoundMessage)
		}
		return Item{}, fmt.Errorf("get split item: %w", err)
	}
	return i, nil
}

// UpdateItem applies the non-nil fields of p to one row.
func (r *Repo) UpdateItem(ctx context.Context, splitID, itemID int64, p ItemParams) (Item, error) {
	i, err := scanItem(r.q.QueryRow(ctx, `
		UPDATE split_progress SET
			planned_date  = COALESCE($3, planned_date),
			split_date    = COALESCE($4, split_date),
			purchase_date = COALESCE($5, purchase_date),
			cycle_days    = NULLIF(COALESCE($6, cycle_days), ''),
			status        = COALESCE($7, status),
			remarks       = COALESCE($8, remarks),
			updated_at    = now()
		WHERE id = $2 AND split_id = $1
		RETURNING`+itemColumns,
		splitID, itemID, p.PlannedDate, p.SplitDate, p.PurchaseDate, p.CycleDays, p.Status, p.Remarks))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, apperr.NotFound(itemNotFoundMessage)
		}
		return Item{}, fmt.Errorf("update split item: %w", err)
	}
	return i, nil
}

// ListEntries returns the sub-ledger as exchange entries. The reference date
// is split_date for internal rows and purchase_date for external rows.
func (r *Repo) ListEntries(ctx context.Context, splitID int64) ([]ledger.Entry, error) {
	items, err := r.ListItems(ctx, splitID)
	if err != nil {
		return nil, err
	}
	entries := make([]ledger.Entry, 0, len(items))
	for _, i := range items {
		entries = append(entries, ledger.Entry{Category: i.CategoryName, Type: i.ItemType, Date: i.ReferenceDate()})
	}
	return entries, nil
}

// InsertEntries adds sub-ledger rows. A category already present on the
// split is left as is.
func (r *Repo) InsertEntries(ctx context.Context, splitID int64, orderNumber string, entries []ledger.Entry) error {
	for _, e := range entries {
		var splitDate, purchaseDate *string
		if e.Type == ledger.External {
			purchaseDate = e.Date
		} else {
			splitDate = e.Date
		}

		_, err := r.q.Exec(ctx, `
			INSERT INTO split_progress (split_id, order_number, item_type, category_name, split_date, purchase_date)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (split_id, category_name) DO NOTHING`,
			splitID, orderNumber, string(e.Type), e.Category, splitDate, purchaseDate)
		if err != nil {
			return fmt.Errorf("insert split item %q: %w", e.Category, err)
		}
	}
	return nil
}

// DeleteEntries removes the rows of the named categories.
func (r *Repo) DeleteEntries(ctx context.Context, splitID int64, names []string) error {
	if len(names) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM split_progress WHERE split_id = $1 AND category_name = ANY($2)`, splitID, names); err != nil {
		return fmt.Errorf("delete split items: %w", err)
	}
	return nil
}

// ListCycleItems returns every sub-ledger row with its split's order date.
func (r *Repo) ListCycleItems(ctx context.Context) ([]CycleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT sp.id, sp.item_type, s.order_date, sp.split_date, sp.purchase_date, sp.cycle_days
		FROM split_progress sp
		JOIN splits s ON s.id = sp.split_id
		ORDER BY sp.id`)
	if err != nil {
		return nil, fmt.Errorf("list split cycle items: %w", err)
	}
	defer rows.Close()

	items := make([]CycleItem, 0)
	for rows.Next() {
		var c CycleItem
		var itemType string
		if err := rows.Scan(&c.ID, &itemType, &c.OrderDate, &c.SplitDate, &c.PurchaseDate, &c.CycleDays); err != nil {
			return nil, fmt.Errorf("scan split cycle item: %w", err)
		}
		c.ItemType = ledger.ItemType(itemType)
		items = append(items, c)
	}
	return items, rows.Err()
}

// UpdateCycleDays writes cycle_days for many rows in one statement.
func (r *Repo) UpdateCycleDays(ctx context.Context, ids []int64, values []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE split_progress sp
		SET cycle_days = NULLIF(v.days, ''), updated_at = now()
		FROM unnest($1::bigint[], $2::text[]) AS v(id, days)
		WHERE sp.id = v.id AND sp.cycle_days IS DISTINCT FROM NULLIF(v.days, '')`, ids, values)
	if err != nil {
		return 0, fmt.Errorf("update split cycle days: %w", err)
	}
	return tag.RowsAffected(), nil
}
