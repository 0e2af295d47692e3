package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"orderflow_backend/platform/apperr"
	"orderflow_backend/platform/db"
)

const productionNotFoundMessage = "production not found"

const productionColumns = `
	id, order_number, customer_name, address, splitter, designer, is_installation,
	customer_payment_date, split_order_date, order_days, expected_delivery_date,
	board_18, board_09, cutting_date, expected_shipping_date, actual_delivery_date,
	remarks, special_notes, order_status, created_at, updated_at`

// Repo implements production persistence over a pool or a transaction.
type Repo struct {
	q db.DBTX
}

// New creates a repository bound to q (a *pgxpool.Pool or pgx.Tx).
func New(q db.DBTX) *Repo {
	return &Repo{q: q}
}

// WithTx returns a copy of the repository bound to tx.
func (r *Repo) WithTx(tx pgx.Tx) *Repo {
	return &Repo{q: tx}
}

func scanProduction(row pgx.Row) (Production, error) {
	var p Production
	err := row.Scan(
		&p.ID, &p.OrderNumber, &p.CustomerName, &p.Address, &p.Splitter, &p.Designer, &p.IsInstallation,
		&p.CustomerPaymentDate, &p.SplitOrderDate, &p.OrderDays, &p.ExpectedDeliveryDate,
		&p.Board18, &p.Board09, &p.CuttingDate, &p.ExpectedShippingDate, &p.ActualDeliveryDate,
		&p.Remarks, &p.SpecialNotes, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// CreateIfAbsent inserts a Production unless one already exists for the
// order number. created is false when the row existed.
func (r *Repo) CreateIfAbsent(ctx context.Context, p CreateParams) (prod Production, created bool, err error) {
	query := `
		INSERT INTO productions (
			order_number, customer_name, address, splitter, designer, is_installation,
			customer_payment_date, split_order_date, order_days, expected_delivery_date, order_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (order_number) DO NOTHING
		RETURNING` + productionColumns

	prod, err = scanProduction(r.q.QueryRow(ctx, query,
		p.OrderNumber, p.CustomerName, p.Address, p.Splitter, p.Designer, p.IsInstallation,
		p.CustomerPaymentDate, p.SplitOrderDate, p.OrderDays, p.ExpectedDeliveryDate, p.Status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || db.IsUniqueViolation(err) {
			return Production{}, false, nil
		}
		return Production{}, false, fmt.Errorf("create production: %w", err)
	}
	return prod, true, nil
}

// GetByID retrieves a production by its ID.
func (r *Repo) GetByID(ctx context.Context, id int64) (Production, error) {
	p, err := scanProduction(r.q.QueryRow(ctx, `SELECT`+productionColumns+` FROM productions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Production{}, apperr.NotFound(productionNotFoundMessage)
		}
		return Production{}, fmt.Errorf("get production by id: %w", err)
	}
	return p, nil
}

// GetByOrderNumber retrieves the production of an order.
func (r *Repo) GetByOrderNumber(ctx context.Context, orderNumber string) (Production, error) {
	p, err := scanProduction(r.q.QueryRow(ctx, `SELECT`+productionColumns+` FROM productions WHERE order_number = $1`, orderNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Production{}, apperr.NotFound(productionNotFoundMessage)
		}
		return Production{}, fmt.Errorf("get production by number: %w", err)
	}
	return p, nil
}

// Update applies the non-nil fields of p.
func (r *Repo) Update(ctx context.Context, id int64, p UpdateParams) (Production, error) {
	query := `
		UPDATE productions SET
			expected_delivery_date = COALESCE($2, expected_delivery_date),
			board_18               = COALESCE($3, board_18),
			board_09               = COALESCE($4, board_09),
			cutting_date           = NULLIF(COALESCE($5, cutting_date), ''),
			expected_shipping_date = COALESCE($6, expected_shipping_date),
			actual_delivery_date   = NULLIF(COALESCE($7, actual_delivery_date), ''),
			remarks                = COALESCE($8, remarks),
			special_notes          = COALESCE($9, special_notes),
			updated_at             = now()
		WHERE id = $1
		RETURNING` + productionColumns

	prod, err := scanProduction(r.q.QueryRow(ctx, query, id,
		p.ExpectedDeliveryDate, p.Board18, p.Board09, p.CuttingDate, p.ExpectedShippingDate,
		p.ActualDeliveryDate, p.Remarks, p.SpecialNotes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Production{}, apperr.NotFound(productionNotFoundMessage)
		}
		return Production{}, fmt.Errorf("update production: %w", err)
	}
	return prod, nil
}

// UpdateStatus writes order_status.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE productions SET order_status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update production status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(productionNotFoundMessage)
	}
	return nil
}

// StatusesByNumbers returns order_status keyed by order_number.
func (r *Repo) StatusesByNumbers(ctx context.Context, orderNumbers []string) (map[string]string, error) {
	result := make(map[string]string, len(orderNumbers))
	if len(orderNumbers) == 0 {
		return result, nil
	}

	rows, err := r.q.Query(ctx, `SELECT order_number, order_status FROM productions WHERE order_number = ANY($1)`, orderNumbers)
	if err != nil {
		return nil, fmt.Errorf("production statuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var number, status string
		if err := rows.Scan(&number, &status); err != nil {
			return nil, fmt.Errorf("scan production status: %w", err)
		}
		result[number] = status
	}
	return result, rows.Err()
}

// ListRecomputeIDs returns the ids of every production not yet completed.
func (r *Repo) ListRecomputeIDs(ctx context.Context, completedStatus string) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM productions WHERE order_status <> $1 ORDER BY id`, completedStatus)
	if err != nil {
		return nil, fmt.Errorf("list productions to recompute: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan production id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
