package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"orderflow_backend/platform/apperr"
	"orderflow_backend/platform/db"
)

const (
	orderNotFoundMessage = "order not found"
	eventNotFoundMessage = "progress event not found"
	orderDuplicateFormat = "order number %s already exists"
)

const orderColumns = `
	id, order_number, customer_name, address, contact_phone, designer, salesperson,
	assignment_date, order_date, category_name, order_type, design_cycle,
	cabinet_area::float8, wall_panel_area::float8, order_amount::float8,
	is_installation, remarks, order_status, created_at, updated_at`

// Repo implements order persistence over a pool or a transaction.
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

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.Address, &o.ContactPhone, &o.Designer, &o.Salesperson,
		&o.AssignmentDate, &o.OrderDate, &o.CategoryName, &o.OrderType, &o.DesignCycle,
		&o.CabinetArea, &o.WallPanelArea, &o.OrderAmount,
		&o.IsInstallation, &o.Remarks, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

// Create inserts an order. A duplicate order_number is a conflict.
func (r *Repo) Create(ctx context.Context, p CreateParams) (Order, error) {
	query := `
		INSERT INTO orders (
			order_number, customer_name, address, contact_phone, designer, salesperson,
			assignment_date, order_date, category_name, order_type,
			cabinet_area, wall_panel_area, order_amount, is_installation, remarks, order_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING` + orderColumns

	o, err := scanOrder(r.q.QueryRow(ctx, query,
		p.OrderNumber, p.CustomerName, p.Address, p.ContactPhone, p.Designer, p.Salesperson,
		p.AssignmentDate, p.OrderDate, p.CategoryName, p.OrderType,
		p.CabinetArea, p.WallPanelArea, p.OrderAmount, p.IsInstallation, p.Remarks, p.Status,
	))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Order{}, apperr.Conflict(fmt.Sprintf(orderDuplicateFormat, p.OrderNumber))
		}
		return Order{}, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}

// GetByID retrieves an order by its ID.
func (r *Repo) GetByID(ctx context.Context, id int64) (Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT`+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, apperr.NotFound(orderNotFoundMessage)
		}
		return Order{}, fmt.Errorf("get order by id: %w", err)
	}
	return o, nil
}

// GetByOrderNumber retrieves an order by its business key.
func (r *Repo) GetByOrderNumber(ctx context.Context, orderNumber string) (Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT`+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, apperr.NotFound(orderNotFoundMessage)
		}
		return Order{}, fmt.Errorf("get order by number: %w", err)
	}
	return o, nil
}

// Update applies the non-nil fields of p.
func (r *Repo) Update(ctx context.Context, id int64, p UpdateParams) (Order, error) {
	query := `
		UPDATE orders SET
			customer_name   = COALESCE($2, customer_name),
			address         = COALESCE($3, address),
			contact_phone   = COALESCE($4, contact_phone),
			designer        = COALESCE($5, designer),
			salesperson     = COALESCE($6, salesperson),
			assignment_date = COALESCE($7, assignment_date),
			order_date      = COALESCE($8, order_date),
			order_type      = COALESCE($9, order_type),
			cabinet_area    = COALESCE($10, cabinet_area),
			wall_panel_area = COALESCE($11, wall_panel_area),
			order_amount    = COALESCE($12, order_amount),
			is_installation = COALESCE($13, is_installation),
			remarks         = COALESCE($14, remarks),
			updated_at      = now()
		WHERE id = $1
		RETURNING` + orderColumns

	o, err := scanOrder(r.q.QueryRow(ctx, query, id,
		p.CustomerName, p.Address, p.ContactPhone, p.Designer, p.Salesperson,
		p.AssignmentDate, p.OrderDate, p.OrderType,
		p.CabinetArea, p.WallPanelArea, p.OrderAmount, p.IsInstallation, p.Remarks,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, apperr.NotFound(orderNotFoundMessage)
		}
		return Order{}, fmt.Errorf("update order: %w", err)
	}
	return o, nil
}

// UpdateStatus writes order_status.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.exec1(ctx, "update order status",
		`UPDATE orders SET order_status = $2, updated_at = now() WHERE id = $1`, id, status)
}

// UpdateCategoryName writes the authoritative category list.
func (r *Repo) UpdateCategoryName(ctx context.Context, id int64, categoryName string) error {
	return r.exec1(ctx, "update order categories",
		`UPDATE orders SET category_name = $2, updated_at = now() WHERE id = $1`, id, categoryName)
}

func (r *Repo) exec1(ctx context.Context, op, query string, args ...interface{}) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(orderNotFoundMessage)
	}
	return nil
}

// StatusesByNumbers returns order_status keyed by order_number.
func (r *Repo) StatusesByNumbers(ctx context.Context, orderNumbers []string) (map[string]string, error) {
	result := make(map[string]string, len(orderNumbers))
	if len(orderNumbers) == 0 {
		return result, nil
	}

	rows, err := r.q.Query(ctx, `SELECT order_number, order_status FROM orders WHERE order_number = ANY($1)`, orderNumbers)
	if err != nil {
		return nil, fmt.Errorf("order statuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var number, status string
		if err := rows.Scan(&number, &status); err != nil {
			return nil, fmt.Errorf("scan order status: %w", err)
		}
		result[number] = status
	}
	return result, rows.Err()
}

// ListCycleCandidates returns every order not yet placed.
func (r *Repo) ListCycleCandidates(ctx context.Context, placedStatus string) ([]CycleCandidate, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, assignment_date, design_cycle
		FROM orders
		WHERE order_status <> $1
		ORDER BY id`, placedStatus)
	if err != nil {
		return nil, fmt.Errorf("list design cycle candidates: %w", err)
	}
	defer rows.Close()

	items := make([]CycleCandidate, 0)
	for rows.Next() {
		var c CycleCandidate
		if err := rows.Scan(&c.ID, &c.AssignmentDate, &c.DesignCycle); err != nil {
			return nil, fmt.Errorf("scan design cycle candidate: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// UpdateDesignCycles writes design_cycle for many orders in one statement.
func (r *Repo) UpdateDesignCycles(ctx context.Context, ids []int64, days []int32) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE orders o
		SET design_cycle = v.days, updated_at = now()
		FROM unnest($1::bigint[], $2::int[]) AS v(id, days)
		WHERE o.id = v.id AND o.design_cycle IS DISTINCT FROM v.days`, ids, days)
	if err != nil {
		return 0, fmt.Errorf("update design cycles: %w", err)
	}
	return tag.RowsAffected(), nil
}
