package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"orderflow_backend/platform/apperr"
	"orderflow_backend/platform/db"
)

const splitNotFoundMessage = "split not found"

const splitColumns = `
	id, order_number, customer_name, address, contact_phone, order_date, designer, salesperson,
	order_amount::float8, cabinet_area::float8, wall_panel_area::float8, order_type, is_installation,
	category_name, splitter, quote_status, customer_payment_date, completion_date, remarks,
	order_status, created_at, updated_at`

// Repo implements split persistence over a pool or a transaction.
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

func scanSplit(row pgx.Row) (Split, error) {
	var s Split
	err := row.Scan(
		&s.ID, &s.OrderNumber, &s.CustomerName, &s.Address, &s.ContactPhone, &s.OrderDate, &s.Designer, &s.Salesperson,
		&s.OrderAmount, &s.CabinetArea, &s.WallPanelArea, &s.OrderType, &s.IsInstallation,
		&s.CategoryName, &s.Splitter, &s.QuoteStatus, &s.CustomerPaymentDate, &s.CompletionDate, &s.Remarks,
		&s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// CreateIfAbsent inserts a Split unless one already exists for the order
// number. created is false when the row existed.
func (r *Repo) CreateIfAbsent(ctx context.Context, p CreateParams) (s Split, created bool, err error) {
	query := `
		INSERT INTO splits (
			order_number, customer_name, address, contact_phone, order_date, designer, salesperson,
			order_amount, cabinet_area, wall_panel_area, order_type, is_installation,
			category_name, quote_status, customer_payment_date, order_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (order_number) DO NOTHING
		RETURNING` + splitColumns

	s, err = scanSplit(r.q.QueryRow(ctx, query,
		p.OrderNumber, p.CustomerName, p.Address, p.ContactPhone, p.OrderDate, p.Designer, p.Salesperson,
		p.OrderAmount, p.CabinetArea, p.WallPanelArea, p.OrderType, p.IsInstallation,
		p.CategoryName, p.QuoteStatus, p.CustomerPaymentDate, p.Status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || db.IsUniqueViolation(err) {
			return Split{}, false, nil
		}
		return Split{}, false, fmt.Errorf("create split: %w", err)
	}
	return s, true, nil
}

// GetByID retrieves a split by its ID.
func (r *Repo) GetByID(ctx context.Context, id int64) (Split, error) {
	s, err := scanSplit(r.q.QueryRow(ctx, `SELECT`+splitColumns+` FROM splits WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Split{}, apperr.NotFound(splitNotFoundMessage)
		}
		return Split{}, fmt.Errorf("get split by id: %w", err)
	}
	return s, nil
}

// GetByOrderNumber retrieves the split of an order.
func (r *Repo) GetByOrderNumber(ctx context.Context, orderNumber string) (Split, error) {
	s, err := scanSplit(r.q.QueryRow(ctx, `SELECT`+splitColumns+` FROM splits WHERE order_number = $1`, orderNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Split{}, apperr.NotFound(splitNotFoundMessage)
		}
		return Split{}, fmt.Errorf("get split by number: %w", err)
	}
	return s, nil
}

// Update applies the non-nil fields of p.
func (r *Repo) Update(ctx context.Context, id int64, p UpdateParams) (Split, error) {
	query := `
		UPDATE splits SET
			customer_name   = COALESCE($2, customer_name),
			address         = COALESCE($3, address),
			contact_phone   = COALESCE($4, contact_phone),
			splitter        = COALESCE($5, splitter),
			order_amount    = COALESCE($6, order_amount),
			completion_date = COALESCE($7, completion_date),
			remarks         = COALESCE($8, remarks),
			updated_at      = now()
		WHERE id = $1
		RETURNING` + splitColumns

	s, err := scanSplit(r.q.QueryRow(ctx, query, id,
		p.CustomerName, p.Address, p.ContactPhone, p.Splitter, p.OrderAmount, p.CompletionDate, p.Remarks))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Split{}, apperr.NotFound(splitNotFoundMessage)
		}
		return Split{}, fmt.Errorf("update split: %w", err)
	}
	return s, nil
}

// UpdateStatus writes order_status.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.exec1(ctx, "update split status",
		`UPDATE splits SET order_status = $2, updated_at = now() WHERE id = $1`, id, status)
}

// UpdateCategoryName writes the joined sub-ledger category list.
func (r *Repo) UpdateCategoryName(ctx context.Context, id int64, categoryName string) error {
	return r.exec1(ctx, "update split categories",
		`UPDATE splits SET category_name = $2, updated_at = now() WHERE id = $1`, id, categoryName)
}

// UpdateQuote writes quote_status and, when paymentDate is non-nil, the
// customer payment date.
func (r *Repo) UpdateQuote(ctx context.Context, id int64, quoteStatus string, paymentDate *string) error {
	return r.exec1(ctx, "update split quote", `
		UPDATE splits SET
			quote_status = $2,
			customer_payment_date = COALESCE($3, customer_payment_date),
			updated_at = now()
		WHERE id = $1`, id, quoteStatus, paymentDate)
}

func (r *Repo) exec1(ctx context.Context, op, query string, args ...interface{}) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(splitNotFoundMessage)
	}
	return nil
}

// StatusesByNumbers returns order_status keyed by order_number.
func (r *Repo) StatusesByNumbers(ctx context.Context, orderNumbers []string) (map[string]string, error) {
	result := make(map[string]string, len(orderNumbers))
	if len(orderNumbers) == 0 {
		return result, nil
	}

	rows, err := r.q.Query(ctx, `SELECT order_number, order_status FROM splits WHERE order_number = ANY($1)`, orderNumbers)
	if err != nil {
		return nil, fmt.Errorf("split statuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var number, status string
		if err := rows.Scan(&number, &status); err != nil {
			return nil, fmt.Errorf("scan split status: %w", err)
		}
		result[number] = status
	}
	return result, rows.Err()
}
