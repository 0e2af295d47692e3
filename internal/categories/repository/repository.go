package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderflow_backend/platform/apperr"
	"orderflow_backend/platform/db"
)

const (
	categoryNotFoundMessage  = "category not found"
	categoryDuplicateMessage = "category name already exists"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new category repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a category. A duplicate name is reported as a conflict.
func (r *Repo) Create(ctx context.Context, name, categoryType string) (Category, error) {
	query := `
		INSERT INTO categories (name, category_type)
		VALUES ($1, $2)
		RETURNING id, name, category_type, created_at, updated_at`

	var c Category
	err := r.pool.QueryRow(ctx, query, name, categoryType).Scan(&c.ID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Category{}, apperr.Conflict(categoryDuplicateMessage)
		}
		return Category{}, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// GetByID retrieves a category by its ID.
func (r *Repo) GetByID(ctx context.Context, id int64) (Category, error) {
	query := `
		SELECT id, name, category_type, created_at, updated_at
		FROM categories
		WHERE id = $1`

	var c Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, apperr.NotFound(categoryNotFoundMessage)
		}
		return Category{}, fmt.Errorf("get category by id: %w", err)
	}
	return c, nil
}

// List retrieves categories ordered by name.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Category, error) {
	var nameParam interface{}
	if params.Name != nil && *params.Name != "" {
		nameParam = "%" + *params.Name + "%"
	}
	var typeParam interface{}
	if params.Type != nil && *params.Type != "" {
		typeParam = *params.Type
	}

	query := `
		SELECT id, name, category_type, created_at, updated_at
		FROM categories
		WHERE ($1::text IS NULL OR name ILIKE $1)
		  AND ($2::text IS NULL OR category_type = $2)
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, nameParam, typeParam)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return items, nil
}

// Update changes name and/or classification. Existing sub-ledger rows keep
// the item type they were created with.
func (r *Repo) Update(ctx context.Context, id int64, params UpdateParams) (Category, error) {
	query := `
		UPDATE categories
		SET name = COALESCE($2, name),
		    category_type = COALESCE($3, category_type),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, name, category_type, created_at, updated_at`

	var c Category
	err := r.pool.QueryRow(ctx, query, id, params.Name, params.Type).Scan(&c.ID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, apperr.NotFound(categoryNotFoundMessage)
		}
		if db.IsUniqueViolation(err) {
			return Category{}, apperr.Conflict(categoryDuplicateMessage)
		}
		return Category{}, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// Delete removes a category.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(categoryNotFoundMessage)
	}
	return nil
}

// TypesByName looks up the classification of each registered name.
func (r *Repo) TypesByName(ctx context.Context, names []string) (map[string]string, error) {
	result := make(map[string]string, len(names))
	if len(names) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT name, category_type FROM categories WHERE name = ANY($1)`, names)
	if err != nil {
		return nil, fmt.Errorf("lookup category types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, categoryType string
		if err := rows.Scan(&name, &categoryType); err != nil {
			return nil, fmt.Errorf("scan category type: %w", err)
		}
		result[name] = categoryType
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category types: %w", err)
	}
	return result, nil
}

// InsertMissing registers seed entries, leaving existing names untouched.
func (r *Repo) InsertMissing(ctx context.Context, entries []SeedEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inserted := 0
	for _, entry := range entries {
		tag, err := tx.Exec(ctx, `
			INSERT INTO categories (name, category_type)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING`, entry.Name, entry.Type)
		if err != nil {
			return 0, fmt.Errorf("seed category %q: %w", entry.Name, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit seed tx: %w", err)
	}
	return inserted, nil
}
