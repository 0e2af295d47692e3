package repository

import (
	"context"
	"fmt"

	"orderflow_backend/internal/stage"
)

// categoryList renders a production's category list from its sub-ledger.
const categoryList = `COALESCE((
	SELECT string_agg(pp.category_name, ',' ORDER BY pp.id)
	FROM production_progress pp
	WHERE pp.production_id = p.id
), '')`

// ListSummaries returns Production-stage list rows matching f, newest order
// number first. A nil page returns every match.
func (r *Repo) ListSummaries(ctx context.Context, f stage.ListFilter, page *stage.PageRequest) ([]stage.Summary, int, error) {
	baseQuery := `
		FROM productions p
		WHERE ($1::text IS NULL OR p.order_number ILIKE $1)
			AND ($2::text IS NULL OR p.customer_name ILIKE $2)
			AND ($3::text IS NULL OR p.designer ILIKE $3)
			AND ($4::text IS NULL OR p.splitter ILIKE $4)
			AND ` + stage.CategoryClause(categoryList, 5) + `
			AND ` + stage.StatusClause("p.order_status", 6)

	args := []interface{}{
		stage.ContainsPattern(f.OrderNumber),
		stage.ContainsPattern(f.CustomerName),
		stage.ContainsPattern(f.Designer),
		stage.ContainsPattern(f.Splitter),
		stage.NullableStrings(f.CategoryNames),
	}
	args = append(args, f.StatusArgs(stage.Production)...)

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count production summaries: %w", err)
	}

	var limit, offset interface{}
	if page != nil {
		limit, offset = page.PageSize, page.Offset()
	}

	selectQuery := `
		SELECT p.id, p.order_number, p.customer_name, p.address, p.designer, p.splitter,
			` + categoryList + `, p.order_status, p.split_order_date, p.created_at
		` + baseQuery + `
		ORDER BY p.order_number DESC
		LIMIT $10 OFFSET $11`
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list production summaries: %w", err)
	}
	defer rows.Close()

	items := make([]stage.Summary, 0)
	for rows.Next() {
		s := stage.Summary{Stage: stage.Production}
		if err := rows.Scan(&s.RecordID, &s.OrderNumber, &s.CustomerName, &s.Address, &s.Designer, &s.Splitter,
			&s.CategoryName, &s.Status, &s.OrderDate, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan production summary: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate production summaries: %w", err)
	}
	return items, total, nil
}
