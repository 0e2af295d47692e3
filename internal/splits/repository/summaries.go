package repository

import (
	"context"
	"fmt"

	"orderflow_backend/internal/stage"
)

// ListSummaries returns Split-stage list rows matching f, newest order
// number first. A nil page returns every match.
func (r *Repo) ListSummaries(ctx context.Context, f stage.ListFilter, page *stage.PageRequest) ([]stage.Summary, int, error) {
	baseQuery := `
		FROM splits
		WHERE ($1::text IS NULL OR order_number ILIKE $1)
			AND ($2::text IS NULL OR customer_name ILIKE $2)
			AND ($3::text IS NULL OR designer ILIKE $3)
			AND ($4::text IS NULL OR salesperson ILIKE $4)
			AND ($5::text IS NULL OR splitter ILIKE $5)
			AND ($6::text IS NULL OR order_type = $6)
			AND ($7::text[] IS NULL OR quote_status = ANY($7::text[]))
			AND ` + stage.CategoryClause("category_name", 8) + `
			AND ` + stage.StatusClause("order_status", 9)

	args := []interface{}{
		stage.ContainsPattern(f.OrderNumber),
		stage.ContainsPattern(f.CustomerName),
		stage.ContainsPattern(f.Designer),
		stage.ContainsPattern(f.Salesperson),
		stage.ContainsPattern(f.Splitter),
		stage.NullableString(f.OrderType),
		stage.NullableStrings(f.QuoteStatus),
		stage.NullableStrings(f.CategoryNames),
	}
	args = append(args, f.StatusArgs(stage.Split)...)

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count split summaries: %w", err)
	}

	var limit, offset interface{}
	if page != nil {
		limit, offset = page.PageSize, page.Offset()
	}

	selectQuery := `
		SELECT id, order_number, customer_name, address, designer, salesperson, splitter, order_type,
			category_name, quote_status, order_status, order_date, created_at
		` + baseQuery + `
		ORDER BY order_number DESC
		LIMIT $13 OFFSET $14`
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list split summaries: %w", err)
	}
	defer rows.Close()

	items := make([]stage.Summary, 0)
	for rows.Next() {
		s := stage.Summary{Stage: stage.Split}
		var orderType, quoteStatus string
		if err := rows.Scan(&s.RecordID, &s.OrderNumber, &s.CustomerName, &s.Address, &s.Designer, &s.Salesperson,
			&s.Splitter, &orderType, &s.CategoryName, &quoteStatus, &s.Status, &s.OrderDate, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan split summary: %w", err)
		}
		s.OrderType = &orderType
		s.QuoteStatus = &quoteStatus
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate split summaries: %w", err)
	}
	return items, total, nil
}
