package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"orderflow_backend/platform/apperr"
)

const eventColumns = `id, order_id, task_item, planned_date, actual_date, remarks, created_at, updated_at`

func scanEvent(row pgx.Row) (ProgressEvent, error) {
	var e ProgressEvent
	err := row.Scan(&e.ID, &e.OrderID, &e.TaskItem, &e.PlannedDate, &e.ActualDate, &e.Remarks, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// ListProgressEvents returns an order's events in creation order.
func (r *Repo) ListProgressEvents(ctx context.Context, orderID int64) ([]ProgressEvent, error) {
	rows, err := r.q.Query(ctx, `SELECT `+eventColumns+` FROM order_progress_events WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list progress events: %w", err)
	}
	defer rows.Close()

	items := make([]ProgressEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress event: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// CreateProgressEvent adds an event to an order.
func (r *Repo) CreateProgressEvent(ctx context.Context, orderID int64, p ProgressEventParams) (ProgressEvent, error) {
	taskItem, plannedDate := "", ""
	if p.TaskItem != nil {
		taskItem = *p.TaskItem
	}
	if p.PlannedDate != nil {
		plannedDate = *p.PlannedDate
	}

	e, err := scanEvent(r.q.QueryRow(ctx, `
		INSERT INTO order_progress_events (order_id, task_item, planned_date, actual_date, remarks)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+eventColumns, orderID, taskItem, plannedDate, p.ActualDate, p.Remarks))
	if err != nil {
		return ProgressEvent{}, fmt.Errorf("create progress event: %w", err)
	}
	return e, nil
}

// UpdateProgressEvent applies the non-nil fields of p to one event of orderID.
func (r *Repo) UpdateProgressEvent(ctx context.Context, orderID, eventID int64, p ProgressEventParams) (ProgressEvent, error) {
	e, err := scanEvent(r.q.QueryRow(ctx, `
		UPDATE order_progress_events SET
			task_item    = COALESCE($3, task_item),
			planned_date = COALESCE($4, planned_date),
			actual_date  = COALESCE($5, actual_date),
			remarks      = COALESCE($6, remarks),
			updated_at   = now()
		WHERE id = $2 AND order_id = $1
		RETURNING `+eventColumns, orderID, eventID, p.TaskItem, p.PlannedDate, p.ActualDate, p.Remarks))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProgressEvent{}, apperr.NotFound(eventNotFoundMessage)
		}
		return ProgressEvent{}, fmt.Errorf("update progress event: %w", err)
	}
	return e, nil
}

// DeleteProgressEvent removes one event of orderID.
func (r *Repo) DeleteProgressEvent(ctx context.Context, orderID, eventID int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM order_progress_events WHERE id = $2 AND order_id = $1`, orderID, eventID)
	if err != nil {
		return fmt.Errorf("delete progress event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(eventNotFoundMessage)
	}
	return nil
}

// UpsertProgressActualDate records actualDate on the first event whose task
// contains taskKeyword, creating an event named taskItem when none matches.
func (r *Repo) UpsertProgressActualDate(ctx context.Context, orderID int64, taskKeyword, taskItem, actualDate string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE order_progress_events SET actual_date = $3, updated_at = now()
		WHERE id = (
			SELECT id FROM order_progress_events
			WHERE order_id = $1 AND task_item ILIKE '%' || $2 || '%'
			ORDER BY id
			LIMIT 1
		)`, orderID, taskKeyword, actualDate)
	if err != nil {
		return fmt.Errorf("update %s event: %w", taskKeyword, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	_, err = r.q.Exec(ctx, `
		INSERT INTO order_progress_events (order_id, task_item, planned_date, actual_date)
		VALUES ($1, $2, $3, $3)`, orderID, taskItem, actualDate)
	if err != nil {
		return fmt.Errorf("insert %s event: %w", taskKeyword, err)
	}
	return nil
}
