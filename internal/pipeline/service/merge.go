package service

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"orderflow_backend/internal/stage"
)

// ListMerged returns the unified order list. With a stage in the filter the
// list is that stage's rows with statuses frozen to it; otherwise the three
// stages are merged, one row per order number, with Design taking precedence
// over Split and Split over Production. Read failures yield an empty page.
func (s *Service) ListMerged(ctx context.Context, f stage.ListFilter, page, pageSize int) stage.Page {
	f = f.Normalize()
	req := stage.NormalizePage(page, pageSize)

	var (
		result stage.Page
		err    error
	)
	if f.Stage.Valid() {
		result, err = s.listStage(ctx, f, req)
	} else {
		result, err = s.listAllStages(ctx, f, req)
	}
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("list merged orders", err)
		return stage.EmptyPage(req)
	}
	return result
}

func (s *Service) listStage(ctx context.Context, f stage.ListFilter, req stage.PageRequest) (stage.Page, error) {
	if f.Excludes(f.Stage) {
		return finishPage(nil, 0, f.NoPagination, req), nil
	}

	var window *stage.PageRequest
	if !f.NoPagination {
		window = &req
	}

	var (
		items []stage.Summary
		total int
	)
	err := s.runner.InReadTx(ctx, func(uow UnitOfWork) error {
		var err error
		items, total, err = uow.summaries(f.Stage).ListSummaries(ctx, f, window)
		return err
	})
	if err != nil {
		return stage.Page{}, err
	}

	for i := range items {
		items[i].CompositeStatus = f.Stage.Qualify(items[i].Status)
	}
	return finishPage(items, total, f.NoPagination, req), nil
}

func (s *Service) listAllStages(ctx context.Context, f stage.ListFilter, req stage.PageRequest) (stage.Page, error) {
	perStage := make([][]stage.Summary, len(stage.Ordered))

	g, gctx := errgroup.WithContext(ctx)
	for i, st := range stage.Ordered {
		i, st := i, st
		if f.Excludes(st) {
			continue
		}
		g.Go(func() error {
			return s.runner.InReadTx(gctx, func(uow UnitOfWork) error {
				rows, _, err := uow.summaries(st).ListSummaries(gctx, f, nil)
				if err != nil {
					return err
				}
				perStage[i] = rows
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return stage.Page{}, err
	}

	merged := mergeSummaries(perStage...)
	total := len(merged)

	window := merged
	if !f.NoPagination {
		window = paginate(merged, req)
	}

	numbers := make([]string, 0, len(window))
	for _, item := range window {
		numbers = append(numbers, item.OrderNumber)
	}
	composite := s.ResolveMany(ctx, numbers, "")
	for i := range window {
		if status, ok := composite[window[i].OrderNumber]; ok {
			window[i].CompositeStatus = status
		} else {
			window[i].CompositeStatus = window[i].Stage.Qualify(window[i].Status)
		}
	}
	return finishPage(window, total, f.NoPagination, req), nil
}

// mergeSummaries keeps the first row seen per order number, taking the
// inputs in precedence order, and sorts by order number descending.
func mergeSummaries(perStage ...[]stage.Summary) []stage.Summary {
	seen := make(map[string]struct{})
	merged := make([]stage.Summary, 0)
	for _, rows := range perStage {
		for _, row := range rows {
			if _, ok := seen[row.OrderNumber]; ok {
				continue
			}
			seen[row.OrderNumber] = struct{}{}
			merged = append(merged, row)
		}
	}
	slices.SortStableFunc(merged, func(a, b stage.Summary) int {
		return strings.Compare(b.OrderNumber, a.OrderNumber)
	})
	return merged
}

func paginate(items []stage.Summary, req stage.PageRequest) []stage.Summary {
	start := req.Offset()
	if start < 0 || start >= len(items) {
		return []stage.Summary{}
	}
	end := min(start+req.PageSize, len(items))
	return items[start:end]
}

func finishPage(items []stage.Summary, total int, noPagination bool, req stage.PageRequest) stage.Page {
	if items == nil {
		items = []stage.Summary{}
	}
	if noPagination {
		totalPages := 0
		if total > 0 {
			totalPages = 1
		}
		return stage.Page{Items: items, Total: total, Page: 1, PageSize: total, TotalPages: totalPages}
	}
	return stage.Page{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: stage.TotalPages(total, req.PageSize),
	}
}
