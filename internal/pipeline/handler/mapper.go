package handler

import (
	"time"

	orderssvc "orderflow_backend/internal/orders/service"
	"orderflow_backend/internal/pipeline/service"
	"orderflow_backend/internal/pipeline/transport"
	productionssvc "orderflow_backend/internal/productions/service"
	splitssvc "orderflow_backend/internal/splits/service"
	"orderflow_backend/internal/stage"
)

// ToListFilter converts the board query string into a list filter.
func ToListFilter(q transport.BoardQuery) (stage.ListFilter, error) {
	scope, err := stage.ParseStage(q.Stage)
	if err != nil {
		return stage.ListFilter{}, err
	}
	return stage.ListFilter{
		OrderNumber:       q.OrderNumber,
		CustomerName:      q.CustomerName,
		Designer:          q.Designer,
		Salesperson:       q.Salesperson,
		Splitter:          q.Splitter,
		OrderType:         q.OrderType,
		QuoteStatus:       q.QuoteStatus,
		CategoryNames:     q.CategoryNames,
		OrderStatusDetail: q.OrderStatusDetail,
		Stage:             scope,
		NoPagination:      q.NoPagination,
	}, nil
}

func toTransitionResponse(r service.UpdatedRecord) transport.TransitionResponse {
	cascades := make([]transport.CascadeResponse, 0, len(r.Cascades))
	for _, c := range r.Cascades {
		cascades = append(cascades, transport.CascadeResponse{
			From:        string(c.From),
			To:          string(c.To),
			OrderNumber: c.OrderNumber,
			RecordID:    c.RecordID,
			Created:     c.Created,
		})
	}
	return transport.TransitionResponse{
		Stage:       string(r.Stage),
		RecordID:    r.RecordID,
		OrderNumber: r.OrderNumber,
		OldStatus:   r.OldStatus,
		NewStatus:   r.NewStatus,
		Cascades:    cascades,
	}
}

func toReconcileResponse(r service.ReconcileResult) transport.ReconcileResponse {
	resp := transport.ReconcileResponse{
		Stage:        string(r.Stage),
		RecordID:     r.RecordID,
		OrderNumber:  r.OrderNumber,
		Added:        r.Added,
		Removed:      r.Removed,
		Kept:         r.Kept,
		CategoryName: r.CategoryName,
	}
	if r.Propagated != nil {
		propagated := toReconcileResponse(*r.Propagated)
		resp.Propagated = &propagated
	}
	return resp
}

// ToBoardItemResponse maps one unified list row.
func ToBoardItemResponse(s stage.Summary) transport.BoardItemResponse {
	return transport.BoardItemResponse{
		OrderNumber:     s.OrderNumber,
		Stage:           string(s.Stage),
		RecordID:        s.RecordID,
		CustomerName:    s.CustomerName,
		Address:         s.Address,
		Designer:        s.Designer,
		Salesperson:     s.Salesperson,
		Splitter:        s.Splitter,
		OrderType:       s.OrderType,
		CategoryName:    s.CategoryName,
		QuoteStatus:     s.QuoteStatus,
		Status:          s.Status,
		CompositeStatus: s.CompositeStatus,
		OrderDate:       s.OrderDate,
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
	}
}

func toBoardPageResponse(p stage.Page) transport.BoardPageResponse {
	items := make([]transport.BoardItemResponse, 0, len(p.Items))
	for _, s := range p.Items {
		items = append(items, ToBoardItemResponse(s))
	}
	return transport.BoardPageResponse{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
}

func toOverviewResponse(ov service.Overview) transport.OverviewResponse {
	resp := transport.OverviewResponse{
		OrderNumber:     ov.OrderNumber,
		CompositeStatus: ov.CompositeStatus,
		ProgressEvents:  orderssvc.ToEventResponses(ov.ProgressEvents),
		SplitItems:      splitssvc.ToItemResponses(ov.SplitItems),
		ProductionItems: productionssvc.ToItemResponses(ov.ProductionItems),
	}
	if ov.Order != nil {
		order := orderssvc.ToOrderResponse(*ov.Order)
		resp.Order = &order
	}
	if ov.Split != nil {
		split := splitssvc.ToSplitResponse(*ov.Split)
		resp.Split = &split
	}
	if ov.Production != nil {
		prod := productionssvc.ToProductionResponse(*ov.Production)
		resp.Production = &prod
	}
	if c := ov.Counters; c != nil {
		resp.Counters = &transport.CountersResponse{
			InternalItems:   c.InternalItems,
			Stored:          c.Stored,
			Materialed:      c.Materialed,
			ExternalItems:   c.ExternalItems,
			ExternalArrived: c.ExternalArrived,
			PurchaseStatus:  c.PurchaseStatus,
			PurchaseDetail:  c.PurchaseDetail,
		}
	}
	return resp
}
