// Package transport holds the request and response types of the stage
// pipeline endpoints.
package transport

import (
	orderstransport "orderflow_backend/internal/orders/transport"
	productionstransport "orderflow_backend/internal/productions/transport"
	splitstransport "orderflow_backend/internal/splits/transport"
)

// StatusTransitionRequest moves a stage record to a new status.
type StatusTransitionRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

// ReconcileCategoriesRequest replaces the category list of a stage record.
// CategoryName is a comma separated list; full-width commas are accepted.
type ReconcileCategoriesRequest struct {
	CategoryName string `json:"categoryName" validate:"max=1000"`
	Scope        string `json:"scope,omitempty" validate:"omitempty,oneof=internal external"`
}

// SplitQuoteRequest updates the quote state of a split.
type SplitQuoteRequest struct {
	QuoteStatus string  `json:"quoteStatus" validate:"required,oneof=paid unpaid"`
	PaymentDate *string `json:"paymentDate,omitempty" validate:"omitempty,date"`
}

// BatchRecomputeRequest lists the productions to recompute.
type BatchRecomputeRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,max=500,dive,gt=0"`
}

// BoardQuery is the query string of the unified order list.
type BoardQuery struct {
	OrderNumber       *string  `form:"orderNumber"`
	CustomerName      *string  `form:"customerName"`
	Designer          *string  `form:"designer"`
	Salesperson       *string  `form:"salesperson"`
	Splitter          *string  `form:"splitter"`
	OrderType         *string  `form:"orderType"`
	QuoteStatus       []string `form:"quoteStatus"`
	CategoryNames     []string `form:"categoryName"`
	OrderStatusDetail []string `form:"orderStatusDetail"`
	Stage             string   `form:"stage" validate:"omitempty,oneof=design split production"`
	Page              int      `form:"page" validate:"omitempty,min=1,max=1000000"`
	PageSize          int      `form:"pageSize" validate:"omitempty,min=1"`
	NoPagination      bool     `form:"noPagination"`
}

// CascadeResponse describes one downstream creation attempt.
type CascadeResponse struct {
	From        string `json:"from"`
	To          string `json:"to"`
	OrderNumber string `json:"orderNumber"`
	RecordID    int64  `json:"recordId,omitempty"`
	Created     bool   `json:"created"`
}

// TransitionResponse is the outcome of a status change.
type TransitionResponse struct {
	Stage       string            `json:"stage"`
	RecordID    int64             `json:"recordId"`
	OrderNumber string            `json:"orderNumber"`
	OldStatus   string            `json:"oldStatus"`
	NewStatus   string            `json:"newStatus"`
	Cascades    []CascadeResponse `json:"cascades"`
}

// ReconcileResponse reports what a category reconciliation changed.
type ReconcileResponse struct {
	Stage        string             `json:"stage"`
	RecordID     int64              `json:"recordId"`
	OrderNumber  string             `json:"orderNumber"`
	Added        []string           `json:"added"`
	Removed      []string           `json:"removed"`
	Kept         []string           `json:"kept"`
	CategoryName string             `json:"categoryName"`
	Propagated   *ReconcileResponse `json:"propagated,omitempty"`
}

// RecomputeResponse is the stored status after a recompute.
type RecomputeResponse struct {
	ProductionID int64  `json:"productionId"`
	Status       string `json:"status"`
}

// BatchRecomputeResponse maps production IDs to their new status, or "failed".
type BatchRecomputeResponse struct {
	Results map[int64]string `json:"results"`
}

// CompositeStatusResponse is the composite status of an order.
type CompositeStatusResponse struct {
	OrderNumber     string `json:"orderNumber"`
	CompositeStatus string `json:"compositeStatus"`
}

// BoardItemResponse is one row of the unified order list.
type BoardItemResponse struct {
	OrderNumber     string  `json:"orderNumber"`
	Stage           string  `json:"stage"`
	RecordID        int64   `json:"recordId"`
	CustomerName    string  `json:"customerName"`
	Address         string  `json:"address"`
	Designer        *string `json:"designer,omitempty"`
	Salesperson     *string `json:"salesperson,omitempty"`
	Splitter        *string `json:"splitter,omitempty"`
	OrderType       *string `json:"orderType,omitempty"`
	CategoryName    string  `json:"categoryName"`
	QuoteStatus     *string `json:"quoteStatus,omitempty"`
	Status          string  `json:"status"`
	CompositeStatus string  `json:"compositeStatus"`
	OrderDate       *string `json:"orderDate,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// BoardPageResponse is a page of the unified order list.
type BoardPageResponse struct {
	Items      []BoardItemResponse `json:"items"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`
}

// CountersResponse summarizes a production sub-ledger.
type CountersResponse struct {
	InternalItems   int    `json:"internalItems"`
	Stored          int    `json:"stored"`
	Materialed      int    `json:"materialed"`
	ExternalItems   int    `json:"externalItems"`
	ExternalArrived int    `json:"externalArrived"`
	PurchaseStatus  string `json:"purchaseStatus,omitempty"`
	PurchaseDetail  string `json:"purchaseDetail"`
}

// OverviewResponse is every stage record of one order.
type OverviewResponse struct {
	OrderNumber     string                                        `json:"orderNumber"`
	CompositeStatus string                                        `json:"compositeStatus"`
	Order           *orderstransport.OrderResponse                `json:"order,omitempty"`
	ProgressEvents  []orderstransport.ProgressEventResponse       `json:"progressEvents"`
	Split           *splitstransport.SplitResponse                `json:"split,omitempty"`
	SplitItems      []splitstransport.SplitItemResponse           `json:"splitItems"`
	Production      *productionstransport.ProductionResponse      `json:"production,omitempty"`
	ProductionItems []productionstransport.ProductionItemResponse `json:"productionItems"`
	Counters        *CountersResponse                             `json:"counters,omitempty"`
}
