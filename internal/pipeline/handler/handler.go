package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orderflow_backend/internal/ledger"
	"orderflow_backend/internal/pipeline/service"
	"orderflow_backend/internal/pipeline/transport"
	productionsrepo "orderflow_backend/internal/productions/repository"
	productionsservice "orderflow_backend/internal/productions/service"
	productionstransport "orderflow_backend/internal/productions/transport"
	"orderflow_backend/internal/stage"
	"orderflow_backend/platform/httpkit"
	"orderflow_backend/platform/validator"
)

// Handler serves the cross-stage endpoints: status transitions, category
// reconciliation, production recompute and the unified order board.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new pipeline handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Transition returns the status endpoint of a stage.
// PUT /api/v1/{orders|splits|productions}/:id/status
func (h *Handler) Transition(st stage.Stage) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := httpkit.ParseIDParam(c, "id")
		if !ok {
			return
		}

		var req transport.StatusTransitionRequest
		if !h.bind(c, &req) {
			return
		}

		result, err := h.svc.ApplyStatusTransition(c.Request.Context(), st, id, req.Status)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.OK(c, toTransitionResponse(result))
	}
}

// Reconcile returns the category list endpoint of a stage.
// PUT /api/v1/{orders|splits|productions}/:id/categories
func (h *Handler) Reconcile(st stage.Stage) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := httpkit.ParseIDParam(c, "id")
		if !ok {
			return
		}

		var req transport.ReconcileCategoriesRequest
		if !h.bind(c, &req) {
			return
		}

		result, err := h.svc.ReconcileCategories(c.Request.Context(), st, id, req.CategoryName, ledger.Scope(req.Scope))
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.OK(c, toReconcileResponse(result))
	}
}

// PlaceSplitOrder places a split, its order and creates the production.
// POST /api/v1/splits/:id/place-order
func (h *Handler) PlaceSplitOrder(c *gin.Context) {
	id, ok := httpkit.ParseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.svc.PlaceSplitOrder(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toTransitionResponse(result))
}

// UpdateSplitQuote sets the quote status of a split.
// PUT /api/v1/splits/:id/quote
func (h *Handler) UpdateSplitQuote(c *gin.Context) {
	id, ok := httpkit.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req transport.SplitQuoteRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.svc.UpdateSplitQuote(c.Request.Context(), id, req.QuoteStatus, req.PaymentDate); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateProduction edits production fields and recomputes its status.
// PUT /api/v1/productions/:id
func (h *Handler) UpdateProduction(c *gin.Context) {
	id, ok := httpkit.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req productionstransport.UpdateProductionRequest
	if !h.bind(c, &req) {
		return
	}

	prod, err := h.svc.UpdateProduction(c.Request.Context(), id, productionsrepo.UpdateParams{
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		Board18:              req.Board18,
		Board09:              req.Board09,
		CuttingDate:          req.CuttingDate,
		ExpectedShippingDate: req.ExpectedShippingDate,
		ActualDeliveryDate:   req.ActualDeliveryDate,
		Remarks:              req.Remarks,
		SpecialNotes:         req.SpecialNotes,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, productionsservice.ToProductionResponse(prod))
}

// UpdateProductionItem edits a production item and recomputes the status.
// PUT /api/v1/productions/:id/items/:itemId
func (h *Handler) UpdateProductionItem(c *gin.Context) {
	id, ok := httpkit.ParseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := httpkit.ParseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req productionstransport.UpdateProductionItemRequest
	if !h.bind(c, &req) {
		return
	}

	item, err := h.svc.UpdateProductionItem(c.Request.Context(), id, itemID, productionsrepo.ItemParams{
		ExpectedMaterialDate: req.ExpectedMaterialDate,
		ActualStorageDate:    req.ActualStorageDate,
		StorageTime:          req.StorageTime,
		Quantity:             req.Quantity,
		ExpectedArrivalDate:  req.ExpectedArrivalDate,
		ActualArrivalDate:    req.ActualArrivalDate,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, productionsservice.ToItemResponse(item))
}

// RecomputeProduction re-derives the status of one production.
// POST /api/v1/productions/:id/recompute
func (h *Handler) RecomputeProduction(c *gin.Context) {
	id, ok := httpkit.ParseIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.svc.RecomputeProductionStatus(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.RecomputeResponse{ProductionID: id, Status: status})
}

// BatchRecompute re-derives the status of many productions.
// POST /api/v1/admin/productions/recompute
func (h *Handler) BatchRecompute(c *gin.Context) {
	var req transport.BatchRecomputeRequest
	if !h.bind(c, &req) {
		return
	}
	httpkit.OK(c, transport.BatchRecomputeResponse{Results: h.svc.BatchValidate(c.Request.Context(), req.IDs)})
}

// Board lists orders across all stages.
// GET /api/v1/board
func (h *Handler) Board(c *gin.Context) {
	var q transport.BoardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	filter, err := ToListFilter(q)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	httpkit.OK(c, toBoardPageResponse(h.svc.ListMerged(c.Request.Context(), filter, q.Page, q.PageSize)))
}

// CompositeStatus returns the composite status of an order.
// GET /api/v1/board/:orderNumber/status
func (h *Handler) CompositeStatus(c *gin.Context) {
	orderNumber := c.Param("orderNumber")
	scope, err := stage.ParseStage(c.Query("stage"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	httpkit.OK(c, transport.CompositeStatusResponse{
		OrderNumber:     orderNumber,
		CompositeStatus: h.svc.ResolveStatus(c.Request.Context(), orderNumber, scope),
	})
}

// Overview returns every stage record of an order.
// GET /api/v1/board/:orderNumber/overview
func (h *Handler) Overview(c *gin.Context) {
	ov, err := h.svc.GetOverview(c.Request.Context(), c.Param("orderNumber"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toOverviewResponse(ov))
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}
