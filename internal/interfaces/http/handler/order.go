package handler

import (
	"github.com/gin-gonic/gin"
	orderingapp "github.com/tornado/portal/internal/application/ordering"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Convert converts an approved quote into a pending order
func (h *OrderHandler) Convert(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req orderingapp.ConvertQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.ConvertQuote(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single order with its items and status history
func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.orderService.GetByID(c.Request.Context(), actor, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByQuote returns the order converted from a quote
func (h *OrderHandler) GetByQuote(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	quoteID, ok := parseIDParam(c, "quoteId")
	if !ok {
		return
	}

	resp, err := h.orderService.GetByQuote(c.Request.Context(), actor, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns orders visible to the actor
func (h *OrderHandler) List(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	filter := req.ToFilter()
	resp, err := h.orderService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp, filter.Page, filter.PageSize, len(resp))
}

// UpdateStatus advances or cancels the order
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req orderingapp.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.UpdateStatus(c.Request.Context(), actor, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
