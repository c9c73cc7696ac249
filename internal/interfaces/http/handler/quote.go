package handler

import (
	"github.com/gin-gonic/gin"
	quotingapp "github.com/tornado/portal/internal/application/quoting"
)

// QuoteHandler handles quote lifecycle endpoints
type QuoteHandler struct {
	BaseHandler
	quoteService *quotingapp.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *quotingapp.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// Create creates a new draft quote with its lines priced on both tiers
func (h *QuoteHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req quotingapp.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.quoteService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single quote with its lines
func (h *QuoteHandler) Get(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	quoteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.quoteService.GetByID(c.Request.Context(), actor, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns quotes visible to the actor
func (h *QuoteHandler) List(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	filter := req.ToFilter()
	resp, err := h.quoteService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp, filter.Page, filter.PageSize, len(resp))
}

// Transition moves the quote through its lifecycle
func (h *QuoteHandler) Transition(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	quoteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req quotingapp.TransitionQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.quoteService.Transition(c.Request.Context(), actor, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a draft quote
func (h *QuoteHandler) Delete(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	quoteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.quoteService.Delete(c.Request.Context(), actor, quoteID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
