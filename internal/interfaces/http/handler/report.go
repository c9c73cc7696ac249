package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/tornado/portal/internal/application/report"
)

// ReportHandler handles analytics dashboard endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ProviderDashboard returns the cross-partner provider view
func (h *ReportHandler) ProviderDashboard(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var query reportapp.DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reportService.ProviderDashboard(c.Request.Context(), actor, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// PartnerDashboard returns a partner-scoped view. Privileged callers name the
// partner with the partner_id query parameter; partner actors get their own.
func (h *ReportHandler) PartnerDashboard(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var query reportapp.DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var requestedPartner *uuid.UUID
	if raw := c.Query("partner_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid partner_id parameter")
			return
		}
		requestedPartner = &id
	}

	resp, err := h.reportService.PartnerDashboard(c.Request.Context(), actor, requestedPartner, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
