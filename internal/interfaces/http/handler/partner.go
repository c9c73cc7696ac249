package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/tornado/portal/internal/application/partner"
)

// PartnerHandler handles partner organization and membership endpoints
type PartnerHandler struct {
	BaseHandler
	partnerService *partnerapp.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partnerService *partnerapp.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

// Create creates a new partner
func (h *PartnerHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req partnerapp.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.partnerService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single partner
func (h *PartnerHandler) Get(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	partnerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.partnerService.GetByID(c.Request.Context(), actor, partnerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns all active partners
func (h *PartnerHandler) List(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	filter := req.ToFilter()
	resp, err := h.partnerService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp, filter.Page, filter.PageSize, len(resp))
}

// Update updates a partner's name and contact details
func (h *PartnerHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	partnerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req partnerapp.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.partnerService.Update(c.Request.Context(), actor, partnerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deactivate soft-deletes a partner
func (h *PartnerHandler) Deactivate(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	partnerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.partnerService.Deactivate(c.Request.Context(), actor, partnerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddMember links a user to the partner
func (h *PartnerHandler) AddMember(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	partnerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req partnerapp.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.partnerService.AddMember(c.Request.Context(), actor, partnerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListMembers returns the partner's active memberships
func (h *PartnerHandler) ListMembers(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	partnerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.partnerService.ListMembers(c.Request.Context(), actor, partnerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ChangeMemberRole changes a membership's partner-scoped role
func (h *PartnerHandler) ChangeMemberRole(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	membershipID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	var req partnerapp.ChangeMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.partnerService.ChangeMemberRole(c.Request.Context(), actor, membershipID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveMember deactivates a membership
func (h *PartnerHandler) RemoveMember(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	membershipID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	if err := h.partnerService.RemoveMember(c.Request.Context(), actor, membershipID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
