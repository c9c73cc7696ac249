package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/partner"
)

// CreatePartnerRequest represents a request to create a partner
type CreatePartnerRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	Code         string `json:"code" binding:"required,min=2,max=32"`
	ContactName  string `json:"contact_name" binding:"max=200"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email,max=255"`
	ContactPhone string `json:"contact_phone" binding:"max=50"`
}

// UpdatePartnerRequest represents a request to update a partner
type UpdatePartnerRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName  *string `json:"contact_name" binding:"omitempty,max=200"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email,max=255"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=50"`
}

// AddMemberRequest represents a request to link a user to a partner
type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Role   string    `json:"role" binding:"required,oneof=partner_admin partner_user partner_customer"`
}

// ChangeMemberRoleRequest represents a request to change a membership role
type ChangeMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=partner_admin partner_user partner_customer"`
}

// PartnerResponse represents a partner in API responses
type PartnerResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MemberResponse represents a partner membership in API responses
type MemberResponse struct {
	ID        uuid.UUID `json:"id"`
	PartnerID uuid.UUID `json:"partner_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPartnerResponse maps a partner aggregate to its response form
func ToPartnerResponse(p *partner.Partner) PartnerResponse {
	return PartnerResponse{
		ID:           p.ID,
		Name:         p.Name,
		Code:         p.Code,
		ContactName:  p.ContactName,
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToPartnerResponses maps a slice of partners
func ToPartnerResponses(partners []partner.Partner) []PartnerResponse {
	out := make([]PartnerResponse, len(partners))
	for i := range partners {
		out[i] = ToPartnerResponse(&partners[i])
	}
	return out
}

// ToMemberResponse maps a membership to its response form
func ToMemberResponse(m *partner.PartnerUser) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		PartnerID: m.PartnerID,
		UserID:    m.UserID,
		Role:      m.Role.String(),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

// ToMemberResponses maps a slice of memberships
func ToMemberResponses(members []partner.PartnerUser) []MemberResponse {
	out := make([]MemberResponse, len(members))
	for i := range members {
		out[i] = ToMemberResponse(&members[i])
	}
	return out
}
