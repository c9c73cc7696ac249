package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/identity"
	"github.com/tornado/portal/internal/domain/shared"
)

// PartnerUser links a portal user to a partner with a partner-scoped role.
// A user holds at most one active link at a time; resolution picks the oldest
// active row so duplicates created by racing writes stay deterministic.
type PartnerUser struct {
	shared.BaseAggregateRoot
	PartnerID uuid.UUID     `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	Role      identity.Role `gorm:"size:50;not null"`
	IsActive  bool          `gorm:"not null;default:true;index"`
}

// NewPartnerUser creates a new active membership link
func NewPartnerUser(partnerID, userID uuid.UUID, role identity.Role) (*PartnerUser, error) {
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if !role.IsPartnerScoped() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Membership role must be partner_admin, partner_user or partner_customer")
	}

	return &PartnerUser{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PartnerID:         partnerID,
		UserID:            userID,
		Role:              role,
		IsActive:          true,
	}, nil
}

// ChangeRole changes the partner-scoped role of the membership
func (m *PartnerUser) ChangeRole(role identity.Role) error {
	if !role.IsPartnerScoped() {
		return shared.NewDomainError("INVALID_ROLE", "Membership role must be partner_admin, partner_user or partner_customer")
	}
	m.Role = role
	m.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the membership. Rows stay behind for audit and
// foreign-key integrity.
func (m *PartnerUser) Deactivate() {
	m.IsActive = false
	m.UpdatedAt = time.Now()
}

// IsAdmin reports whether the membership carries the partner_admin role
func (m *PartnerUser) IsAdmin() bool {
	return m.Role == identity.RolePartnerAdmin
}

// PartnerUserRepository defines persistence operations for memberships
type PartnerUserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PartnerUser, error)
	// FindActiveByUser returns the user's single active membership, oldest
	// first when duplicates exist. shared.ErrNotFound when the user belongs
	// to no partner.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*PartnerUser, error)
	FindActiveByPartner(ctx context.Context, partnerID uuid.UUID) ([]PartnerUser, error)
	CountActiveAdmins(ctx context.Context, partnerID uuid.UUID) (int64, error)
	Save(ctx context.Context, membership *PartnerUser) error
}
