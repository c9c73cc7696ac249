package identity

import (
	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/shared"
)

// Actor is the authenticated caller of an operation: the user, their role,
// and the partner their membership resolved to (nil for provider-side roles
// and unaffiliated users).
type Actor struct {
	UserID    uuid.UUID
	Role      Role
	PartnerID *uuid.UUID
}

// IsPrivileged reports whether the actor sees data across all partners
func (a Actor) IsPrivileged() bool {
	return a.Role.CanBypassPartnerIsolation()
}

// HasPermission reports whether the actor's role grants the permission
func (a Actor) HasPermission(permission string) bool {
	return a.Role.HasPermission(permission)
}

// RequirePermission returns ErrForbidden unless the actor's role grants the
// permission
func (a Actor) RequirePermission(permission string) error {
	if !a.Role.HasPermission(permission) {
		return shared.ErrForbidden
	}
	return nil
}

// ScopedPartnerID resolves the partner an operation must be scoped to.
// Privileged actors may target any partner via the requested ID; partner
// actors are pinned to their own partner and may not name another one.
func (a Actor) ScopedPartnerID(requested *uuid.UUID) (uuid.UUID, error) {
	if a.IsPrivileged() {
		if requested == nil {
			return uuid.Nil, shared.NewDomainError("MISSING_PARTNER", "A partner must be specified")
		}
		return *requested, nil
	}

	if a.PartnerID == nil {
		return uuid.Nil, shared.NewDomainError("NO_PARTNER", "User does not belong to a partner")
	}
	if requested != nil && *requested != *a.PartnerID {
		return uuid.Nil, shared.ErrPartnerScope
	}
	return *a.PartnerID, nil
}

// CanAccessPartner reports whether the actor may read data belonging to the
// given partner
func (a Actor) CanAccessPartner(partnerID uuid.UUID) bool {
	if a.IsPrivileged() {
		return true
	}
	return a.PartnerID != nil && *a.PartnerID == partnerID
}
