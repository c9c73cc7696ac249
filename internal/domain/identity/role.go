package identity

import "strings"

// Role is the closed set of portal roles. Role checks go through the methods
// on this type; call sites must not compare raw strings.
type Role string

const (
	RoleSuperAdmin      Role = "super_admin"
	RoleProviderUser    Role = "provider_user"
	RolePartnerAdmin    Role = "partner_admin"
	RolePartnerUser     Role = "partner_user"
	RolePartnerCustomer Role = "partner_customer"
	RoleEndUser         Role = "end_user"
)

// Permission codes follow the resource:action pattern
const (
	PermUserManage    = "user:manage"
	PermPartnerManage = "partner:manage"
	PermProductManage = "product:manage"
	PermProductRead   = "product:read"
	PermQuoteCreate   = "quote:create"
	PermQuoteManage   = "quote:manage"
	PermQuoteRead     = "quote:read"
	PermQuoteRespond  = "quote:respond"
	PermOrderManage   = "order:manage"
	PermOrderRead     = "order:read"
	PermReportView    = "report:view"
)

// rolePermissions is the static grant table. There is no dynamic grant or
// revoke at runtime; an unknown role holds no permissions.
var rolePermissions = map[Role][]string{
	RoleSuperAdmin: {
		PermUserManage, PermPartnerManage, PermProductManage, PermProductRead,
		PermQuoteCreate, PermQuoteManage, PermQuoteRead,
		PermOrderManage, PermOrderRead, PermReportView,
	},
	RoleProviderUser: {
		PermPartnerManage, PermProductManage, PermProductRead,
		PermQuoteCreate, PermQuoteManage, PermQuoteRead,
		PermOrderManage, PermOrderRead, PermReportView,
	},
	RolePartnerAdmin: {
		PermProductRead,
		PermQuoteCreate, PermQuoteRead,
		PermOrderRead, PermReportView,
	},
	RolePartnerUser: {
		PermProductRead,
		PermQuoteCreate, PermQuoteRead,
		PermOrderRead,
	},
	RolePartnerCustomer: {
		PermQuoteRead, PermQuoteRespond, PermOrderRead,
	},
	RoleEndUser: {},
}

// roleRank expresses the fixed management hierarchy. Higher outranks lower.
var roleRank = map[Role]int{
	RoleSuperAdmin:      5,
	RoleProviderUser:    4,
	RolePartnerAdmin:    3,
	RolePartnerUser:     2,
	RolePartnerCustomer: 1,
	RoleEndUser:         0,
}

// ParseRole parses a role string (case-insensitive). Returns false for
// anything outside the closed set.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := roleRank[r]; !ok {
		return "", false
	}
	return r, true
}

// IsValid reports whether the role belongs to the closed set
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// HasPermission reports whether the role grants the permission. Exact match
// only; unknown roles hold nothing.
func (r Role) HasPermission(permission string) bool {
	for _, p := range rolePermissions[r] {
		if p == permission {
			return true
		}
	}
	return false
}

// Permissions returns a copy of the role's grant set
func (r Role) Permissions() []string {
	perms := rolePermissions[r]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// CanManageRole reports whether this role may administer accounts holding
// the target role. Super admins manage everyone, their peers included; every
// other role must strictly outrank the target.
func (r Role) CanManageRole(target Role) bool {
	mine, ok := roleRank[r]
	if !ok {
		return false
	}
	theirs, ok := roleRank[target]
	if !ok {
		return false
	}
	if r == RoleSuperAdmin {
		return true
	}
	return mine > theirs
}

// CanBypassPartnerIsolation reports whether the role sees data across all
// partners. True only for provider-side roles.
func (r Role) CanBypassPartnerIsolation() bool {
	return r == RoleSuperAdmin || r == RoleProviderUser
}

// IsPartnerScoped reports whether the role's data access is confined to the
// partner the user belongs to
func (r Role) IsPartnerScoped() bool {
	return r == RolePartnerAdmin || r == RolePartnerUser || r == RolePartnerCustomer
}

// IsPartnerStaff reports whether the role is a partner-side authoring role
// (the roles whose quote lines must carry an explicit customer price)
func (r Role) IsPartnerStaff() bool {
	return r == RolePartnerAdmin || r == RolePartnerUser
}
