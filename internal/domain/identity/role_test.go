package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"super_admin", RoleSuperAdmin, true},
		{"Provider_User", RoleProviderUser, true},
		{"  partner_admin ", RolePartnerAdmin, true},
		{"PARTNER_CUSTOMER", RolePartnerCustomer, true},
		{"end_user", RoleEndUser, true},
		{"admin", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseRole(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_HasPermission(t *testing.T) {
	tests := []struct {
		role Role
		perm string
		want bool
	}{
		{RoleSuperAdmin, PermUserManage, true},
		{RoleSuperAdmin, PermOrderManage, true},
		{RoleProviderUser, PermQuoteManage, true},
		{RoleProviderUser, PermUserManage, false},
		{RolePartnerAdmin, PermQuoteCreate, true},
		{RolePartnerAdmin, PermQuoteManage, false},
		{RolePartnerAdmin, PermReportView, true},
		{RolePartnerUser, PermReportView, false},
		{RolePartnerUser, PermQuoteCreate, true},
		{RolePartnerCustomer, PermQuoteRespond, true},
		{RolePartnerCustomer, PermQuoteCreate, false},
		{RoleEndUser, PermQuoteRead, false},
		{Role("unknown"), PermQuoteRead, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+tt.perm, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.HasPermission(tt.perm))
		})
	}
}

func TestRole_CanManageRole(t *testing.T) {
	assert.True(t, RoleSuperAdmin.CanManageRole(RoleProviderUser))
	assert.True(t, RoleProviderUser.CanManageRole(RolePartnerAdmin))
	assert.True(t, RolePartnerAdmin.CanManageRole(RolePartnerUser))
	assert.True(t, RolePartnerUser.CanManageRole(RoleEndUser))
	assert.False(t, RolePartnerUser.CanManageRole(RolePartnerAdmin))
	assert.True(t, RoleSuperAdmin.CanManageRole(RoleSuperAdmin), "super admins administer their peers")
	assert.False(t, RoleProviderUser.CanManageRole(RoleProviderUser))
	assert.False(t, Role("unknown").CanManageRole(RoleEndUser))
	assert.False(t, RoleSuperAdmin.CanManageRole(Role("unknown")))
}

func TestRole_PartnerIsolation(t *testing.T) {
	assert.True(t, RoleSuperAdmin.CanBypassPartnerIsolation())
	assert.True(t, RoleProviderUser.CanBypassPartnerIsolation())
	assert.False(t, RolePartnerAdmin.CanBypassPartnerIsolation())
	assert.False(t, RolePartnerCustomer.CanBypassPartnerIsolation())

	assert.True(t, RolePartnerAdmin.IsPartnerScoped())
	assert.True(t, RolePartnerUser.IsPartnerScoped())
	assert.True(t, RolePartnerCustomer.IsPartnerScoped())
	assert.False(t, RoleProviderUser.IsPartnerScoped())

	assert.True(t, RolePartnerAdmin.IsPartnerStaff())
	assert.True(t, RolePartnerUser.IsPartnerStaff())
	assert.False(t, RolePartnerCustomer.IsPartnerStaff())
}

func TestRole_Permissions_ReturnsCopy(t *testing.T) {
	perms := RolePartnerUser.Permissions()
	perms[0] = "tampered"
	assert.NotContains(t, RolePartnerUser.Permissions(), "tampered")
}
