package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tornado/portal/internal/domain/identity"
	"github.com/tornado/portal/internal/domain/shared/valueobject"
)

func TestNewPartner(t *testing.T) {
	t.Run("creates active partner and uppercases code", func(t *testing.T) {
		p, err := NewPartner("Acme Resellers", "acme-01")
		require.NoError(t, err)
		assert.Equal(t, "Acme Resellers", p.Name)
		assert.Equal(t, "ACME-01", p.Code)
		assert.True(t, p.IsActive)
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		_, err := NewPartner("", "ACME")
		assert.Error(t, err)

		_, err = NewPartner("Acme", "a")
		assert.Error(t, err)

		_, err = NewPartner("Acme", "has space")
		assert.Error(t, err)
	})
}

func TestPartner_Mutations(t *testing.T) {
	p, err := NewPartner("Acme", "ACME")
	require.NoError(t, err)

	p.UpdateContact(" Jane Doe ", "jane@acme.test", "+1-555-0100")
	assert.Equal(t, "Jane Doe", p.ContactName)
	assert.Equal(t, "jane@acme.test", p.ContactEmail)

	require.NoError(t, p.Rename("Acme Global"))
	assert.Equal(t, "Acme Global", p.Name)
	assert.Error(t, p.Rename("  "))

	p.Deactivate()
	assert.False(t, p.IsActive)
}

func TestNewPartnerUser(t *testing.T) {
	partnerID := uuid.New()
	userID := uuid.New()

	t.Run("accepts partner-scoped roles", func(t *testing.T) {
		for _, role := range []identity.Role{
			identity.RolePartnerAdmin,
			identity.RolePartnerUser,
			identity.RolePartnerCustomer,
		} {
			m, err := NewPartnerUser(partnerID, userID, role)
			require.NoError(t, err)
			assert.Equal(t, role, m.Role)
			assert.True(t, m.IsActive)
		}
	})

	t.Run("rejects provider-side roles", func(t *testing.T) {
		_, err := NewPartnerUser(partnerID, userID, identity.RoleSuperAdmin)
		assert.Error(t, err)
		_, err = NewPartnerUser(partnerID, userID, identity.RoleProviderUser)
		assert.Error(t, err)
	})

	t.Run("rejects empty ids", func(t *testing.T) {
		_, err := NewPartnerUser(uuid.Nil, userID, identity.RolePartnerUser)
		assert.Error(t, err)
		_, err = NewPartnerUser(partnerID, uuid.Nil, identity.RolePartnerUser)
		assert.Error(t, err)
	})
}

func TestPartnerUser_ChangeRole(t *testing.T) {
	m, err := NewPartnerUser(uuid.New(), uuid.New(), identity.RolePartnerAdmin)
	require.NoError(t, err)
	assert.True(t, m.IsAdmin())

	require.NoError(t, m.ChangeRole(identity.RolePartnerUser))
	assert.False(t, m.IsAdmin())

	assert.Error(t, m.ChangeRole(identity.RoleEndUser))
}

func TestNewPartnerPrice(t *testing.T) {
	partnerID := uuid.New()
	productID := uuid.New()

	t.Run("creates override", func(t *testing.T) {
		pp, err := NewPartnerPrice(partnerID, productID, valueobject.NewMoneyUSDFromFloat(85))
		require.NoError(t, err)
		assert.Equal(t, "85.00 USD", pp.Price.String())
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewPartnerPrice(partnerID, productID, valueobject.NewMoneyUSDFromFloat(-1))
		assert.Error(t, err)

		pp, err := NewPartnerPrice(partnerID, productID, valueobject.ZeroUSD())
		require.NoError(t, err)
		assert.Error(t, pp.UpdatePrice(valueobject.NewMoneyUSDFromFloat(-0.01)))
	})
}

func TestDerivePartnerPrice(t *testing.T) {
	// Flat 10% provider-to-partner discount when no override exists
	derived := DerivePartnerPrice(valueobject.NewMoneyUSDFromFloat(100))
	assert.Equal(t, "90.00 USD", derived.String())
}
