package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tornado/portal/internal/domain/shared"
)

func TestActor_ScopedPartnerID(t *testing.T) {
	partnerID := uuid.New()
	otherID := uuid.New()

	t.Run("privileged actor targets any named partner", func(t *testing.T) {
		actor := Actor{UserID: uuid.New(), Role: RoleProviderUser}

		resolved, err := actor.ScopedPartnerID(&otherID)
		require.NoError(t, err)
		assert.Equal(t, otherID, resolved)

		_, err = actor.ScopedPartnerID(nil)
		assert.Error(t, err)
	})

	t.Run("partner actor is pinned to own partner", func(t *testing.T) {
		actor := Actor{UserID: uuid.New(), Role: RolePartnerUser, PartnerID: &partnerID}

		resolved, err := actor.ScopedPartnerID(nil)
		require.NoError(t, err)
		assert.Equal(t, partnerID, resolved)

		resolved, err = actor.ScopedPartnerID(&partnerID)
		require.NoError(t, err)
		assert.Equal(t, partnerID, resolved)

		_, err = actor.ScopedPartnerID(&otherID)
		assert.ErrorIs(t, err, shared.ErrPartnerScope)
	})

	t.Run("unaffiliated partner actor is rejected", func(t *testing.T) {
		actor := Actor{UserID: uuid.New(), Role: RolePartnerAdmin}
		_, err := actor.ScopedPartnerID(nil)
		assert.Error(t, err)
	})
}

func TestActor_CanAccessPartner(t *testing.T) {
	partnerID := uuid.New()

	admin := Actor{UserID: uuid.New(), Role: RoleSuperAdmin}
	assert.True(t, admin.CanAccessPartner(partnerID))

	member := Actor{UserID: uuid.New(), Role: RolePartnerCustomer, PartnerID: &partnerID}
	assert.True(t, member.CanAccessPartner(partnerID))
	assert.False(t, member.CanAccessPartner(uuid.New()))

	stranger := Actor{UserID: uuid.New(), Role: RolePartnerUser}
	assert.False(t, stranger.CanAccessPartner(partnerID))
}

func TestActor_RequirePermission(t *testing.T) {
	actor := Actor{UserID: uuid.New(), Role: RolePartnerCustomer}
	assert.NoError(t, actor.RequirePermission(PermQuoteRespond))
	assert.ErrorIs(t, actor.RequirePermission(PermQuoteManage), shared.ErrForbidden)
}
