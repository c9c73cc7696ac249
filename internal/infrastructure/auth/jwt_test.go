package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tornado/portal/internal/domain/identity"
	"github.com/tornado/portal/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-that-is-long-enough-123",
		Expiration: expiration,
		Issuer:     "tornado-portal-test",
	})
}

func TestIssueAndValidate(t *testing.T) {
	service := newTestService(time.Hour)
	userID := uuid.New()
	partnerID := uuid.New()

	token, expiresAt, err := service.Issue(userID, identity.RolePartnerAdmin, &partnerID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := service.Validate(token)
	require.NoError(t, err)

	gotUser, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, "partner_admin", claims.Role)

	gotPartner, err := claims.GetPartnerUUID()
	require.NoError(t, err)
	require.NotNil(t, gotPartner)
	assert.Equal(t, partnerID, *gotPartner)
}

func TestProviderTokenCarriesNoPartner(t *testing.T) {
	service := newTestService(time.Hour)

	token, _, err := service.Issue(uuid.New(), identity.RoleProviderUser, nil)
	require.NoError(t, err)

	claims, err := service.Validate(token)
	require.NoError(t, err)

	gotPartner, err := claims.GetPartnerUUID()
	require.NoError(t, err)
	assert.Nil(t, gotPartner)
}

func TestExpiredToken(t *testing.T) {
	service := newTestService(-time.Minute)

	token, _, err := service.Issue(uuid.New(), identity.RoleSuperAdmin, nil)
	require.NoError(t, err)

	_, err = service.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTamperedToken(t *testing.T) {
	service := newTestService(time.Hour)
	other := newTestService(time.Hour)
	other.secret = []byte("a-completely-different-secret-value")

	token, _, err := other.Issue(uuid.New(), identity.RolePartnerUser, nil)
	require.NoError(t, err)

	_, err = service.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageToken(t *testing.T) {
	service := newTestService(time.Hour)

	_, err := service.Validate("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
