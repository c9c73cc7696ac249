package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tornado/portal/internal/domain/identity"
	"github.com/tornado/portal/internal/domain/partner"
	"github.com/tornado/portal/internal/domain/shared"
)

// MockPartnerUserRepository is a mock implementation of PartnerUserRepository
type MockPartnerUserRepository struct {
	mock.Mock
}

func (m *MockPartnerUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.PartnerUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.PartnerUser), args.Error(1)
}

func (m *MockPartnerUserRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*partner.PartnerUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.PartnerUser), args.Error(1)
}

func (m *MockPartnerUserRepository) FindActiveByPartner(ctx context.Context, partnerID uuid.UUID) ([]partner.PartnerUser, error) {
	args := m.Called(ctx, partnerID)
	return args.Get(0).([]partner.PartnerUser), args.Error(1)
}

func (m *MockPartnerUserRepository) CountActiveAdmins(ctx context.Context, partnerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, partnerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPartnerUserRepository) Save(ctx context.Context, membership *partner.PartnerUser) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

// stubTokenIssuer returns a fixed token
type stubTokenIssuer struct{}

func (stubTokenIssuer) Issue(userID uuid.UUID, role identity.Role, partnerID *uuid.UUID) (string, time.Time, error) {
	return "token-" + userID.String(), time.Now().Add(time.Hour), nil
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves partner for partner staff", func(t *testing.T) {
		user, err := identity.NewUser("jdoe", "jdoe@acme.test", "J Doe", "secret-pass", identity.RolePartnerAdmin)
		require.NoError(t, err)

		partnerID := uuid.New()
		membership, err := partner.NewPartnerUser(partnerID, user.ID, identity.RolePartnerAdmin)
		require.NoError(t, err)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "jdoe").Return(user, nil)
		membershipRepo := new(MockPartnerUserRepository)
		membershipRepo.On("FindActiveByUser", ctx, user.ID).Return(membership, nil)

		service := NewAuthService(userRepo, membershipRepo, stubTokenIssuer{})
		resp, err := service.Login(ctx, LoginRequest{Username: "jdoe", Password: "secret-pass"})
		require.NoError(t, err)
		require.NotNil(t, resp.PartnerID)
		assert.Equal(t, partnerID, *resp.PartnerID)
		assert.Equal(t, "partner_admin", resp.Role)
		assert.NotEmpty(t, resp.Token)
		assert.Contains(t, resp.Permissions, identity.PermQuoteCreate)
	})

	t.Run("provider users carry no partner", func(t *testing.T) {
		user, err := identity.NewUser("ops", "ops@portal.test", "Ops", "secret-pass", identity.RoleProviderUser)
		require.NoError(t, err)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "ops").Return(user, nil)

		service := NewAuthService(userRepo, new(MockPartnerUserRepository), stubTokenIssuer{})
		resp, err := service.Login(ctx, LoginRequest{Username: "ops", Password: "secret-pass"})
		require.NoError(t, err)
		assert.Nil(t, resp.PartnerID)
	})

	t.Run("wrong password and unknown user yield the same error", func(t *testing.T) {
		user, err := identity.NewUser("jdoe", "jdoe@acme.test", "J Doe", "secret-pass", identity.RolePartnerUser)
		require.NoError(t, err)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "jdoe").Return(user, nil)
		userRepo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		service := NewAuthService(userRepo, new(MockPartnerUserRepository), stubTokenIssuer{})

		_, badPass := service.Login(ctx, LoginRequest{Username: "jdoe", Password: "wrong-pass"})
		_, noUser := service.Login(ctx, LoginRequest{Username: "ghost", Password: "secret-pass"})
		require.Error(t, badPass)
		require.Error(t, noUser)
		assert.Equal(t, badPass.Error(), noUser.Error())
	})

	t.Run("inactive account cannot log in", func(t *testing.T) {
		user, err := identity.NewUser("jdoe", "jdoe@acme.test", "J Doe", "secret-pass", identity.RolePartnerUser)
		require.NoError(t, err)
		user.Deactivate()

		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "jdoe").Return(user, nil)

		service := NewAuthService(userRepo, new(MockPartnerUserRepository), stubTokenIssuer{})
		_, err = service.Login(ctx, LoginRequest{Username: "jdoe", Password: "secret-pass"})
		assert.Error(t, err)
	})
}

func TestAuthService_ResolveActor(t *testing.T) {
	ctx := context.Background()

	t.Run("unaffiliated partner user resolves without partner", func(t *testing.T) {
		user, err := identity.NewUser("jdoe", "jdoe@acme.test", "J Doe", "secret-pass", identity.RolePartnerUser)
		require.NoError(t, err)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		membershipRepo := new(MockPartnerUserRepository)
		membershipRepo.On("FindActiveByUser", ctx, user.ID).Return(nil, shared.ErrNotFound)

		service := NewAuthService(userRepo, membershipRepo, stubTokenIssuer{})
		actor, err := service.ResolveActor(ctx, user.ID)
		require.NoError(t, err)
		assert.Nil(t, actor.PartnerID)
		assert.Equal(t, identity.RolePartnerUser, actor.Role)
	})

	t.Run("deactivated account is unauthorized", func(t *testing.T) {
		user, err := identity.NewUser("jdoe", "jdoe@acme.test", "J Doe", "secret-pass", identity.RolePartnerUser)
		require.NoError(t, err)
		user.Deactivate()

		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		service := NewAuthService(userRepo, new(MockPartnerUserRepository), stubTokenIssuer{})
		_, err = service.ResolveActor(ctx, user.ID)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}
