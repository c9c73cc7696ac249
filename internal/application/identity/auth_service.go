package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/identity"
	"github.com/tornado/portal/internal/domain/partner"
	"github.com/tornado/portal/internal/domain/shared"
)

// TokenIssuer signs access tokens for an authenticated actor. Implemented by
// the JWT manager in the infrastructure layer.
type TokenIssuer interface {
	Issue(userID uuid.UUID, role identity.Role, partnerID *uuid.UUID) (token string, expiresAt time.Time, err error)
}

// AuthService handles authentication and actor resolution
type AuthService struct {
	userRepo       identity.UserRepository
	membershipRepo partner.PartnerUserRepository
	tokens         TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, membershipRepo partner.PartnerUserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		tokens:         tokens,
	}
}

// Login verifies credentials and issues a token carrying the resolved actor
// context. Invalid username and invalid password produce the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	invalidCredentials := shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, invalidCredentials
	}
	if !user.IsActive || !user.VerifyPassword(req.Password) {
		return nil, invalidCredentials
	}

	partnerID, err := s.resolvePartner(ctx, user)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role, partnerID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:       token,
		ExpiresAt:   expiresAt,
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role.String(),
		PartnerID:   partnerID,
		Permissions: user.Role.Permissions(),
	}, nil
}

// ResolveActor builds the actor context for a user ID, re-checking that the
// account is still active. Used by the auth middleware on each request.
func (s *AuthService) ResolveActor(ctx context.Context, userID uuid.UUID) (identity.Actor, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return identity.Actor{}, shared.ErrUnauthorized
	}
	if !user.IsActive {
		return identity.Actor{}, shared.ErrUnauthorized
	}

	partnerID, err := s.resolvePartner(ctx, user)
	if err != nil {
		return identity.Actor{}, err
	}

	return identity.Actor{
		UserID:    user.ID,
		Role:      user.Role,
		PartnerID: partnerID,
	}, nil
}

// resolvePartner finds the partner a user acts for: the oldest active
// membership wins. Provider-side roles carry no partner. A partner-scoped
// role without a membership resolves to no partner and is rejected later by
// the scope checks.
func (s *AuthService) resolvePartner(ctx context.Context, user *identity.User) (*uuid.UUID, error) {
	if !user.Role.IsPartnerScoped() {
		return nil, nil
	}

	membership, err := s.membershipRepo.FindActiveByUser(ctx, user.ID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &membership.PartnerID, nil
}
