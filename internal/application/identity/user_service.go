package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/identity"
	"github.com/tornado/portal/internal/domain/shared"
)

// UserService handles user account administration
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// Create creates a new user. The acting role must outrank the role being
// granted; nobody can mint a peer or a superior.
func (s *UserService) Create(ctx context.Context, actor identity.Actor, req CreateUserRequest) (*UserResponse, error) {
	if err := actor.RequirePermission(identity.PermUserManage); err != nil {
		return nil, err
	}

	role, ok := identity.ParseRole(req.Role)
	if !ok {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	if !actor.Role.CanManageRole(role) {
		return nil, shared.ErrForbidden
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	user, err := identity.NewUser(req.Username, req.Email, req.DisplayName, req.Password, role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, actor identity.Actor, userID uuid.UUID) (*UserResponse, error) {
	if actor.UserID != userID {
		if err := actor.RequirePermission(identity.PermUserManage); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves users with pagination
func (s *UserService) List(ctx context.Context, actor identity.Actor, filter shared.Filter) ([]UserResponse, error) {
	if err := actor.RequirePermission(identity.PermUserManage); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToUserResponses(users), nil
}

// ChangeRole changes a user's role. The actor must outrank both the user's
// current role and the new one, and the last active super admin can never be
// demoted.
func (s *UserService) ChangeRole(ctx context.Context, actor identity.Actor, userID uuid.UUID, req ChangeRoleRequest) (*UserResponse, error) {
	if err := actor.RequirePermission(identity.PermUserManage); err != nil {
		return nil, err
	}

	role, ok := identity.ParseRole(req.Role)
	if !ok {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !actor.Role.CanManageRole(user.Role) || !actor.Role.CanManageRole(role) {
		return nil, shared.ErrForbidden
	}

	if user.IsSuperAdmin() && user.IsActive && role != identity.RoleSuperAdmin {
		if err := s.guardLastSuperAdmin(ctx); err != nil {
			return nil, err
		}
	}

	if err := user.ChangeRole(role); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Deactivate soft-deletes a user account
func (s *UserService) Deactivate(ctx context.Context, actor identity.Actor, userID uuid.UUID) error {
	if err := actor.RequirePermission(identity.PermUserManage); err != nil {
		return err
	}
	if actor.UserID == userID {
		return shared.NewDomainError("INVALID_INPUT", "Users cannot deactivate their own account")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !actor.Role.CanManageRole(user.Role) {
		return shared.ErrForbidden
	}

	if user.IsSuperAdmin() && user.IsActive {
		if err := s.guardLastSuperAdmin(ctx); err != nil {
			return err
		}
	}

	user.Deactivate()
	return s.userRepo.Save(ctx, user)
}

func (s *UserService) guardLastSuperAdmin(ctx context.Context) error {
	count, err := s.userRepo.CountActiveByRole(ctx, identity.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if count <= 1 {
		return shared.ErrLastSuperAdmin
	}
	return nil
}
