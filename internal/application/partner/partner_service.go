package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/identity"
	"github.com/tornado/portal/internal/domain/partner"
	"github.com/tornado/portal/internal/domain/shared"
)

// PartnerService handles partner organizations and their memberships
type PartnerService struct {
	partnerRepo    partner.PartnerRepository
	membershipRepo partner.PartnerUserRepository
	userRepo       identity.UserRepository
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(partnerRepo partner.PartnerRepository, membershipRepo partner.PartnerUserRepository, userRepo identity.UserRepository) *PartnerService {
	return &PartnerService{
		partnerRepo:    partnerRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
	}
}

// Create creates a new partner organization
func (s *PartnerService) Create(ctx context.Context, actor identity.Actor, req CreatePartnerRequest) (*PartnerResponse, error) {
	if err := actor.RequirePermission(identity.PermPartnerManage); err != nil {
		return nil, err
	}

	exists, err := s.partnerRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Partner with this code already exists")
	}

	p, err := partner.NewPartner(req.Name, req.Code)
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.ContactEmail != "" || req.ContactPhone != "" {
		p.UpdateContact(req.ContactName, req.ContactEmail, req.ContactPhone)
	}

	if err := s.partnerRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPartnerResponse(p)
	return &response, nil
}

// GetByID retrieves a partner. Partner-scoped actors may only read their own.
func (s *PartnerService) GetByID(ctx context.Context, actor identity.Actor, partnerID uuid.UUID) (*PartnerResponse, error) {
	if !actor.CanAccessPartner(partnerID) {
		return nil, shared.ErrPartnerScope
	}

	p, err := s.partnerRepo.FindByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	response := ToPartnerResponse(p)
	return &response, nil
}

// List retrieves all active partners. Privileged callers only.
func (s *PartnerService) List(ctx context.Context, actor identity.Actor, filter shared.Filter) ([]PartnerResponse, error) {
	if err := actor.RequirePermission(identity.PermPartnerManage); err != nil {
		return nil, err
	}

	partners, err := s.partnerRepo.FindAllActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToPartnerResponses(partners), nil
}

// Update updates a partner's name and contact details
func (s *PartnerService) Update(ctx context.Context, actor identity.Actor, partnerID uuid.UUID, req UpdatePartnerRequest) (*PartnerResponse, error) {
	if err := actor.RequirePermission(identity.PermPartnerManage); err != nil {
		return nil, err
	}

	p, err := s.partnerRepo.FindByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := p.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil || req.ContactEmail != nil || req.ContactPhone != nil {
		name, email, phone := p.ContactName, p.ContactEmail, p.ContactPhone
		if req.ContactName != nil {
			name = *req.ContactName
		}
		if req.ContactEmail != nil {
			email = *req.ContactEmail
		}
		if req.ContactPhone != nil {
			phone = *req.ContactPhone
		}
		p.UpdateContact(name, email, phone)
	}

	if err := s.partnerRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPartnerResponse(p)
	return &response, nil
}

// Deactivate soft-deletes a partner
func (s *PartnerService) Deactivate(ctx context.Context, actor identity.Actor, partnerID uuid.UUID) error {
	if err := actor.RequirePermission(identity.PermPartnerManage); err != nil {
		return err
	}

	p, err := s.partnerRepo.FindByID(ctx, partnerID)
	if err != nil {
		return err
	}

	p.Deactivate()
	return s.partnerRepo.Save(ctx, p)
}

// AddMember links a user to a partner with a partner-scoped role
func (s *PartnerService) AddMember(ctx context.Context, actor identity.Actor, partnerID uuid.UUID, req AddMemberRequest) (*MemberResponse, error) {
	if err := actor.RequirePermission(identity.PermPartnerManage); err != nil {
		return nil, err
	}

	role, ok := identity.ParseRole(req.Role)
	if !ok {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	p, err := s.partnerRepo.FindByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add members to an inactive partner")
	}

	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add an inactive user to a partner")
	}

	if existing, err := s.membershipRepo.FindActiveByUser(ctx, req.UserID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User already belongs to a partner")
	} else if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}

	membership, err := partner.NewPartnerUser(partnerID, req.UserID, role)
	if err != nil {
		return nil, err
	}

	if err := s.membershipRepo.Save(ctx, membership); err != nil {
		return nil, err
	}

	response := ToMemberResponse(membership)
	return &response, nil
}

// ListMembers returns a partner's active memberships
func (s *PartnerService) ListMembers(ctx context.Context, actor identity.Actor, partnerID uuid.UUID) ([]MemberResponse, error) {
	if !actor.CanAccessPartner(partnerID) {
		return nil, shared.ErrPartnerScope
	}

	members, err := s.membershipRepo.FindActiveByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	return ToMemberResponses(members), nil
}

// ChangeMemberRole changes a membership's role. Demoting the last active
// partner admin is rejected so the partner never loses administration.
func (s *PartnerService) ChangeMemberRole(ctx context.Context, actor identity.Actor, membershipID uuid.UUID, req ChangeMemberRoleRequest) (*MemberResponse, error) {
	if err := actor.RequirePermission(identity.PermPartnerManage); err != nil {
		return nil, err
	}

	role, ok := identity.ParseRole(req.Role)
	if !ok {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	membership, err := s.membershipRepo.FindByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}

	if membership.IsAdmin() && role != identity.RolePartnerAdmin {
		if err := s.guardLastAdmin(ctx, membership.PartnerID); err != nil {
			return nil, err
		}
	}

	if err := membership.ChangeRole(role); err != nil {
		return nil, err
	}

	if err := s.membershipRepo.Save(ctx, membership); err != nil {
		return nil, err
	}

	response := ToMemberResponse(membership)
	return &response, nil
}

// RemoveMember deactivates a membership. Removing the last active partner
// admin is rejected.
func (s *PartnerService) RemoveMember(ctx context.Context, actor identity.Actor, membershipID uuid.UUID) error {
	if err := actor.RequirePermission(identity.PermPartnerManage); err != nil {
		return err
	}

	membership, err := s.membershipRepo.FindByID(ctx, membershipID)
	if err != nil {
		return err
	}
	if !membership.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Membership is already inactive")
	}

	if membership.IsAdmin() {
		if err := s.guardLastAdmin(ctx, membership.PartnerID); err != nil {
			return err
		}
	}

	membership.Deactivate()
	return s.membershipRepo.Save(ctx, membership)
}

func (s *PartnerService) guardLastAdmin(ctx context.Context, partnerID uuid.UUID) error {
	count, err := s.membershipRepo.CountActiveAdmins(ctx, partnerID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return shared.ErrLastAdmin
	}
	return nil
}
