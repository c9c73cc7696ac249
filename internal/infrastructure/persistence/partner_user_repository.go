package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/identity"
	"github.com/tornado/portal/internal/domain/partner"
	"github.com/tornado/portal/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPartnerUserRepository implements PartnerUserRepository using GORM
type GormPartnerUserRepository struct {
	db *gorm.DB
}

// NewGormPartnerUserRepository creates a new GormPartnerUserRepository
func NewGormPartnerUserRepository(db *gorm.DB) *GormPartnerUserRepository {
	return &GormPartnerUserRepository{db: db}
}

// FindByID finds a membership by ID
func (r *GormPartnerUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.PartnerUser, error) {
	var m partner.PartnerUser
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindActiveByUser returns the user's active membership. Oldest row wins when
// racing writes left duplicates behind.
func (r *GormPartnerUserRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*partner.PartnerUser, error) {
	var m partner.PartnerUser
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindActiveByPartner returns all active memberships of a partner
func (r *GormPartnerUserRepository) FindActiveByPartner(ctx context.Context, partnerID uuid.UUID) ([]partner.PartnerUser, error) {
	var members []partner.PartnerUser
	if err := r.db.WithContext(ctx).
		Where("partner_id = ? AND is_active = ?", partnerID, true).
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CountActiveAdmins counts active partner_admin memberships of a partner
func (r *GormPartnerUserRepository) CountActiveAdmins(ctx context.Context, partnerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.PartnerUser{}).
		Where("partner_id = ? AND role = ? AND is_active = ?", partnerID, identity.RolePartnerAdmin, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a membership
func (r *GormPartnerUserRepository) Save(ctx context.Context, membership *partner.PartnerUser) error {
	return r.db.WithContext(ctx).Save(membership).Error
}

// Ensure GormPartnerUserRepository implements PartnerUserRepository
var _ partner.PartnerUserRepository = (*GormPartnerUserRepository)(nil)
