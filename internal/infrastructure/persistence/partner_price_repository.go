package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/partner"
	"github.com/tornado/portal/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartnerPriceRepository implements PartnerPriceRepository using GORM
type GormPartnerPriceRepository struct {
	db *gorm.DB
}

// NewGormPartnerPriceRepository creates a new GormPartnerPriceRepository
func NewGormPartnerPriceRepository(db *gorm.DB) *GormPartnerPriceRepository {
	return &GormPartnerPriceRepository{db: db}
}

// FindByPartnerAndProduct finds the price override for a (partner, product) pair
func (r *GormPartnerPriceRepository) FindByPartnerAndProduct(ctx context.Context, partnerID, productID uuid.UUID) (*partner.PartnerPrice, error) {
	var price partner.PartnerPrice
	if err := r.db.WithContext(ctx).
		Where("partner_id = ? AND product_id = ?", partnerID, productID).
		First(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &price, nil
}

// FindByPartner finds all price overrides of a partner
func (r *GormPartnerPriceRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]partner.PartnerPrice, error) {
	var prices []partner.PartnerPrice
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at ASC").
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// Upsert inserts or replaces the override for the (partner, product) pair in a
// single statement so concurrent writers cannot create duplicates.
func (r *GormPartnerPriceRepository) Upsert(ctx context.Context, price *partner.PartnerPrice) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "partner_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
		}).
		Create(price).Error
}

// DeleteByProduct removes all overrides referencing a product
func (r *GormPartnerPriceRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&partner.PartnerPrice{}).Error
}

// Ensure GormPartnerPriceRepository implements PartnerPriceRepository
var _ partner.PartnerPriceRepository = (*GormPartnerPriceRepository)(nil)
