package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tornado/portal/internal/domain/shared"
	"github.com/tornado/portal/internal/domain/shared/valueobject"
)

// DefaultPartnerDiscountRate is the provider-to-partner discount applied when
// no explicit PartnerPrice row exists: partner price = base price x 0.9.
var DefaultPartnerDiscountRate = decimal.NewFromFloat(0.10)

// PartnerPrice is a partner-specific override of a product's partner price.
// At most one active row exists per (partner, product) pair; writes are
// upserts.
type PartnerPrice struct {
	shared.BaseAggregateRoot
	PartnerID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_partner_product"`
	ProductID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_partner_product"`
	Price     valueobject.Money `gorm:"type:decimal(18,4)"`
}

// NewPartnerPrice creates a price override
func NewPartnerPrice(partnerID, productID uuid.UUID, price valueobject.Money) (*PartnerPrice, error) {
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Partner price cannot be negative")
	}

	return &PartnerPrice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PartnerID:         partnerID,
		ProductID:         productID,
		Price:             price,
	}, nil
}

// UpdatePrice replaces the override amount
func (p *PartnerPrice) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Partner price cannot be negative")
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	return nil
}

// DerivePartnerPrice returns the partner price for a base price when no
// override exists
func DerivePartnerPrice(basePrice valueobject.Money) valueobject.Money {
	return basePrice.ApplyDiscountRate(DefaultPartnerDiscountRate)
}

// PartnerPriceRepository defines persistence operations for price overrides.
// Upsert must be atomic insert-if-absent-else-update on (partner, product).
type PartnerPriceRepository interface {
	FindByPartnerAndProduct(ctx context.Context, partnerID, productID uuid.UUID) (*PartnerPrice, error)
	FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]PartnerPrice, error)
	Upsert(ctx context.Context, price *PartnerPrice) error
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}
