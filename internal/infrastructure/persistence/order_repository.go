package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/ordering"
	"github.com/tornado/portal/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items and history by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByNumber finds an order with its items and history by order number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*ordering.Order, error) {
	return r.findOne(ctx, "order_number = ?", orderNumber)
}

// FindByQuote finds the order converted from the given quote
func (r *GormOrderRepository) FindByQuote(ctx context.Context, quoteID uuid.UUID) (*ordering.Order, error) {
	return r.findOne(ctx, "quote_id = ?", quoteID)
}

func (r *GormOrderRepository) findOne(ctx context.Context, cond string, arg any) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where(cond, arg).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAllActive returns all active orders, unscoped
func (r *GormOrderRepository) FindAllActive(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	query := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("is_active = ?", true)
	query = r.applySearch(query, filter)

	var orders []ordering.Order
	if err := applyFilter(query, filter).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByPartner returns a partner's active orders
func (r *GormOrderRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	query := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("partner_id = ? AND is_active = ?", partnerID, true)
	query = r.applySearch(query, filter)

	var orders []ordering.Order
	if err := applyFilter(query, filter).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ExistsByQuote checks if an order converted from the given quote exists
func (r *GormOrderRepository) ExistsByQuote(ctx context.Context, quoteID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("quote_id = ?", quoteID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists the order header, items and history atomically. Items and
// history rows are append-only once written; upserts keep retried saves
// idempotent. The unique index on quote_id rejects a second conversion of the
// same quote.
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "History").Save(order).Error; err != nil {
			return err
		}

		if len(order.Items) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoNothing: true,
			}).Create(&order.Items).Error; err != nil {
				return err
			}
		}

		if len(order.History) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoNothing: true,
			}).Create(&order.History).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *GormOrderRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search == "" {
		return query
	}
	pattern := "%" + filter.Search + "%"
	return query.Where("order_number LIKE ? OR quote_number LIKE ? OR customer_name LIKE ?", pattern, pattern, pattern)
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
