package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/quoting"
	"github.com/tornado/portal/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormQuoteRepository implements QuoteRepository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// FindByID finds a quote with its items by ID
func (r *GormQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*quoting.Quote, error) {
	var quote quoting.Quote
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// FindByNumber finds a quote with its items by quote number
func (r *GormQuoteRepository) FindByNumber(ctx context.Context, quoteNumber string) (*quoting.Quote, error) {
	var quote quoting.Quote
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("quote_number = ?", quoteNumber).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// FindAllActive returns all active quotes, unscoped
func (r *GormQuoteRepository) FindAllActive(ctx context.Context, filter shared.Filter) ([]quoting.Quote, error) {
	query := r.db.WithContext(ctx).
		Model(&quoting.Quote{}).
		Where("is_active = ?", true)
	query = r.applySearch(query, filter)

	var quotes []quoting.Quote
	if err := applyFilter(query, filter).Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// FindByPartner returns a partner's active quotes. With excludeForeignDrafts
// set, drafts authored outside the partner are suppressed; sent and resolved
// quotes are always visible.
func (r *GormQuoteRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID, excludeForeignDrafts bool, filter shared.Filter) ([]quoting.Quote, error) {
	query := r.db.WithContext(ctx).
		Model(&quoting.Quote{}).
		Where("partner_id = ? AND is_active = ?", partnerID, true)
	if excludeForeignDrafts {
		query = query.Where("status <> ? OR creator_partner_id = ?", quoting.QuoteStatusDraft, partnerID)
	}
	query = r.applySearch(query, filter)

	var quotes []quoting.Quote
	if err := applyFilter(query, filter).Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// ExistsByNumber checks if a quote with the given number exists
func (r *GormQuoteRepository) ExistsByNumber(ctx context.Context, quoteNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&quoting.Quote{}).
		Where("quote_number = ?", quoteNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists the quote header and its items atomically. Items removed from
// the aggregate are deleted; the rest are upserted.
func (r *GormQuoteRepository) Save(ctx context.Context, quote *quoting.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(quote).Error; err != nil {
			return err
		}

		itemIDs := make([]uuid.UUID, 0, len(quote.Items))
		for _, item := range quote.Items {
			itemIDs = append(itemIDs, item.ID)
		}

		removed := tx.Where("quote_id = ?", quote.ID)
		if len(itemIDs) > 0 {
			removed = removed.Where("id NOT IN ?", itemIDs)
		}
		if err := removed.Delete(&quoting.QuoteItem{}).Error; err != nil {
			return err
		}

		if len(quote.Items) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&quote.Items).Error
	})
}

// HardDelete permanently removes a quote and its items
func (r *GormQuoteRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&quoting.QuoteItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&quoting.Quote{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormQuoteRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search == "" {
		return query
	}
	pattern := "%" + filter.Search + "%"
	return query.Where("quote_number LIKE ? OR customer_name LIKE ?", pattern, pattern)
}

// Ensure GormQuoteRepository implements QuoteRepository
var _ quoting.QuoteRepository = (*GormQuoteRepository)(nil)
