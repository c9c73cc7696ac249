package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/catalog"
	"github.com/tornado/portal/internal/domain/ordering"
	"github.com/tornado/portal/internal/domain/quoting"
	"github.com/tornado/portal/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByCode finds a product by code
func (r *GormProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAllActive finds all active products matching the filter
func (r *GormProductRepository) FindAllActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("is_active = ?", true)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR code LIKE ? OR category LIKE ?", pattern, pattern, pattern)
	}

	var products []catalog.Product
	if err := applyFilter(query, filter).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ExistsByCode checks if a product with the given code exists
func (r *GormProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindDependencyID resolves a product's dependency link. The boolean reports
// whether the product itself exists.
func (r *GormProductRepository) FindDependencyID(ctx context.Context, productID uuid.UUID) (*uuid.UUID, bool, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Select("id", "dependency_id").
		First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return product.DependencyID, true, nil
}

// CountDependents counts products whose dependency link points at the product
func (r *GormProductRepository) CountDependents(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("dependency_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountReferences counts quote and order line items referencing the product
func (r *GormProductRepository) CountReferences(ctx context.Context, productID uuid.UUID) (int64, error) {
	var quoteRefs int64
	if err := r.db.WithContext(ctx).
		Model(&quoting.QuoteItem{}).
		Where("product_id = ?", productID).
		Count(&quoteRefs).Error; err != nil {
		return 0, err
	}

	var orderRefs int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.OrderItem{}).
		Where("product_id = ?", productID).
		Count(&orderRefs).Error; err != nil {
		return 0, err
	}

	return quoteRefs + orderRefs, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// HardDelete permanently removes a product
func (r *GormProductRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
