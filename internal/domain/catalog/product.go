package catalog

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/shared"
	"github.com/tornado/portal/internal/domain/shared/valueobject"
)

var productCodePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]{1,49}$`)

// Product represents a catalog entry the provider sells to partners.
// DependencyID optionally points at another product that must accompany this
// one; the chain formed by following DependencyID links must stay acyclic.
// StockQuantity is nil for unlimited stock.
type Product struct {
	shared.BaseAggregateRoot
	Name          string            `gorm:"size:200;not null"`
	Code          string            `gorm:"size:50;not null;uniqueIndex"`
	Description   string            `gorm:"size:2000;not null"`
	Category      string            `gorm:"size:100;not null;index"`
	BasePrice     valueobject.Money `gorm:"type:decimal(18,4)"`
	StockQuantity *int64
	DependencyID  *uuid.UUID `gorm:"type:uuid;index"`
	IsActive      bool       `gorm:"not null;default:true;index"`
}

// NewProduct creates a new active product
func NewProduct(name, code, description, category string, basePrice valueobject.Money) (*Product, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))
	description = strings.TrimSpace(description)
	category = strings.TrimSpace(category)

	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if !productCodePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code must be 2-50 characters of A-Z, 0-9, '-' or '_'")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Product description cannot be empty")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Product category cannot be empty")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
		Description:       description,
		Category:          category,
		BasePrice:         basePrice,
		IsActive:          true,
	}, nil
}

// UpdateDetails updates the descriptive fields
func (p *Product) UpdateDetails(name, description, category string) error {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	category = strings.TrimSpace(category)

	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Product description cannot be empty")
	}
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Product category cannot be empty")
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.UpdatedAt = time.Now()
	return nil
}

// UpdateBasePrice updates the base price
func (p *Product) UpdateBasePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	p.BasePrice = price
	p.UpdatedAt = time.Now()
	return nil
}

// SetStockQuantity sets the stock level; nil means unlimited
func (p *Product) SetStockQuantity(qty *int64) error {
	if qty != nil && *qty < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}
	p.StockQuantity = qty
	p.UpdatedAt = time.Now()
	return nil
}

// SetDependency sets the dependency link. Cycle validation happens in the
// application service via CheckCircularDependency before this is called.
func (p *Product) SetDependency(dependencyID *uuid.UUID) error {
	if dependencyID != nil && *dependencyID == p.ID {
		return shared.ErrCircularDependency
	}
	p.DependencyID = dependencyID
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the product
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// DependencyFinder resolves a product's dependency link by product ID.
// Implemented by ProductRepository; split out so the cycle walk stays
// testable without storage.
type DependencyFinder interface {
	FindDependencyID(ctx context.Context, productID uuid.UUID) (*uuid.UUID, bool, error)
}

// CheckCircularDependency walks the dependency chain starting at
// candidateDependencyID, following each product's dependency link with a
// visited set. It returns true (reject) when the walk reaches productID
// itself, revisits a node, or steps onto a product that does not resolve.
// The chain length is bounded only by the catalog size; the visited set is
// the sole termination guarantee.
func CheckCircularDependency(ctx context.Context, finder DependencyFinder, productID, candidateDependencyID uuid.UUID) (bool, error) {
	if candidateDependencyID == productID {
		return true, nil
	}

	visited := map[uuid.UUID]struct{}{}
	current := candidateDependencyID

	for {
		if current == productID {
			return true, nil
		}
		if _, seen := visited[current]; seen {
			return true, nil
		}
		visited[current] = struct{}{}

		next, found, err := finder.FindDependencyID(ctx, current)
		if err != nil {
			return true, err
		}
		if !found {
			// Malformed chain: a link points at a missing product
			return true, nil
		}
		if next == nil {
			return false, nil
		}
		current = *next
	}
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	DependencyFinder
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	FindAllActive(ctx context.Context, filter shared.Filter) ([]Product, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	CountDependents(ctx context.Context, productID uuid.UUID) (int64, error)
	CountReferences(ctx context.Context, productID uuid.UUID) (int64, error)
	Save(ctx context.Context, product *Product) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}
