package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/catalog"
	"github.com/tornado/portal/internal/domain/identity"
	"github.com/tornado/portal/internal/domain/partner"
	"github.com/tornado/portal/internal/domain/shared"
	"github.com/tornado/portal/internal/domain/shared/valueobject"
)

// ProductService handles catalog administration and partner price resolution
type ProductService struct {
	productRepo catalog.ProductRepository
	priceRepo   partner.PartnerPriceRepository
	partnerRepo partner.PartnerRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, priceRepo partner.PartnerPriceRepository, partnerRepo partner.PartnerRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		priceRepo:   priceRepo,
		partnerRepo: partnerRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, actor identity.Actor, req CreateProductRequest) (*ProductResponse, error) {
	if err := actor.RequirePermission(identity.PermProductManage); err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists")
	}

	price := valueobject.NewMoneyUSD(req.BasePrice)
	product, err := catalog.NewProduct(req.Name, req.Code, req.Description, req.Category, price)
	if err != nil {
		return nil, err
	}

	if req.StockQty != nil {
		if err := product.SetStockQuantity(req.StockQty); err != nil {
			return nil, err
		}
	}
	if req.DependencyID != nil {
		if err := s.validateDependency(ctx, product.ID, *req.DependencyID); err != nil {
			return nil, err
		}
		if err := product.SetDependency(req.DependencyID); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product
func (s *ProductService) GetByID(ctx context.Context, actor identity.Actor, productID uuid.UUID) (*ProductResponse, error) {
	if err := actor.RequirePermission(identity.PermProductRead); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves all active products
func (s *ProductService) List(ctx context.Context, actor identity.Actor, filter shared.Filter) ([]ProductResponse, error) {
	if err := actor.RequirePermission(identity.PermProductRead); err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindAllActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToProductResponses(products), nil
}

// Update updates a product's details, price and stock
func (s *ProductService) Update(ctx context.Context, actor identity.Actor, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	if err := actor.RequirePermission(identity.PermProductManage); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil || req.Category != nil {
		name, description, category := product.Name, product.Description, product.Category
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if req.Category != nil {
			category = *req.Category
		}
		if err := product.UpdateDetails(name, description, category); err != nil {
			return nil, err
		}
	}
	if req.BasePrice != nil {
		if err := product.UpdateBasePrice(valueobject.NewMoneyUSD(*req.BasePrice)); err != nil {
			return nil, err
		}
	}
	if req.ClearStock {
		if err := product.SetStockQuantity(nil); err != nil {
			return nil, err
		}
	} else if req.StockQty != nil {
		if err := product.SetStockQuantity(req.StockQty); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// SetDependency sets or clears a product's dependency link after walking the
// chain for cycles
func (s *ProductService) SetDependency(ctx context.Context, actor identity.Actor, productID uuid.UUID, req SetDependencyRequest) (*ProductResponse, error) {
	if err := actor.RequirePermission(identity.PermProductManage); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.DependencyID != nil {
		if err := s.validateDependency(ctx, productID, *req.DependencyID); err != nil {
			return nil, err
		}
	}
	if err := product.SetDependency(req.DependencyID); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Deactivate soft-deletes a product. Products other catalog entries depend
// on stay in place; only the active flag flips.
func (s *ProductService) Deactivate(ctx context.Context, actor identity.Actor, productID uuid.UUID) error {
	if err := actor.RequirePermission(identity.PermProductManage); err != nil {
		return err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	product.Deactivate()
	return s.productRepo.Save(ctx, product)
}

// HardDelete permanently removes a product. Allowed only when no other
// product depends on it and no quote or order line references it; partner
// price overrides for it are removed in the same transaction.
func (s *ProductService) HardDelete(ctx context.Context, actor identity.Actor, productID uuid.UUID) error {
	if err := actor.RequirePermission(identity.PermProductManage); err != nil {
		return err
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	dependents, err := s.productRepo.CountDependents(ctx, productID)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return shared.NewDomainError("PRODUCT_IN_USE", "Other products depend on this product")
	}

	references, err := s.productRepo.CountReferences(ctx, productID)
	if err != nil {
		return err
	}
	if references > 0 {
		return shared.NewDomainError("PRODUCT_IN_USE", "Quotes or orders reference this product")
	}

	if err := s.priceRepo.DeleteByProduct(ctx, productID); err != nil {
		return err
	}
	return s.productRepo.HardDelete(ctx, productID)
}

// GetPartnerPrice resolves what a partner pays for a product: the stored
// override when one exists, otherwise the derived default off the base price.
func (s *ProductService) GetPartnerPrice(ctx context.Context, actor identity.Actor, requestedPartnerID *uuid.UUID, productID uuid.UUID) (*PartnerPriceResponse, error) {
	if err := actor.RequirePermission(identity.PermProductRead); err != nil {
		return nil, err
	}

	partnerID, err := actor.ScopedPartnerID(requestedPartnerID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	price, isOverride, err := s.resolvePartnerPrice(ctx, partnerID, product)
	if err != nil {
		return nil, err
	}

	return &PartnerPriceResponse{
		PartnerID:  partnerID,
		ProductID:  productID,
		Price:      price.Amount(),
		IsOverride: isOverride,
	}, nil
}

// SetPartnerPrice upserts a partner price override
func (s *ProductService) SetPartnerPrice(ctx context.Context, actor identity.Actor, productID uuid.UUID, req SetPartnerPriceRequest) (*PartnerPriceResponse, error) {
	if err := actor.RequirePermission(identity.PermProductManage); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	p, err := s.partnerRepo.FindByID(ctx, req.PartnerID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot price products for an inactive partner")
	}

	override, err := partner.NewPartnerPrice(req.PartnerID, productID, valueobject.NewMoneyUSD(req.Price))
	if err != nil {
		return nil, err
	}

	if err := s.priceRepo.Upsert(ctx, override); err != nil {
		return nil, err
	}

	response := ToPartnerPriceResponse(override)
	return &response, nil
}

// resolvePartnerPrice is the shared resolution used by quoting as well
func (s *ProductService) resolvePartnerPrice(ctx context.Context, partnerID uuid.UUID, product *catalog.Product) (valueobject.Money, bool, error) {
	override, err := s.priceRepo.FindByPartnerAndProduct(ctx, partnerID, product.ID)
	if err != nil {
		if shared.IsNotFound(err) {
			return partner.DerivePartnerPrice(product.BasePrice), false, nil
		}
		return valueobject.Money{}, false, err
	}
	return override.Price, true, nil
}

// validateDependency checks that the candidate dependency exists, is active,
// and does not close a cycle
func (s *ProductService) validateDependency(ctx context.Context, productID, dependencyID uuid.UUID) error {
	dependency, err := s.productRepo.FindByID(ctx, dependencyID)
	if err != nil {
		return err
	}
	if !dependency.IsActive {
		return shared.NewDomainError("INVALID_DEPENDENCY", "Dependency product is not active")
	}

	cycle, err := catalog.CheckCircularDependency(ctx, s.productRepo, productID, dependencyID)
	if err != nil {
		return err
	}
	if cycle {
		return shared.ErrCircularDependency
	}
	return nil
}
