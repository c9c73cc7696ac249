package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tornado/portal/internal/domain/catalog"
	"github.com/tornado/portal/internal/domain/partner"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Code         string          `json:"code" binding:"required,min=2,max=50"`
	Description  string          `json:"description" binding:"required,max=2000"`
	Category     string          `json:"category" binding:"required,max=100"`
	BasePrice    decimal.Decimal `json:"base_price" binding:"required"`
	StockQty     *int64          `json:"stock_quantity"`
	DependencyID *uuid.UUID      `json:"dependency_id"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	BasePrice   *decimal.Decimal `json:"base_price"`
	StockQty    *int64           `json:"stock_quantity"`
	ClearStock  bool             `json:"clear_stock"`
}

// SetDependencyRequest represents a request to set or clear a dependency
type SetDependencyRequest struct {
	DependencyID *uuid.UUID `json:"dependency_id"`
}

// SetPartnerPriceRequest represents a partner price override upsert
type SetPartnerPriceRequest struct {
	PartnerID uuid.UUID       `json:"partner_id" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	BasePrice    decimal.Decimal `json:"base_price"`
	StockQty     *int64          `json:"stock_quantity,omitempty"`
	DependencyID *uuid.UUID      `json:"dependency_id,omitempty"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PartnerPriceResponse represents a resolved partner price
type PartnerPriceResponse struct {
	PartnerID  uuid.UUID       `json:"partner_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Price      decimal.Decimal `json:"price"`
	IsOverride bool            `json:"is_override"`
}

// ToProductResponse maps a product aggregate to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Code:         p.Code,
		Description:  p.Description,
		Category:     p.Category,
		BasePrice:    p.BasePrice.Amount(),
		StockQty:     p.StockQuantity,
		DependencyID: p.DependencyID,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductResponses maps a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// ToPartnerPriceResponse maps an override row to its response form
func ToPartnerPriceResponse(pp *partner.PartnerPrice) PartnerPriceResponse {
	return PartnerPriceResponse{
		PartnerID:  pp.PartnerID,
		ProductID:  pp.ProductID,
		Price:      pp.Price.Amount(),
		IsOverride: true,
	}
}
