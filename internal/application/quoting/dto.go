package quoting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tornado/portal/internal/domain/quoting"
)

// QuoteLineRequest represents one requested quote line. CustomerUnitPrice is
// mandatory for partner-scoped authors; PartnerUnitPrice may only be set by
// provider-side authors and overrides the stored partner price.
type QuoteLineRequest struct {
	ProductID         uuid.UUID        `json:"product_id" binding:"required"`
	Quantity          int              `json:"quantity" binding:"required,gt=0"`
	PartnerUnitPrice  *decimal.Decimal `json:"partner_unit_price"`
	CustomerUnitPrice *decimal.Decimal `json:"customer_unit_price"`
}

// CreateQuoteRequest represents a request to create a quote
type CreateQuoteRequest struct {
	PartnerID    *uuid.UUID         `json:"partner_id"`
	CustomerID   *uuid.UUID         `json:"customer_id"`
	CustomerName string             `json:"customer_name" binding:"required,min=1,max=200"`
	ValidUntil   time.Time          `json:"valid_until" binding:"required"`
	Notes        string             `json:"notes" binding:"max=2000"`
	Lines        []QuoteLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// TransitionQuoteRequest represents a status change request
type TransitionQuoteRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=1000"`
}

// QuoteItemResponse represents a quote line in API responses
type QuoteItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	ProductCode       string          `json:"product_code"`
	Quantity          int             `json:"quantity"`
	PartnerUnitPrice  decimal.Decimal `json:"partner_unit_price"`
	CustomerUnitPrice decimal.Decimal `json:"customer_unit_price"`
	PartnerLineTotal  decimal.Decimal `json:"partner_line_total"`
	CustomerLineTotal decimal.Decimal `json:"customer_line_total"`
}

// QuoteResponse represents a quote in API responses
type QuoteResponse struct {
	ID               uuid.UUID           `json:"id"`
	QuoteNumber      string              `json:"quote_number"`
	PartnerID        uuid.UUID           `json:"partner_id"`
	CustomerID       *uuid.UUID          `json:"customer_id,omitempty"`
	CustomerName     string              `json:"customer_name"`
	Status           string              `json:"status"`
	Items            []QuoteItemResponse `json:"items,omitempty"`
	PartnerSubtotal  decimal.Decimal     `json:"partner_subtotal"`
	CustomerSubtotal decimal.Decimal     `json:"customer_subtotal"`
	DiscountAmount   decimal.Decimal     `json:"discount_amount"`
	PartnerTotal     decimal.Decimal     `json:"partner_total"`
	CustomerTotal    decimal.Decimal     `json:"customer_total"`
	ProfitMargin     decimal.Decimal     `json:"profit_margin"`
	ValidUntil       time.Time           `json:"valid_until"`
	Notes            string              `json:"notes,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// ToQuoteResponse maps a quote aggregate to its response form
func ToQuoteResponse(q *quoting.Quote) QuoteResponse {
	items := make([]QuoteItemResponse, len(q.Items))
	for i, item := range q.Items {
		items[i] = QuoteItemResponse{
			ID:                item.ID,
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			ProductCode:       item.ProductCode,
			Quantity:          item.Quantity,
			PartnerUnitPrice:  item.PartnerUnitPrice,
			CustomerUnitPrice: item.CustomerUnitPrice,
			PartnerLineTotal:  item.PartnerLineTotal,
			CustomerLineTotal: item.CustomerLineTotal,
		}
	}

	return QuoteResponse{
		ID:               q.ID,
		QuoteNumber:      q.QuoteNumber,
		PartnerID:        q.PartnerID,
		CustomerID:       q.CustomerID,
		CustomerName:     q.CustomerName,
		Status:           q.Status.String(),
		Items:            items,
		PartnerSubtotal:  q.PartnerSubtotal,
		CustomerSubtotal: q.CustomerSubtotal,
		DiscountAmount:   q.DiscountAmount,
		PartnerTotal:     q.PartnerTotal,
		CustomerTotal:    q.CustomerTotal,
		ProfitMargin:     q.ProfitMargin(),
		ValidUntil:       q.ValidUntil,
		Notes:            q.Notes,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

// ToQuoteListResponses maps quotes for list views, omitting line items
func ToQuoteListResponses(quotes []quoting.Quote) []QuoteResponse {
	out := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		resp := ToQuoteResponse(&quotes[i])
		resp.Items = nil
		out[i] = resp
	}
	return out
}
