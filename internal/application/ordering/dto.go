package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tornado/portal/internal/domain/ordering"
)

// ConvertQuoteRequest represents a request to convert an approved quote
type ConvertQuoteRequest struct {
	QuoteID uuid.UUID `json:"quote_id" binding:"required"`
	Notes   string    `json:"notes" binding:"max=2000"`
}

// UpdateOrderStatusRequest represents a status change request
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"max=1000"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
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

// OrderStatusHistoryResponse represents one status history row
type OrderStatusHistoryResponse struct {
	ID         uuid.UUID  `json:"id"`
	FromStatus string     `json:"from_status,omitempty"`
	ToStatus   string     `json:"to_status"`
	Notes      string     `json:"notes,omitempty"`
	ChangedBy  *uuid.UUID `json:"changed_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID                    `json:"id"`
	OrderNumber   string                       `json:"order_number"`
	QuoteID       uuid.UUID                    `json:"quote_id"`
	QuoteNumber   string                       `json:"quote_number"`
	PartnerID     uuid.UUID                    `json:"partner_id"`
	CustomerID    *uuid.UUID                   `json:"customer_id,omitempty"`
	CustomerName  string                       `json:"customer_name"`
	Status        string                       `json:"status"`
	Items         []OrderItemResponse          `json:"items,omitempty"`
	History       []OrderStatusHistoryResponse `json:"history,omitempty"`
	CustomerTotal decimal.Decimal              `json:"customer_total"`
	PartnerTotal  decimal.Decimal              `json:"partner_total"`
	Notes         string                       `json:"notes,omitempty"`
	CreatedAt     time.Time                    `json:"created_at"`
	UpdatedAt     time.Time                    `json:"updated_at"`
}

// ToOrderResponse maps an order aggregate to its response form
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
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

	history := make([]OrderStatusHistoryResponse, len(o.History))
	for i, row := range o.History {
		history[i] = OrderStatusHistoryResponse{
			ID:         row.ID,
			FromStatus: row.FromStatus.String(),
			ToStatus:   row.ToStatus.String(),
			Notes:      row.Notes,
			ChangedBy:  row.ChangedBy,
			CreatedAt:  row.CreatedAt,
		}
	}

	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		QuoteID:       o.QuoteID,
		QuoteNumber:   o.QuoteNumber,
		PartnerID:     o.PartnerID,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		Status:        o.Status.String(),
		Items:         items,
		History:       history,
		CustomerTotal: o.CustomerTotal,
		PartnerTotal:  o.PartnerTotal,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOrderListResponses maps orders for list views, omitting items and history
func ToOrderListResponses(orders []ordering.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		resp := ToOrderResponse(&orders[i])
		resp.Items = nil
		resp.History = nil
		out[i] = resp
	}
	return out
}
