package ordering

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tornado/portal/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated       = "order_created"
	EventTypeQuoteConverted     = "quote_converted"
	EventTypeOrderStatusChanged = "order_status_changed"
)

// OrderCreatedEvent is raised when an order comes into existence
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	QuoteNumber   string          `json:"quote_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerTotal decimal.Decimal `json:"customer_total"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID, order.PartnerID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		QuoteNumber:     order.QuoteNumber,
		CustomerName:    order.CustomerName,
		CustomerTotal:   order.CustomerTotal,
	}
}

// EventType returns the event type name
func (e *OrderCreatedEvent) EventType() string {
	return EventTypeOrderCreated
}

// QuoteConvertedEvent is raised when an approved quote becomes an order
type QuoteConvertedEvent struct {
	shared.BaseDomainEvent
	QuoteID     uuid.UUID `json:"quote_id"`
	QuoteNumber string    `json:"quote_number"`
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	ConvertedBy uuid.UUID `json:"converted_by"`
}

// NewQuoteConvertedEvent creates a new QuoteConvertedEvent
func NewQuoteConvertedEvent(order *Order, convertedBy uuid.UUID) *QuoteConvertedEvent {
	return &QuoteConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteConverted, AggregateTypeOrder, order.ID, order.PartnerID),
		QuoteID:         order.QuoteID,
		QuoteNumber:     order.QuoteNumber,
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		ConvertedBy:     convertedBy,
	}
}

// EventType returns the event type name
func (e *QuoteConvertedEvent) EventType() string {
	return EventTypeQuoteConverted
}

// OrderStatusChangedEvent is raised on every order status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID   `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	FromStatus  OrderStatus `json:"from_status"`
	ToStatus    OrderStatus `json:"to_status"`
	Notes       string      `json:"notes,omitempty"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, from, to OrderStatus, notes string) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID, order.PartnerID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		FromStatus:      from,
		ToStatus:        to,
		Notes:           notes,
	}
}

// EventType returns the event type name
func (e *OrderStatusChangedEvent) EventType() string {
	return EventTypeOrderStatusChanged
}
