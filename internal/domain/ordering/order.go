package ordering

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tornado/portal/internal/domain/quoting"
	"github.com/tornado/portal/internal/domain/shared"
	"github.com/tornado/portal/internal/domain/shared/valueobject"
)

// OrderStatus represents the fulfilment stage of an order
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusConfirmed    OrderStatus = "confirmed"
	OrderStatusProcessing   OrderStatus = "processing"
	OrderStatusProvisioning OrderStatus = "provisioning"
	OrderStatusTesting      OrderStatus = "testing"
	OrderStatusReady        OrderStatus = "ready"
	OrderStatusShipped      OrderStatus = "shipped"
	OrderStatusDelivered    OrderStatus = "delivered"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

// orderStatusSequence is the fulfilment pipeline in execution order
var orderStatusSequence = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusProvisioning,
	OrderStatusTesting,
	OrderStatusReady,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// ParseOrderStatus parses a status string case-insensitively
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status: %s", s))
	}
	return status, nil
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	for _, stage := range orderStatusSequence {
		if s == stage {
			return true
		}
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transition
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Next returns the immediate next fulfilment stage, or empty when the status
// is the last stage or cancelled
func (s OrderStatus) Next() OrderStatus {
	for idx, stage := range orderStatusSequence {
		if s == stage && idx+1 < len(orderStatusSequence) {
			return orderStatusSequence[idx+1]
		}
	}
	return ""
}

// CanTransitionTo checks if the status can transition to the target status.
// The pipeline is forward-only: the only legal moves are to the immediate
// next stage, or to cancelled from any non-terminal stage.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == OrderStatusCancelled {
		return true
	}
	return target == s.Next()
}

// OrderItem is a line item copied from the approved quote. Both price tiers
// are snapshotted so reporting can compute revenue and partner cost without
// joining back to the quote.
type OrderItem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName       string          `gorm:"size:200;not null"`
	ProductCode       string          `gorm:"size:50;not null"`
	Quantity          int             `gorm:"not null"`
	PartnerUnitPrice  decimal.Decimal `gorm:"type:decimal(18,4)"`
	CustomerUnitPrice decimal.Decimal `gorm:"type:decimal(18,4)"`
	PartnerLineTotal  decimal.Decimal `gorm:"type:decimal(18,4)"`
	CustomerLineTotal decimal.Decimal `gorm:"type:decimal(18,4)"`
	CreatedAt         time.Time
}

// OrderStatusHistory is an append-only record of a status change
type OrderStatusHistory struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	FromStatus OrderStatus `gorm:"size:20"`
	ToStatus   OrderStatus `gorm:"size:20;not null"`
	Notes      string      `gorm:"size:1000"`
	ChangedBy  *uuid.UUID  `gorm:"type:uuid"`
	CreatedAt  time.Time
}

// Order is the fulfilment record created from an approved quote. The
// financial snapshot is immutable after creation; only the status and its
// history mutate.
type Order struct {
	shared.PartnerAggregateRoot
	OrderNumber   string     `gorm:"size:50;not null;uniqueIndex"`
	QuoteID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	QuoteNumber   string     `gorm:"size:50;not null"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName  string     `gorm:"size:200"`
	Items         []OrderItem
	CustomerTotal decimal.Decimal `gorm:"type:decimal(18,4)"`
	PartnerTotal  decimal.Decimal `gorm:"type:decimal(18,4)"`
	Status        OrderStatus     `gorm:"size:20;not null;index"`
	History       []OrderStatusHistory
	Notes         string `gorm:"size:2000"`
	IsActive      bool   `gorm:"not null;default:true;index"`
}

// NewOrderNumber generates an order number of the form ORD-<epoch-millis>
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d", now.UnixMilli())
}

// NewOrderFromQuote converts an approved quote into a pending order. Items
// and totals are copied one-to-one; an initial history row records the
// pending state. The caller guards that no order exists for the quote yet.
func NewOrderFromQuote(quote *quoting.Quote, orderNumber string, convertedBy uuid.UUID) (*Order, error) {
	if quote == nil {
		return nil, shared.NewDomainError("INVALID_QUOTE", "Quote cannot be nil")
	}
	if !quote.IsApproved() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only approved quotes can be converted to orders")
	}
	if !quote.IsActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot convert an inactive quote")
	}
	if len(quote.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Cannot convert a quote without items")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}

	order := &Order{
		PartnerAggregateRoot: shared.NewPartnerAggregateRootWithCreator(quote.PartnerID, convertedBy),
		OrderNumber:          orderNumber,
		QuoteID:              quote.ID,
		QuoteNumber:          quote.QuoteNumber,
		CustomerID:           quote.CustomerID,
		CustomerName:         quote.CustomerName,
		Items:                make([]OrderItem, 0, len(quote.Items)),
		CustomerTotal:        quote.CustomerTotal,
		PartnerTotal:         quote.PartnerTotal,
		Status:               OrderStatusPending,
		IsActive:             true,
	}

	now := time.Now()
	for _, item := range quote.Items {
		order.Items = append(order.Items, OrderItem{
			ID:                uuid.New(),
			OrderID:           order.ID,
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			ProductCode:       item.ProductCode,
			Quantity:          item.Quantity,
			PartnerUnitPrice:  item.PartnerUnitPrice,
			CustomerUnitPrice: item.CustomerUnitPrice,
			PartnerLineTotal:  item.PartnerLineTotal,
			CustomerLineTotal: item.CustomerLineTotal,
			CreatedAt:         now,
		})
	}

	order.History = append(order.History, OrderStatusHistory{
		ID:        uuid.New(),
		OrderID:   order.ID,
		ToStatus:  OrderStatusPending,
		Notes:     "Order created from approved quote",
		ChangedBy: &convertedBy,
		CreatedAt: now,
	})

	order.AddDomainEvent(NewQuoteConvertedEvent(order, convertedBy))
	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// TransitionTo moves the order to the target status and appends a history
// row. An empty notes string gets a templated default.
func (o *Order) TransitionTo(target OrderStatus, notes string, changedBy uuid.UUID) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status: %s", target))
	}
	if target == o.Status {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Order is already %s", o.Status))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	from := o.Status
	now := time.Now()
	if notes == "" {
		notes = fmt.Sprintf("Status changed from %s to %s", from, target)
	}

	o.Status = target
	o.History = append(o.History, OrderStatusHistory{
		ID:         uuid.New(),
		OrderID:    o.ID,
		FromStatus: from,
		ToStatus:   target,
		Notes:      notes,
		ChangedBy:  &changedBy,
		CreatedAt:  now,
	})
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target, notes))

	return nil
}

// Cancel cancels the order with a reason
func (o *Order) Cancel(reason string, changedBy uuid.UUID) error {
	if reason == "" {
		reason = "Order cancelled"
	}
	return o.TransitionTo(OrderStatusCancelled, reason, changedBy)
}

// SetNotes sets the order notes
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}

// IsTerminal reports whether the order reached a terminal status
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// GetCustomerTotalMoney returns the customer total as Money
func (o *Order) GetCustomerTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.CustomerTotal)
}

// GetPartnerTotalMoney returns the partner total as Money
func (o *Order) GetPartnerTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.PartnerTotal)
}
