package quoting

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tornado/portal/internal/domain/shared"
	"github.com/tornado/portal/internal/domain/shared/valueobject"
)

// QuoteStatus represents the lifecycle status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// ParseQuoteStatus parses a status string case-insensitively
func ParseQuoteStatus(s string) (QuoteStatus, error) {
	status := QuoteStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown quote status: %s", s))
	}
	return status, nil
}

// IsValid checks if the status is a valid QuoteStatus
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusApproved, QuoteStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of QuoteStatus
func (s QuoteStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transition
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusApproved || s == QuoteStatusRejected
}

// CanTransitionTo checks if the status can transition to the target status
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	switch s {
	case QuoteStatusDraft:
		return target == QuoteStatusSent
	case QuoteStatusSent:
		return target == QuoteStatusApproved || target == QuoteStatusRejected
	case QuoteStatusApproved, QuoteStatusRejected:
		return false // Terminal states
	}
	return false
}

// QuoteItem represents a line item in a quote. It carries both sides of the
// two-tier price: what the partner pays the provider and what the partner's
// customer pays the partner.
type QuoteItem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	QuoteID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName       string          `gorm:"size:200;not null"`
	ProductCode       string          `gorm:"size:50;not null"`
	Quantity          int             `gorm:"not null"`
	PartnerUnitPrice  decimal.Decimal `gorm:"type:decimal(18,4)"`
	CustomerUnitPrice decimal.Decimal `gorm:"type:decimal(18,4)"`
	PartnerLineTotal  decimal.Decimal `gorm:"type:decimal(18,4)"`
	CustomerLineTotal decimal.Decimal `gorm:"type:decimal(18,4)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewQuoteItem creates a new quote line. The customer unit price must never
// fall below the partner unit price; callers resolve defaults with
// ResolveCustomerUnitPrice before constructing the line.
func NewQuoteItem(quoteID, productID uuid.UUID, productName, productCode string, quantity int, partnerUnitPrice, customerUnitPrice decimal.Decimal) (*QuoteItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if partnerUnitPrice.IsNegative() || customerUnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if customerUnitPrice.LessThan(partnerUnitPrice) {
		return nil, shared.ErrNegativeMargin
	}

	now := time.Now()
	qty := decimal.NewFromInt(int64(quantity))

	return &QuoteItem{
		ID:                uuid.New(),
		QuoteID:           quoteID,
		ProductID:         productID,
		ProductName:       productName,
		ProductCode:       productCode,
		Quantity:          quantity,
		PartnerUnitPrice:  partnerUnitPrice,
		CustomerUnitPrice: customerUnitPrice,
		PartnerLineTotal:  qty.Mul(partnerUnitPrice),
		CustomerLineTotal: qty.Mul(customerUnitPrice),
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// GetCustomerLineTotalMoney returns the customer line total as Money
func (i *QuoteItem) GetCustomerLineTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.CustomerLineTotal)
}

// GetPartnerLineTotalMoney returns the partner line total as Money
func (i *QuoteItem) GetPartnerLineTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.PartnerLineTotal)
}

// Quote represents a partner's offer to its customer, priced on both tiers.
// Totals are recalculated on every item mutation; once the quote leaves
// draft, items and totals are frozen.
type Quote struct {
	shared.PartnerAggregateRoot
	QuoteNumber string `gorm:"size:50;not null;uniqueIndex"`
	// CreatorPartnerID is the partner the authoring user belonged to, nil for
	// provider-side authors. Partner actors never see drafts authored outside
	// their partner.
	CreatorPartnerID *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID       *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName     string     `gorm:"size:200"`
	Items            []QuoteItem
	PartnerSubtotal  decimal.Decimal `gorm:"type:decimal(18,4)"`
	CustomerSubtotal decimal.Decimal `gorm:"type:decimal(18,4)"`
	DiscountAmount   decimal.Decimal `gorm:"type:decimal(18,4)"`
	PartnerTotal     decimal.Decimal `gorm:"type:decimal(18,4)"`
	CustomerTotal    decimal.Decimal `gorm:"type:decimal(18,4)"`
	Status           QuoteStatus     `gorm:"size:20;not null;index"`
	ValidUntil       time.Time       `gorm:"not null"`
	Notes            string          `gorm:"size:2000"`
	SentAt           *time.Time
	ApprovedAt       *time.Time
	RejectedAt       *time.Time
	IsActive         bool `gorm:"not null;default:true;index"`
}

// NewQuote creates a new draft quote for a partner
func NewQuote(partnerID, createdBy uuid.UUID, quoteNumber, customerName string, customerID *uuid.UUID, validUntil time.Time) (*Quote, error) {
	if quoteNumber == "" {
		return nil, shared.NewDomainError("INVALID_QUOTE_NUMBER", "Quote number cannot be empty")
	}
	if validUntil.IsZero() {
		return nil, shared.NewDomainError("INVALID_VALID_UNTIL", "Quote validity date is required")
	}
	if !validUntil.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_VALID_UNTIL", "Quote validity date must be in the future")
	}

	quote := &Quote{
		PartnerAggregateRoot: shared.NewPartnerAggregateRootWithCreator(partnerID, createdBy),
		QuoteNumber:          quoteNumber,
		CustomerID:           customerID,
		CustomerName:         strings.TrimSpace(customerName),
		Items:                make([]QuoteItem, 0),
		PartnerSubtotal:      decimal.Zero,
		CustomerSubtotal:     decimal.Zero,
		DiscountAmount:       decimal.Zero,
		PartnerTotal:         decimal.Zero,
		CustomerTotal:        decimal.Zero,
		Status:               QuoteStatusDraft,
		ValidUntil:           validUntil,
		IsActive:             true,
	}

	quote.AddDomainEvent(NewQuoteCreatedEvent(quote))

	return quote, nil
}

// NewQuoteNumber generates a quote number of the form Q-YYYYMMDD-XXXX.
// Uniqueness is enforced by the database index; collisions within a day are
// retried by the caller.
func NewQuoteNumber(now time.Time) string {
	return fmt.Sprintf("Q-%s-%04d", now.Format("20060102"), rand.IntN(10000))
}

// AddItem adds a new line to the quote. Only allowed in draft status; a
// product may appear at most once per quote.
func (q *Quote) AddItem(productID uuid.UUID, productName, productCode string, quantity int, partnerUnitPrice, customerUnitPrice decimal.Decimal) (*QuoteItem, error) {
	if q.Status != QuoteStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft quote")
	}

	for _, item := range q.Items {
		if item.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in quote")
		}
	}

	item, err := NewQuoteItem(q.ID, productID, productName, productCode, quantity, partnerUnitPrice, customerUnitPrice)
	if err != nil {
		return nil, err
	}

	q.Items = append(q.Items, *item)
	q.recalculateTotals()
	q.UpdatedAt = time.Now()

	return item, nil
}

// RemoveItem removes a line from the quote. Only allowed in draft status.
func (q *Quote) RemoveItem(itemID uuid.UUID) error {
	if q.Status != QuoteStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft quote")
	}

	for idx, item := range q.Items {
		if item.ID == itemID {
			q.Items = append(q.Items[:idx], q.Items[idx+1:]...)
			q.recalculateTotals()
			q.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Quote item not found")
}

// Send transitions the quote from draft to sent. Requires at least one item.
func (q *Quote) Send() error {
	if !q.Status.CanTransitionTo(QuoteStatusSent) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send quote in %s status", q.Status))
	}
	if len(q.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot send quote without items")
	}

	now := time.Now()
	q.Status = QuoteStatusSent
	q.SentAt = &now
	q.UpdatedAt = now

	q.AddDomainEvent(NewQuoteSentEvent(q))

	return nil
}

// Approve marks the quote as approved by the customer. Terminal.
func (q *Quote) Approve() error {
	if !q.Status.CanTransitionTo(QuoteStatusApproved) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve quote in %s status", q.Status))
	}

	now := time.Now()
	q.Status = QuoteStatusApproved
	q.ApprovedAt = &now
	q.UpdatedAt = now

	q.AddDomainEvent(NewQuoteApprovedEvent(q))

	return nil
}

// Reject marks the quote as rejected by the customer. Terminal.
func (q *Quote) Reject(reason string) error {
	if !q.Status.CanTransitionTo(QuoteStatusRejected) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject quote in %s status", q.Status))
	}

	now := time.Now()
	q.Status = QuoteStatusRejected
	q.RejectedAt = &now
	if reason != "" {
		q.Notes = reason
	}
	q.UpdatedAt = now

	q.AddDomainEvent(NewQuoteRejectedEvent(q, reason))

	return nil
}

// TransitionTo applies a parsed status transition to the quote
func (q *Quote) TransitionTo(target QuoteStatus) error {
	if target == q.Status {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Quote is already %s", q.Status))
	}

	switch target {
	case QuoteStatusSent:
		return q.Send()
	case QuoteStatusApproved:
		return q.Approve()
	case QuoteStatusRejected:
		return q.Reject("")
	default:
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition quote from %s to %s", q.Status, target))
	}
}

// SetNotes sets the quote notes
func (q *Quote) SetNotes(notes string) {
	q.Notes = notes
	q.UpdatedAt = time.Now()
}

// ProfitMargin returns the partner's profit margin percentage on this quote
func (q *Quote) ProfitMargin() decimal.Decimal {
	return ProfitMarginPercent(q.CustomerTotal, q.PartnerTotal)
}

// IsDraft returns true if the quote is in draft status
func (q *Quote) IsDraft() bool {
	return q.Status == QuoteStatusDraft
}

// IsApproved returns true if the quote has been approved
func (q *Quote) IsApproved() bool {
	return q.Status == QuoteStatusApproved
}

// IsExpired reports whether the quote validity window has passed
func (q *Quote) IsExpired() bool {
	return time.Now().After(q.ValidUntil)
}

// CanRespond reports whether the given user may approve or reject this quote
// through the self-service path
func (q *Quote) CanRespond(userID uuid.UUID) bool {
	return q.CustomerID != nil && *q.CustomerID == userID
}

// VisibleToPartner reports whether a partner-scoped viewer from the given
// partner may see this quote. Drafts authored outside the partner stay
// hidden until they are sent.
func (q *Quote) VisibleToPartner(partnerID uuid.UUID) bool {
	if q.PartnerID != partnerID {
		return false
	}
	if q.Status != QuoteStatusDraft {
		return true
	}
	return q.CreatorPartnerID != nil && *q.CreatorPartnerID == partnerID
}

// ItemCount returns the number of lines in the quote
func (q *Quote) ItemCount() int {
	return len(q.Items)
}

// GetCustomerTotalMoney returns the customer total as Money
func (q *Quote) GetCustomerTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(q.CustomerTotal)
}

// GetPartnerTotalMoney returns the partner total as Money
func (q *Quote) GetPartnerTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(q.PartnerTotal)
}

func (q *Quote) recalculateTotals() {
	partnerSubtotal := decimal.Zero
	customerSubtotal := decimal.Zero
	for _, item := range q.Items {
		partnerSubtotal = partnerSubtotal.Add(item.PartnerLineTotal)
		customerSubtotal = customerSubtotal.Add(item.CustomerLineTotal)
	}
	q.PartnerSubtotal = partnerSubtotal
	q.CustomerSubtotal = customerSubtotal
	q.PartnerTotal = partnerSubtotal.Sub(q.DiscountAmount)
	q.CustomerTotal = customerSubtotal.Sub(q.DiscountAmount)
}
