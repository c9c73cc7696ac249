package quoting

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tornado/portal/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeQuote = "Quote"

// Event type constants
const (
	EventTypeQuoteCreated  = "quote_created"
	EventTypeQuoteSent     = "quote_sent"
	EventTypeQuoteApproved = "quote_approved"
	EventTypeQuoteRejected = "quote_rejected"
)

// QuoteCreatedEvent is raised when a new quote is created
type QuoteCreatedEvent struct {
	shared.BaseDomainEvent
	QuoteID      uuid.UUID  `json:"quote_id"`
	QuoteNumber  string     `json:"quote_number"`
	CustomerID   *uuid.UUID `json:"customer_id,omitempty"`
	CustomerName string     `json:"customer_name"`
}

// NewQuoteCreatedEvent creates a new QuoteCreatedEvent
func NewQuoteCreatedEvent(quote *Quote) *QuoteCreatedEvent {
	return &QuoteCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteCreated, AggregateTypeQuote, quote.ID, quote.PartnerID),
		QuoteID:         quote.ID,
		QuoteNumber:     quote.QuoteNumber,
		CustomerID:      quote.CustomerID,
		CustomerName:    quote.CustomerName,
	}
}

// EventType returns the event type name
func (e *QuoteCreatedEvent) EventType() string {
	return EventTypeQuoteCreated
}

// QuoteSentEvent is raised when a quote is sent to the customer
type QuoteSentEvent struct {
	shared.BaseDomainEvent
	QuoteID       uuid.UUID       `json:"quote_id"`
	QuoteNumber   string          `json:"quote_number"`
	CustomerTotal decimal.Decimal `json:"customer_total"`
}

// NewQuoteSentEvent creates a new QuoteSentEvent
func NewQuoteSentEvent(quote *Quote) *QuoteSentEvent {
	return &QuoteSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteSent, AggregateTypeQuote, quote.ID, quote.PartnerID),
		QuoteID:         quote.ID,
		QuoteNumber:     quote.QuoteNumber,
		CustomerTotal:   quote.CustomerTotal,
	}
}

// EventType returns the event type name
func (e *QuoteSentEvent) EventType() string {
	return EventTypeQuoteSent
}

// QuoteApprovedEvent is raised when the customer approves a quote
type QuoteApprovedEvent struct {
	shared.BaseDomainEvent
	QuoteID       uuid.UUID       `json:"quote_id"`
	QuoteNumber   string          `json:"quote_number"`
	CustomerTotal decimal.Decimal `json:"customer_total"`
	PartnerTotal  decimal.Decimal `json:"partner_total"`
}

// NewQuoteApprovedEvent creates a new QuoteApprovedEvent
func NewQuoteApprovedEvent(quote *Quote) *QuoteApprovedEvent {
	return &QuoteApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteApproved, AggregateTypeQuote, quote.ID, quote.PartnerID),
		QuoteID:         quote.ID,
		QuoteNumber:     quote.QuoteNumber,
		CustomerTotal:   quote.CustomerTotal,
		PartnerTotal:    quote.PartnerTotal,
	}
}

// EventType returns the event type name
func (e *QuoteApprovedEvent) EventType() string {
	return EventTypeQuoteApproved
}

// QuoteRejectedEvent is raised when the customer rejects a quote
type QuoteRejectedEvent struct {
	shared.BaseDomainEvent
	QuoteID     uuid.UUID `json:"quote_id"`
	QuoteNumber string    `json:"quote_number"`
	Reason      string    `json:"reason,omitempty"`
}

// NewQuoteRejectedEvent creates a new QuoteRejectedEvent
func NewQuoteRejectedEvent(quote *Quote, reason string) *QuoteRejectedEvent {
	return &QuoteRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteRejected, AggregateTypeQuote, quote.ID, quote.PartnerID),
		QuoteID:         quote.ID,
		QuoteNumber:     quote.QuoteNumber,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *QuoteRejectedEvent) EventType() string {
	return EventTypeQuoteRejected
}
