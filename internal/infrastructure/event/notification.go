package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/ordering"
	"github.com/tornado/portal/internal/domain/quoting"
	"github.com/tornado/portal/internal/domain/shared"
)

// DefaultFeedCapacity bounds the in-memory notification feed
const DefaultFeedCapacity = 50

// Notification is one entry in the activity feed
type Notification struct {
	ID         uuid.UUID `json:"id"`
	EventType  string    `json:"event_type"`
	PartnerID  uuid.UUID `json:"partner_id"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NotificationFeed keeps the most recent portal activity in a bounded ring.
// Oldest entries are evicted once the capacity is reached. It subscribes to
// the lifecycle events worth surfacing to operators.
type NotificationFeed struct {
	mu       sync.RWMutex
	entries  []Notification
	start    int
	count    int
	capacity int
}

// NewNotificationFeed creates a feed holding up to capacity entries
func NewNotificationFeed(capacity int) *NotificationFeed {
	if capacity <= 0 {
		capacity = DefaultFeedCapacity
	}
	return &NotificationFeed{
		entries:  make([]Notification, capacity),
		capacity: capacity,
	}
}

// EventTypes implements shared.EventHandler
func (f *NotificationFeed) EventTypes() []string {
	return []string{
		quoting.EventTypeQuoteSent,
		quoting.EventTypeQuoteApproved,
		quoting.EventTypeQuoteRejected,
		ordering.EventTypeQuoteConverted,
		ordering.EventTypeOrderCreated,
		ordering.EventTypeOrderStatusChanged,
	}
}

// Handle implements shared.EventHandler
func (f *NotificationFeed) Handle(ctx context.Context, event shared.DomainEvent) error {
	f.append(Notification{
		ID:         event.EventID(),
		EventType:  event.EventType(),
		PartnerID:  event.PartnerID(),
		Message:    describe(event),
		OccurredAt: event.OccurredAt(),
	})
	return nil
}

// Recent returns up to n notifications, newest first
func (f *NotificationFeed) Recent(n int) []Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if n <= 0 || n > f.count {
		n = f.count
	}

	out := make([]Notification, 0, n)
	for i := 0; i < n; i++ {
		idx := (f.start + f.count - 1 - i) % f.capacity
		out = append(out, f.entries[idx])
	}
	return out
}

// Len returns the number of retained notifications
func (f *NotificationFeed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.count
}

func (f *NotificationFeed) append(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.count < f.capacity {
		f.entries[(f.start+f.count)%f.capacity] = n
		f.count++
		return
	}

	// Full: overwrite the oldest entry
	f.entries[f.start] = n
	f.start = (f.start + 1) % f.capacity
}

// describe renders a human-readable feed line for a lifecycle event
func describe(event shared.DomainEvent) string {
	switch e := event.(type) {
	case *quoting.QuoteSentEvent:
		return fmt.Sprintf("Quote %s sent to the customer", e.QuoteNumber)
	case *quoting.QuoteApprovedEvent:
		return fmt.Sprintf("Quote %s approved", e.QuoteNumber)
	case *quoting.QuoteRejectedEvent:
		return fmt.Sprintf("Quote %s rejected", e.QuoteNumber)
	case *ordering.QuoteConvertedEvent:
		return fmt.Sprintf("Quote %s converted to order %s", e.QuoteNumber, e.OrderNumber)
	case *ordering.OrderCreatedEvent:
		return fmt.Sprintf("Order %s created for %s", e.OrderNumber, e.CustomerName)
	case *ordering.OrderStatusChangedEvent:
		return fmt.Sprintf("Order %s moved from %s to %s", e.OrderNumber, e.FromStatus, e.ToStatus)
	default:
		return event.EventType()
	}
}

var _ shared.EventHandler = (*NotificationFeed)(nil)
