package ordering

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tornado/portal/internal/domain/quoting"
)

func approvedQuote(t *testing.T) *quoting.Quote {
	t.Helper()
	customerID := uuid.New()
	q, err := quoting.NewQuote(uuid.New(), uuid.New(), quoting.NewQuoteNumber(time.Now()), "Globex Ltd", &customerID, time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)
	_, err = q.AddItem(uuid.New(), "Firewall", "FW-01", 2, decimal.NewFromInt(90), decimal.NewFromInt(120))
	require.NoError(t, err)
	_, err = q.AddItem(uuid.New(), "VPN", "VPN-01", 1, decimal.NewFromInt(45), decimal.NewFromInt(60))
	require.NoError(t, err)
	require.NoError(t, q.Send())
	require.NoError(t, q.Approve())
	return q
}

func pendingOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrderFromQuote(approvedQuote(t), NewOrderNumber(time.Now()), uuid.New())
	require.NoError(t, err)
	return order
}

func TestNewOrderFromQuote(t *testing.T) {
	t.Run("copies the financial snapshot one to one", func(t *testing.T) {
		quote := approvedQuote(t)
		converter := uuid.New()

		order, err := NewOrderFromQuote(quote, "ORD-1700000000000", converter)
		require.NoError(t, err)

		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, quote.ID, order.QuoteID)
		assert.Equal(t, quote.QuoteNumber, order.QuoteNumber)
		assert.Equal(t, quote.PartnerID, order.PartnerID)
		assert.Equal(t, quote.CustomerID, order.CustomerID)
		assert.True(t, order.CustomerTotal.Equal(quote.CustomerTotal))
		assert.True(t, order.PartnerTotal.Equal(quote.PartnerTotal))
		require.Len(t, order.Items, quote.ItemCount())
		for idx, item := range order.Items {
			assert.Equal(t, quote.Items[idx].ProductID, item.ProductID)
			assert.Equal(t, quote.Items[idx].Quantity, item.Quantity)
			assert.True(t, item.CustomerLineTotal.Equal(quote.Items[idx].CustomerLineTotal))
			assert.True(t, item.PartnerLineTotal.Equal(quote.Items[idx].PartnerLineTotal))
		}

		require.Len(t, order.History, 1)
		assert.Equal(t, OrderStatusPending, order.History[0].ToStatus)
		assert.Equal(t, "Order created from approved quote", order.History[0].Notes)

		events := order.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeQuoteConverted, events[0].EventType())
		assert.Equal(t, EventTypeOrderCreated, events[1].EventType())
	})

	t.Run("rejects quotes that are not approved", func(t *testing.T) {
		customerID := uuid.New()
		q, err := quoting.NewQuote(uuid.New(), uuid.New(), quoting.NewQuoteNumber(time.Now()), "Globex", &customerID, time.Now().Add(time.Hour))
		require.NoError(t, err)
		_, err = q.AddItem(uuid.New(), "Firewall", "FW-01", 1, decimal.NewFromInt(90), decimal.NewFromInt(120))
		require.NoError(t, err)

		_, err = NewOrderFromQuote(q, "ORD-1", uuid.New())
		assert.Error(t, err)

		require.NoError(t, q.Send())
		_, err = NewOrderFromQuote(q, "ORD-1", uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects inactive quotes", func(t *testing.T) {
		quote := approvedQuote(t)
		quote.IsActive = false
		_, err := NewOrderFromQuote(quote, "ORD-1", uuid.New())
		assert.Error(t, err)
	})
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	t.Run("pipeline is forward-only", func(t *testing.T) {
		stages := []OrderStatus{
			OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
			OrderStatusProvisioning, OrderStatusTesting, OrderStatusReady,
			OrderStatusShipped, OrderStatusDelivered,
		}
		for idx := 0; idx < len(stages)-1; idx++ {
			assert.True(t, stages[idx].CanTransitionTo(stages[idx+1]), "%s -> %s", stages[idx], stages[idx+1])
		}

		// Skipping ahead and walking backwards are both rejected
		assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusProcessing))
		assert.False(t, OrderStatusShipped.CanTransitionTo(OrderStatusConfirmed))
		assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusShipped))
	})

	t.Run("cancellation from any non-terminal stage", func(t *testing.T) {
		assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
		assert.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusCancelled))
		assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusCancelled))
		assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusPending))
	})
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus(" Shipped ")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, status)

	_, err = ParseOrderStatus("draft")
	assert.Error(t, err)
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("appends one history row per transition", func(t *testing.T) {
		order := pendingOrder(t)
		actor := uuid.New()

		require.NoError(t, order.TransitionTo(OrderStatusConfirmed, "payment received", actor))
		assert.Equal(t, OrderStatusConfirmed, order.Status)
		require.Len(t, order.History, 2)
		last := order.History[1]
		assert.Equal(t, OrderStatusPending, last.FromStatus)
		assert.Equal(t, OrderStatusConfirmed, last.ToStatus)
		assert.Equal(t, "payment received", last.Notes)
		require.NotNil(t, last.ChangedBy)
		assert.Equal(t, actor, *last.ChangedBy)
	})

	t.Run("empty notes get a templated default", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.TransitionTo(OrderStatusConfirmed, "", uuid.New()))
		assert.Equal(t, "Status changed from pending to confirmed", order.History[1].Notes)
	})

	t.Run("rejects no-op and out-of-order moves", func(t *testing.T) {
		order := pendingOrder(t)
		assert.Error(t, order.TransitionTo(OrderStatusPending, "", uuid.New()))
		assert.Error(t, order.TransitionTo(OrderStatusShipped, "", uuid.New()))
		assert.Error(t, order.TransitionTo(OrderStatus("bogus"), "", uuid.New()))
	})

	t.Run("full pipeline reaches delivered and stops", func(t *testing.T) {
		order := pendingOrder(t)
		actor := uuid.New()
		for _, next := range []OrderStatus{
			OrderStatusConfirmed, OrderStatusProcessing, OrderStatusProvisioning,
			OrderStatusTesting, OrderStatusReady, OrderStatusShipped, OrderStatusDelivered,
		} {
			require.NoError(t, order.TransitionTo(next, "", actor))
		}
		assert.True(t, order.IsTerminal())
		assert.Len(t, order.History, 8)
		assert.Error(t, order.Cancel("too late", actor))
	})

	t.Run("shipped order can still be cancelled", func(t *testing.T) {
		order := pendingOrder(t)
		actor := uuid.New()
		for _, next := range []OrderStatus{
			OrderStatusConfirmed, OrderStatusProcessing, OrderStatusProvisioning,
			OrderStatusTesting, OrderStatusReady, OrderStatusShipped,
		} {
			require.NoError(t, order.TransitionTo(next, "", actor))
		}

		require.NoError(t, order.Cancel("customer withdrew", actor))
		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.True(t, order.IsTerminal())
	})
}

func TestOrder_FinancialsAreSnapshot(t *testing.T) {
	quote := approvedQuote(t)
	order, err := NewOrderFromQuote(quote, NewOrderNumber(time.Now()), uuid.New())
	require.NoError(t, err)

	before := order.CustomerTotal
	require.NoError(t, order.TransitionTo(OrderStatusConfirmed, "", uuid.New()))
	require.NoError(t, order.TransitionTo(OrderStatusProcessing, "", uuid.New()))
	assert.True(t, order.CustomerTotal.Equal(before))
	assert.True(t, order.PartnerTotal.Equal(quote.PartnerTotal))
}
