package quoting

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tornado/portal/internal/domain/shared"
)

func newDraftQuote(t *testing.T) *Quote {
	t.Helper()
	q, err := NewQuote(uuid.New(), uuid.New(), NewQuoteNumber(time.Now()), "Globex Ltd", nil, time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)
	return q
}

func TestNewQuote(t *testing.T) {
	t.Run("creates draft quote with zero totals", func(t *testing.T) {
		q := newDraftQuote(t)
		assert.Equal(t, QuoteStatusDraft, q.Status)
		assert.True(t, q.IsActive)
		assert.True(t, q.CustomerTotal.IsZero())
		assert.True(t, q.PartnerTotal.IsZero())
		assert.Len(t, q.GetDomainEvents(), 1)
	})

	t.Run("rejects missing number and past validity", func(t *testing.T) {
		_, err := NewQuote(uuid.New(), uuid.New(), "", "Globex", nil, time.Now().Add(time.Hour))
		assert.Error(t, err)

		_, err = NewQuote(uuid.New(), uuid.New(), "Q-20260101-0001", "Globex", nil, time.Now().Add(-time.Hour))
		assert.Error(t, err)
	})
}

func TestNewQuoteNumber_Format(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	number := NewQuoteNumber(now)
	assert.Regexp(t, regexp.MustCompile(`^Q-20260315-\d{4}$`), number)
}

func TestQuote_AddItem(t *testing.T) {
	t.Run("aggregates both price tiers", func(t *testing.T) {
		q := newDraftQuote(t)

		_, err := q.AddItem(uuid.New(), "Firewall", "FW-01", 2, decimal.NewFromInt(90), decimal.NewFromInt(120))
		require.NoError(t, err)
		_, err = q.AddItem(uuid.New(), "VPN", "VPN-01", 1, decimal.NewFromInt(45), decimal.NewFromInt(60))
		require.NoError(t, err)

		assert.True(t, q.PartnerSubtotal.Equal(decimal.NewFromInt(225)), "partner subtotal = 2x90 + 45")
		assert.True(t, q.CustomerSubtotal.Equal(decimal.NewFromInt(300)), "customer subtotal = 2x120 + 60")
		assert.True(t, q.PartnerTotal.Equal(decimal.NewFromInt(225)))
		assert.True(t, q.CustomerTotal.Equal(decimal.NewFromInt(300)))
		assert.True(t, q.DiscountAmount.IsZero())
	})

	t.Run("rejects customer price below partner price", func(t *testing.T) {
		q := newDraftQuote(t)
		_, err := q.AddItem(uuid.New(), "Firewall", "FW-01", 1, decimal.NewFromInt(100), decimal.NewFromInt(99))
		assert.ErrorIs(t, err, shared.ErrNegativeMargin)
	})

	t.Run("allows customer price equal to partner price", func(t *testing.T) {
		q := newDraftQuote(t)
		_, err := q.AddItem(uuid.New(), "Firewall", "FW-01", 1, decimal.NewFromInt(100), decimal.NewFromInt(100))
		assert.NoError(t, err)
		assert.True(t, q.ProfitMargin().IsZero())
	})

	t.Run("rejects duplicate product and bad quantity", func(t *testing.T) {
		q := newDraftQuote(t)
		productID := uuid.New()

		_, err := q.AddItem(productID, "Firewall", "FW-01", 1, decimal.NewFromInt(90), decimal.NewFromInt(120))
		require.NoError(t, err)
		_, err = q.AddItem(productID, "Firewall", "FW-01", 2, decimal.NewFromInt(90), decimal.NewFromInt(120))
		assert.Error(t, err)

		_, err = q.AddItem(uuid.New(), "VPN", "VPN-01", 0, decimal.NewFromInt(45), decimal.NewFromInt(60))
		assert.Error(t, err)
	})

	t.Run("frozen after leaving draft", func(t *testing.T) {
		q := newDraftQuote(t)
		item, err := q.AddItem(uuid.New(), "Firewall", "FW-01", 1, decimal.NewFromInt(90), decimal.NewFromInt(120))
		require.NoError(t, err)
		require.NoError(t, q.Send())

		_, err = q.AddItem(uuid.New(), "VPN", "VPN-01", 1, decimal.NewFromInt(45), decimal.NewFromInt(60))
		assert.Error(t, err)
		assert.Error(t, q.RemoveItem(item.ID))
	})
}

func TestQuote_RemoveItem_RecalculatesTotals(t *testing.T) {
	q := newDraftQuote(t)
	item, err := q.AddItem(uuid.New(), "Firewall", "FW-01", 2, decimal.NewFromInt(90), decimal.NewFromInt(120))
	require.NoError(t, err)
	_, err = q.AddItem(uuid.New(), "VPN", "VPN-01", 1, decimal.NewFromInt(45), decimal.NewFromInt(60))
	require.NoError(t, err)

	require.NoError(t, q.RemoveItem(item.ID))
	assert.True(t, q.PartnerTotal.Equal(decimal.NewFromInt(45)))
	assert.True(t, q.CustomerTotal.Equal(decimal.NewFromInt(60)))

	assert.Error(t, q.RemoveItem(uuid.New()))
}

func TestQuote_DiscountAppliesToBothTiers(t *testing.T) {
	q := newDraftQuote(t)
	_, err := q.AddItem(uuid.New(), "Firewall", "FW-01", 1, decimal.NewFromInt(90), decimal.NewFromInt(120))
	require.NoError(t, err)

	q.DiscountAmount = decimal.NewFromInt(10)
	_, err = q.AddItem(uuid.New(), "VPN", "VPN-01", 1, decimal.NewFromInt(45), decimal.NewFromInt(60))
	require.NoError(t, err)

	assert.True(t, q.PartnerSubtotal.Equal(decimal.NewFromInt(135)))
	assert.True(t, q.CustomerSubtotal.Equal(decimal.NewFromInt(180)))
	assert.True(t, q.PartnerTotal.Equal(decimal.NewFromInt(125)), "partner total = subtotal - discount")
	assert.True(t, q.CustomerTotal.Equal(decimal.NewFromInt(170)), "customer total = subtotal - discount")
}

func TestQuoteStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    QuoteStatus
		to      QuoteStatus
		allowed bool
	}{
		{QuoteStatusDraft, QuoteStatusSent, true},
		{QuoteStatusDraft, QuoteStatusApproved, false},
		{QuoteStatusDraft, QuoteStatusRejected, false},
		{QuoteStatusSent, QuoteStatusApproved, true},
		{QuoteStatusSent, QuoteStatusRejected, true},
		{QuoteStatusSent, QuoteStatusDraft, false},
		{QuoteStatusApproved, QuoteStatusRejected, false},
		{QuoteStatusApproved, QuoteStatusSent, false},
		{QuoteStatusRejected, QuoteStatusApproved, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}

	assert.True(t, QuoteStatusApproved.IsTerminal())
	assert.True(t, QuoteStatusRejected.IsTerminal())
	assert.False(t, QuoteStatusSent.IsTerminal())
}

func TestParseQuoteStatus(t *testing.T) {
	status, err := ParseQuoteStatus(" APPROVED ")
	require.NoError(t, err)
	assert.Equal(t, QuoteStatusApproved, status)

	_, err = ParseQuoteStatus("pending")
	assert.Error(t, err)
}

func TestQuote_Lifecycle(t *testing.T) {
	t.Run("send requires items", func(t *testing.T) {
		q := newDraftQuote(t)
		assert.Error(t, q.Send())
	})

	t.Run("full path to approved is terminal", func(t *testing.T) {
		q := newDraftQuote(t)
		_, err := q.AddItem(uuid.New(), "Firewall", "FW-01", 1, decimal.NewFromInt(90), decimal.NewFromInt(120))
		require.NoError(t, err)

		require.NoError(t, q.Send())
		require.NotNil(t, q.SentAt)

		require.NoError(t, q.Approve())
		require.NotNil(t, q.ApprovedAt)
		assert.True(t, q.IsApproved())

		assert.Error(t, q.Reject("changed mind"))
		assert.Error(t, q.Send())
	})

	t.Run("reject records reason", func(t *testing.T) {
		q := newDraftQuote(t)
		_, err := q.AddItem(uuid.New(), "Firewall", "FW-01", 1, decimal.NewFromInt(90), decimal.NewFromInt(120))
		require.NoError(t, err)
		require.NoError(t, q.Send())

		require.NoError(t, q.Reject("too expensive"))
		assert.Equal(t, "too expensive", q.Notes)
		assert.Error(t, q.Approve())
	})

	t.Run("transition to current status is rejected", func(t *testing.T) {
		q := newDraftQuote(t)
		assert.Error(t, q.TransitionTo(QuoteStatusDraft))
	})
}

func TestQuote_CanRespond(t *testing.T) {
	customerID := uuid.New()
	q, err := NewQuote(uuid.New(), uuid.New(), NewQuoteNumber(time.Now()), "Globex", &customerID, time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, q.CanRespond(customerID))
	assert.False(t, q.CanRespond(uuid.New()))

	anonymous := newDraftQuote(t)
	assert.False(t, anonymous.CanRespond(customerID))
}

func TestResolveCustomerUnitPrice(t *testing.T) {
	partnerPrice := decimal.NewFromInt(90)

	t.Run("partner actor must supply a price", func(t *testing.T) {
		_, err := ResolveCustomerUnitPrice(partnerPrice, nil, true)
		assert.Error(t, err)
	})

	t.Run("provider actor defaults to partner price", func(t *testing.T) {
		price, err := ResolveCustomerUnitPrice(partnerPrice, nil, false)
		require.NoError(t, err)
		assert.True(t, price.Equal(partnerPrice))
	})

	t.Run("undercutting the partner price is rejected", func(t *testing.T) {
		below := decimal.NewFromInt(89)
		_, err := ResolveCustomerUnitPrice(partnerPrice, &below, true)
		assert.ErrorIs(t, err, shared.ErrNegativeMargin)

		negative := decimal.NewFromInt(-1)
		_, err = ResolveCustomerUnitPrice(partnerPrice, &negative, true)
		assert.Error(t, err)
	})

	t.Run("price at or above partner price passes", func(t *testing.T) {
		equal := decimal.NewFromInt(90)
		price, err := ResolveCustomerUnitPrice(partnerPrice, &equal, true)
		require.NoError(t, err)
		assert.True(t, price.Equal(partnerPrice))
	})
}

func TestProfitMarginPercent(t *testing.T) {
	t.Run("rounds half-up to two decimals", func(t *testing.T) {
		// (300 - 225) / 300 x 100 = 25%
		margin := ProfitMarginPercent(decimal.NewFromInt(300), decimal.NewFromInt(225))
		assert.True(t, margin.Equal(decimal.NewFromInt(25)))

		// (100 - 66.666) / 100 x 100 = 33.334 -> 33.33
		margin = ProfitMarginPercent(decimal.NewFromInt(100), decimal.RequireFromString("66.666"))
		assert.Equal(t, "33.33", margin.StringFixed(2))
	})

	t.Run("zero revenue yields zero margin", func(t *testing.T) {
		margin := ProfitMarginPercent(decimal.Zero, decimal.Zero)
		assert.True(t, margin.IsZero())
	})
}
