package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(99.99), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(99.99)))
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyUSDFromFloat(100.50)
	b := NewMoneyUSDFromFloat(49.50)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "150.00 USD", sum.String())
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.Equal(t, "51.00 USD", diff.String())
	})

	t.Run("multiply", func(t *testing.T) {
		prod := b.Multiply(decimal.NewFromInt(2))
		assert.Equal(t, "99.00 USD", prod.String())
	})

	t.Run("currency mismatch rejected", func(t *testing.T) {
		eur, _ := NewMoney(decimal.NewFromInt(1), Currency("EUR"))
		_, err := a.Add(eur)
		assert.Error(t, err)
		_, err = a.Subtract(eur)
		assert.Error(t, err)
		_, err = a.LessThan(eur)
		assert.Error(t, err)
	})
}

func TestMoney_Comparisons(t *testing.T) {
	low := NewMoneyUSDFromFloat(10)
	high := NewMoneyUSDFromFloat(20)

	lt, err := low.LessThan(high)
	require.NoError(t, err)
	assert.True(t, lt)

	gte, err := high.GreaterThanOrEqual(low)
	require.NoError(t, err)
	assert.True(t, gte)

	gte, err = high.GreaterThanOrEqual(high)
	require.NoError(t, err)
	assert.True(t, gte)

	assert.True(t, high.Equals(NewMoneyUSDFromFloat(20)))
	assert.False(t, high.Equals(low))
}

func TestMoney_ApplyDiscountRate(t *testing.T) {
	// The default partner price is base price less 10%
	base := NewMoneyUSDFromFloat(100)
	discounted := base.ApplyDiscountRate(decimal.NewFromFloat(0.1))
	assert.Equal(t, "90.00 USD", discounted.String())
}

func TestMoney_Round(t *testing.T) {
	m := NewMoneyUSDFromFloat(10.005)
	assert.Equal(t, "10.01", m.Round(2).Amount().StringFixed(2))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyUSDFromFloat(12.34)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("42.50"))
	assert.Equal(t, "42.50 USD", m.String())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}
