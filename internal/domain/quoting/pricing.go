package quoting

import (
	"github.com/shopspring/decimal"
	"github.com/tornado/portal/internal/domain/shared"
)

var oneHundred = decimal.NewFromInt(100)

// ResolveCustomerUnitPrice determines the customer-facing unit price for a
// quote line. Partner-scoped actors set their own resale price and must
// supply one per line; it may not undercut what the partner pays the
// provider. Provider-side actors quote at cost, so a missing customer price
// defaults to the partner price.
func ResolveCustomerUnitPrice(partnerUnitPrice decimal.Decimal, customerUnitPrice *decimal.Decimal, partnerScoped bool) (decimal.Decimal, error) {
	if customerUnitPrice == nil {
		if partnerScoped {
			return decimal.Zero, shared.NewDomainError("MISSING_CUSTOMER_PRICE", "Customer unit price is required for each line")
		}
		return partnerUnitPrice, nil
	}

	if customerUnitPrice.IsNegative() {
		return decimal.Zero, shared.NewDomainError("INVALID_PRICE", "Customer unit price cannot be negative")
	}
	if customerUnitPrice.LessThan(partnerUnitPrice) {
		return decimal.Zero, shared.ErrNegativeMargin
	}

	return *customerUnitPrice, nil
}

// ProfitMarginPercent computes (customer - partner) / customer x 100 rounded
// half-up to 2 decimal places. Returns zero when customer revenue is zero.
func ProfitMarginPercent(customerTotal, partnerTotal decimal.Decimal) decimal.Decimal {
	if customerTotal.IsZero() {
		return decimal.Zero
	}
	return customerTotal.Sub(partnerTotal).Div(customerTotal).Mul(oneHundred).Round(2)
}
