package pricing

import "github.com/shopspring/decimal"

// Totals holds the shipping fee actually charged and the final amount due
// for one shop's suborder.
type Totals struct {
	ShippingFeeApplied decimal.Decimal
	Total              decimal.Decimal
}

// ComputeTotals combines a shop subtotal, the shop's shipping policy, and
// an already-capped discount into the final totals. Shipping is waived when
// the subtotal meets the shop's free-shipping threshold. The total is
// clamped so a discount can never drive it negative.
func ComputeTotals(subtotal, shippingFee decimal.Decimal, freeShippingThreshold *decimal.Decimal, discount decimal.Decimal) Totals {
	fee := shippingFee
	if freeShippingThreshold != nil && subtotal.GreaterThanOrEqual(*freeShippingThreshold) {
		fee = decimal.Zero
	}

	net := subtotal.Sub(discount)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return Totals{
		ShippingFeeApplied: fee,
		Total:              net.Add(fee),
	}
}
