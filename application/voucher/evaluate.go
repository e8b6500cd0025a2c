package voucher

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"marketplace/constant"
	"marketplace/model"
)

var oneHundred = decimal.NewFromInt(100)

// Evaluate runs the eligibility checks in order, short-circuiting on the
// first failure, and computes the discount for an eligible voucher. The
// returned ErrorType is Successful when the voucher applies; otherwise it
// names the first failed check, with detail for the minimum-order shortfall.
func Evaluate(v *model.Voucher, subtotal decimal.Decimal, now time.Time) (decimal.Decimal, constant.ErrorType, string) {
	if v == nil {
		return decimal.Zero, constant.ErrVoucherNotFound, ""
	}
	if !v.IsActive {
		return decimal.Zero, constant.ErrVoucherInactive, ""
	}
	if now.Before(v.ValidFrom) {
		return decimal.Zero, constant.ErrVoucherNotYetValid, ""
	}
	if now.After(v.ValidUntil) {
		return decimal.Zero, constant.ErrVoucherExpired, ""
	}
	if v.UsageLimit != nil && v.UsedCount >= *v.UsageLimit {
		return decimal.Zero, constant.ErrVoucherUsageLimitReached, ""
	}
	if subtotal.LessThan(v.MinOrderValue) {
		shortfall := v.MinOrderValue.Sub(subtotal)
		return decimal.Zero, constant.ErrVoucherBelowMinimum,
			fmt.Sprintf("subtotal is %s short of the %s minimum", shortfall.StringFixed(2), v.MinOrderValue.StringFixed(2))
	}
	return Discount(v, subtotal), constant.Successful, ""
}

// Discount computes the discount amount for a voucher assumed eligible:
// percentage of the subtotal or a fixed amount, never exceeding the
// subtotal, rounded to currency precision (half-up).
func Discount(v *model.Voucher, subtotal decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	switch v.Type {
	case constant.VoucherTypePercentage:
		d = subtotal.Mul(v.Value).Div(oneHundred)
	case constant.VoucherTypeFixedAmount:
		d = v.Value
	default:
		return decimal.Zero
	}
	if d.GreaterThan(subtotal) {
		d = subtotal
	}
	return d.Round(2)
}
