package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"marketplace/application/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name      string
		subtotal  decimal.Decimal
		fee       decimal.Decimal
		threshold *decimal.Decimal
		discount  decimal.Decimal
		wantFee   decimal.Decimal
		wantTotal decimal.Decimal
	}{
		{
			name:      "fee charged below threshold",
			subtotal:  dec("50.00"),
			fee:       dec("10.00"),
			threshold: decPtr("100.00"),
			discount:  dec("5.00"),
			wantFee:   dec("10.00"),
			wantTotal: dec("55.00"),
		},
		{
			name:      "fee waived at threshold",
			subtotal:  dec("100.00"),
			fee:       dec("10.00"),
			threshold: decPtr("100.00"),
			discount:  decimal.Zero,
			wantFee:   decimal.Zero,
			wantTotal: dec("100.00"),
		},
		{
			name:      "fee waived above threshold",
			subtotal:  dec("150.00"),
			fee:       dec("10.00"),
			threshold: decPtr("100.00"),
			discount:  dec("15.00"),
			wantFee:   decimal.Zero,
			wantTotal: dec("135.00"),
		},
		{
			name:      "no threshold always charges fee",
			subtotal:  dec("500.00"),
			fee:       dec("12.50"),
			threshold: nil,
			discount:  decimal.Zero,
			wantFee:   dec("12.50"),
			wantTotal: dec("512.50"),
		},
		{
			name:      "discount equal to subtotal leaves only the fee",
			subtotal:  dec("30.00"),
			fee:       dec("8.00"),
			threshold: decPtr("100.00"),
			discount:  dec("30.00"),
			wantFee:   dec("8.00"),
			wantTotal: dec("8.00"),
		},
		{
			name:      "discount above subtotal is clamped to zero net",
			subtotal:  dec("30.00"),
			fee:       dec("8.00"),
			threshold: nil,
			discount:  dec("40.00"),
			wantFee:   dec("8.00"),
			wantTotal: dec("8.00"),
		},
		{
			name:      "zero subtotal",
			subtotal:  decimal.Zero,
			fee:       dec("10.00"),
			threshold: decPtr("100.00"),
			discount:  decimal.Zero,
			wantFee:   dec("10.00"),
			wantTotal: dec("10.00"),
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.ComputeTotals(tt.subtotal, tt.fee, tt.threshold, tt.discount)
			if !got.ShippingFeeApplied.Equal(tt.wantFee) {
				t.Fatalf("ShippingFeeApplied = %s, want %s", got.ShippingFeeApplied, tt.wantFee)
			}
			if !got.Total.Equal(tt.wantTotal) {
				t.Fatalf("Total = %s, want %s", got.Total, tt.wantTotal)
			}
		})
	}
}
