package voucher_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	appvoucher "marketplace/application/voucher"
	"marketplace/constant"
	"marketplace/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func int64Ptr(v int64) *int64 {
	return &v
}

var evalNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// baseVoucher is eligible at evalNow for any subtotal >= 100.
func baseVoucher() *model.Voucher {
	return &model.Voucher{
		ID:            1,
		ShopID:        10,
		Code:          "SAVE10",
		Type:          constant.VoucherTypePercentage,
		Value:         dec("10"),
		MinOrderValue: dec("100.00"),
		ValidFrom:     evalNow.Add(-24 * time.Hour),
		ValidUntil:    evalNow.Add(24 * time.Hour),
		IsActive:      true,
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name         string
		voucher      func() *model.Voucher
		subtotal     decimal.Decimal
		wantDiscount decimal.Decimal
		wantErrType  constant.ErrorType
	}{
		{
			name:         "eligible at exact minimum",
			voucher:      baseVoucher,
			subtotal:     dec("100.00"),
			wantDiscount: dec("10.00"),
			wantErrType:  constant.Successful,
		},
		{
			name:        "one cent short of minimum",
			voucher:     baseVoucher,
			subtotal:    dec("99.99"),
			wantErrType: constant.ErrVoucherBelowMinimum,
		},
		{
			name:        "nil voucher",
			voucher:     func() *model.Voucher { return nil },
			subtotal:    dec("100.00"),
			wantErrType: constant.ErrVoucherNotFound,
		},
		{
			name: "inactive",
			voucher: func() *model.Voucher {
				v := baseVoucher()
				v.IsActive = false
				return v
			},
			subtotal:    dec("100.00"),
			wantErrType: constant.ErrVoucherInactive,
		},
		{
			name: "not yet valid",
			voucher: func() *model.Voucher {
				v := baseVoucher()
				v.ValidFrom = evalNow.Add(time.Hour)
				return v
			},
			subtotal:    dec("100.00"),
			wantErrType: constant.ErrVoucherNotYetValid,
		},
		{
			name: "expired",
			voucher: func() *model.Voucher {
				v := baseVoucher()
				v.ValidUntil = evalNow.Add(-time.Hour)
				return v
			},
			subtotal:    dec("100.00"),
			wantErrType: constant.ErrVoucherExpired,
		},
		{
			name: "usage limit reached",
			voucher: func() *model.Voucher {
				v := baseVoucher()
				v.UsageLimit = int64Ptr(5)
				v.UsedCount = 5
				return v
			},
			subtotal:    dec("100.00"),
			wantErrType: constant.ErrVoucherUsageLimitReached,
		},
		{
			name: "usage below limit is eligible",
			voucher: func() *model.Voucher {
				v := baseVoucher()
				v.UsageLimit = int64Ptr(5)
				v.UsedCount = 4
				return v
			},
			subtotal:     dec("100.00"),
			wantDiscount: dec("10.00"),
			wantErrType:  constant.Successful,
		},
		{
			name: "inactive reported before expiry",
			voucher: func() *model.Voucher {
				v := baseVoucher()
				v.IsActive = false
				v.ValidUntil = evalNow.Add(-time.Hour)
				return v
			},
			subtotal:    dec("100.00"),
			wantErrType: constant.ErrVoucherInactive,
		},
		{
			name: "expired reported before minimum",
			voucher: func() *model.Voucher {
				v := baseVoucher()
				v.ValidUntil = evalNow.Add(-time.Hour)
				return v
			},
			subtotal:    dec("10.00"),
			wantErrType: constant.ErrVoucherExpired,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			discount, errType, detail := appvoucher.Evaluate(tt.voucher(), tt.subtotal, evalNow)
			if errType != tt.wantErrType {
				t.Fatalf("Evaluate() errType = %v, want %v", errType, tt.wantErrType)
			}
			if errType != constant.Successful {
				if !discount.IsZero() {
					t.Fatalf("Evaluate() discount = %s, want 0 on failure", discount)
				}
				if errType == constant.ErrVoucherBelowMinimum && detail == "" {
					t.Fatal("Evaluate() below-minimum failure should carry detail")
				}
				return
			}
			if !discount.Equal(tt.wantDiscount) {
				t.Fatalf("Evaluate() discount = %s, want %s", discount, tt.wantDiscount)
			}
		})
	}
}

func TestDiscount(t *testing.T) {
	tests := []struct {
		name     string
		vType    constant.VoucherType
		value    decimal.Decimal
		subtotal decimal.Decimal
		want     decimal.Decimal
	}{
		{
			name:     "percentage of subtotal",
			vType:    constant.VoucherTypePercentage,
			value:    dec("10"),
			subtotal: dec("250.00"),
			want:     dec("25.00"),
		},
		{
			name:     "percentage rounds half up",
			vType:    constant.VoucherTypePercentage,
			value:    dec("15"),
			subtotal: dec("33.33"),
			want:     dec("5.00"), // 4.9995 rounds to 5.00
		},
		{
			name:     "hundred percent equals subtotal",
			vType:    constant.VoucherTypePercentage,
			value:    dec("100"),
			subtotal: dec("80.00"),
			want:     dec("80.00"),
		},
		{
			name:     "fixed amount below subtotal",
			vType:    constant.VoucherTypeFixedAmount,
			value:    dec("20.00"),
			subtotal: dec("80.00"),
			want:     dec("20.00"),
		},
		{
			name:     "fixed amount capped at subtotal",
			vType:    constant.VoucherTypeFixedAmount,
			value:    dec("100.00"),
			subtotal: dec("80.00"),
			want:     dec("80.00"),
		},
		{
			name:     "zero subtotal yields zero",
			vType:    constant.VoucherTypeFixedAmount,
			value:    dec("5.00"),
			subtotal: decimal.Zero,
			want:     decimal.Zero,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			v := &model.Voucher{Type: tt.vType, Value: tt.value}
			got := appvoucher.Discount(v, tt.subtotal)
			if !got.Equal(tt.want) {
				t.Fatalf("Discount() = %s, want %s", got, tt.want)
			}
		})
	}
}
