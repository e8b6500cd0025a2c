package model

import (
	"time"

	"github.com/shopspring/decimal"

	"marketplace/constant"
)

type Voucher struct {
	ID            uint64               `db:"id"`
	ShopID        uint64               `db:"shop_id"`
	Code          string               `db:"code"`
	Type          constant.VoucherType `db:"type"`
	Value         decimal.Decimal      `db:"value"`
	MinOrderValue decimal.Decimal      `db:"min_order_value"`
	UsageLimit    *int64               `db:"usage_limit"` // nil means unlimited
	UsedCount     int64                `db:"used_count"`
	ValidFrom     time.Time            `db:"valid_from"`
	ValidUntil    time.Time            `db:"valid_until"`
	IsActive      bool                 `db:"is_active"`
}

type ValidateVoucherRequest struct {
	Code     string          `json:"code" validate:"required"`
	ShopID   uint64          `json:"shop_id" validate:"required"`
	Subtotal decimal.Decimal `json:"subtotal" validate:"required"`
}

// VoucherValidationResult is the discriminated outcome of a validation:
// either Valid with a discount, or a reason code plus detail.
type VoucherValidationResult struct {
	Valid          bool            `json:"valid"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Reason         string          `json:"reason,omitempty"`
	Detail         string          `json:"detail,omitempty"`
}

type AvailableVoucher struct {
	VoucherID      uint64               `json:"voucher_id"`
	Code           string               `json:"code"`
	Type           constant.VoucherType `json:"type"`
	Value          decimal.Decimal      `json:"value"`
	MinOrderValue  decimal.Decimal      `json:"min_order_value"`
	ValidUntil     time.Time            `json:"valid_until"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
}
