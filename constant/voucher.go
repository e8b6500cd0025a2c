package constant

import (
	"database/sql/driver"
	"fmt"
)

// VoucherType selects the discount computation for a voucher.
type VoucherType string

const (
	VoucherTypePercentage  VoucherType = "percentage"
	VoucherTypeFixedAmount VoucherType = "fixed_amount"
)

func (t VoucherType) Valid() bool {
	switch t {
	case VoucherTypePercentage, VoucherTypeFixedAmount:
		return true
	}
	return false
}

func (t VoucherType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown voucher type %q", string(t))
	}
	return string(t), nil
}

func (t *VoucherType) Scan(src interface{}) error {
	var v VoucherType
	switch raw := src.(type) {
	case []byte:
		v = VoucherType(raw)
	case string:
		v = VoucherType(raw)
	default:
		return fmt.Errorf("cannot scan %T into VoucherType", src)
	}
	if !v.Valid() {
		return fmt.Errorf("unknown voucher type %q", string(v))
	}
	*t = v
	return nil
}
