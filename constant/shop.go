package constant

import (
	"database/sql/driver"
	"fmt"
)

// ShopStatus is the closed set of shop states. Only active shops can be
// ordered from.
type ShopStatus string

const (
	ShopStatusPending   ShopStatus = "pending"
	ShopStatusActive    ShopStatus = "active"
	ShopStatusSuspended ShopStatus = "suspended"
)

func (s ShopStatus) Valid() bool {
	switch s {
	case ShopStatusPending, ShopStatusActive, ShopStatusSuspended:
		return true
	}
	return false
}

func (s ShopStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown shop status %q", string(s))
	}
	return string(s), nil
}

func (s *ShopStatus) Scan(src interface{}) error {
	var v ShopStatus
	switch raw := src.(type) {
	case []byte:
		v = ShopStatus(raw)
	case string:
		v = ShopStatus(raw)
	default:
		return fmt.Errorf("cannot scan %T into ShopStatus", src)
	}
	if !v.Valid() {
		return fmt.Errorf("unknown shop status %q", string(v))
	}
	*s = v
	return nil
}
