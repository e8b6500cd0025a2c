package model

import (
	"github.com/shopspring/decimal"

	"marketplace/constant"
)

type Shop struct {
	ID                    uint64              `db:"id"`
	OwnerID               uint64              `db:"owner_id"`
	Name                  string              `db:"name"`
	ShippingFee           decimal.Decimal     `db:"shipping_fee"`
	FreeShippingThreshold decimal.NullDecimal `db:"free_shipping_threshold"`
	Status                constant.ShopStatus `db:"status"`
}
