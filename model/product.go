package model

import "github.com/shopspring/decimal"

// ProductInfo is the product (or product+variant) view the cart and order
// flows need: effective unit price, current stock, and the owning shop.
type ProductInfo struct {
	ProductID   uint64          `db:"product_id"`
	VariantID   *uint64         `db:"variant_id"`
	Name        string          `db:"name"`
	VariantName *string         `db:"variant_name"`
	Price       decimal.Decimal `db:"price"`
	Stock       int64           `db:"stock_quantity"`
	ShopID      uint64          `db:"shop_id"`
}
