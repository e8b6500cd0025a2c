package model

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID        uint64  `db:"id"`
	UserID    uint64  `db:"user_id"`
	ProductID uint64  `db:"product_id"`
	VariantID *uint64 `db:"variant_id"`
	Quantity  int     `db:"quantity"`
}

// CartItemDetail is a cart row joined with its product, variant and shop.
// Product-side columns are nullable: the product or variant may have been
// removed since the row was added.
type CartItemDetail struct {
	ID          uint64              `db:"id"`
	UserID      uint64              `db:"user_id"`
	ProductID   uint64              `db:"product_id"`
	VariantID   *uint64             `db:"variant_id"`
	Quantity    int                 `db:"quantity"`
	ProductName sql.NullString      `db:"product_name"`
	VariantName sql.NullString      `db:"variant_name"`
	UnitPrice   decimal.NullDecimal `db:"unit_price"`
	Stock       sql.NullInt64       `db:"stock_quantity"`
	ShopID      sql.NullInt64       `db:"shop_id"`
	ShopName    sql.NullString      `db:"shop_name"`
	ShopStatus  sql.NullString      `db:"shop_status"`
}

// Available reports whether the row still points at a sellable product in
// an active shop. A row referencing a variant needs the variant side of
// the join too: the coalesced base price must not stand in for a deleted
// variant.
func (d *CartItemDetail) Available() bool {
	if d.VariantID != nil && !d.VariantName.Valid {
		return false
	}
	return d.ProductName.Valid && d.UnitPrice.Valid && d.ShopID.Valid &&
		d.ShopStatus.String == "active"
}

type CartItemView struct {
	ItemID      uint64          `json:"item_id"`
	ProductID   uint64          `json:"product_id"`
	VariantID   *uint64         `json:"variant_id,omitempty"`
	ProductName string          `json:"product_name"`
	VariantName string          `json:"variant_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Unavailable bool            `json:"unavailable,omitempty"`
}

type ShopCartGroup struct {
	ShopID   uint64          `json:"shop_id"`
	ShopName string          `json:"shop_name"`
	Items    []CartItemView  `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartView is the grouped-by-shop cart. Unavailable rows are excluded from
// all subtotals but kept in the response so clients can clean them up.
type CartView struct {
	Groups      []ShopCartGroup `json:"groups"`
	Unavailable []CartItemView  `json:"unavailable,omitempty"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

type AddCartItemRequest struct {
	ProductID uint64  `json:"product_id" validate:"required"`
	VariantID *uint64 `json:"variant_id"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
}

// AddCartItemResponse reports the resulting row quantity. StockLimited is
// set when the requested quantity was capped at the available stock.
type AddCartItemResponse struct {
	ItemID       uint64 `json:"item_id"`
	Quantity     int    `json:"quantity"`
	StockLimited bool   `json:"stock_limited,omitempty"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type SyncCartRequest struct {
	Items []AddCartItemRequest `json:"items" validate:"dive"`
}
