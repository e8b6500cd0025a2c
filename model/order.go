package model

import (
	"time"

	"github.com/shopspring/decimal"

	"marketplace/constant"
)

// ShippingAddress is snapshotted onto each order at placement time.
type ShippingAddress struct {
	Recipient  string `json:"recipient" db:"recipient" validate:"required"`
	Phone      string `json:"phone" db:"phone" validate:"required"`
	Line       string `json:"line" db:"address_line" validate:"required"`
	City       string `json:"city" db:"city" validate:"required"`
	Province   string `json:"province" db:"province" validate:"required"`
	PostalCode string `json:"postal_code" db:"postal_code" validate:"required"`
}

type Order struct {
	ID             uint64                 `db:"id"`
	OrderNumber    string                 `db:"order_number"`
	BuyerID        uint64                 `db:"buyer_id"`
	ShopID         uint64                 `db:"shop_id"`
	Subtotal       decimal.Decimal        `db:"subtotal"`
	ShippingFee    decimal.Decimal        `db:"shipping_fee"`
	DiscountAmount decimal.Decimal        `db:"discount_amount"`
	Total          decimal.Decimal        `db:"total"`
	Status         constant.OrderStatus   `db:"status"`
	PaymentMethod  constant.PaymentMethod `db:"payment_method"`
	PaymentStatus  constant.PaymentStatus `db:"payment_status"`
	Recipient      string                 `db:"recipient"`
	Phone          string                 `db:"phone"`
	AddressLine    string                 `db:"address_line"`
	City           string                 `db:"city"`
	Province       string                 `db:"province"`
	PostalCode     string                 `db:"postal_code"`
	CreatedAt      time.Time              `db:"created_at"`
}

// OrderItem snapshots name and price at placement; later product edits must
// not affect placed orders.
type OrderItem struct {
	ID          uint64          `db:"id"`
	OrderID     uint64          `db:"order_id"`
	ProductID   uint64          `db:"product_id"`
	VariantID   *uint64         `db:"variant_id"`
	ProductName string          `db:"product_name"`
	VariantName *string         `db:"variant_name"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Quantity    int             `db:"quantity"`
}

type PlaceOrderRequest struct {
	VoucherCode     string                 `json:"voucher_code"`
	PaymentMethod   constant.PaymentMethod `json:"payment_method" validate:"required"`
	ShippingAddress ShippingAddress        `json:"shipping_address" validate:"required"`
}

type OrderSummary struct {
	OrderID        uint64                 `json:"order_id"`
	OrderNumber    string                 `json:"order_number"`
	ShopID         uint64                 `json:"shop_id"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	DiscountAmount decimal.Decimal        `json:"discount_amount"`
	ShippingFee    decimal.Decimal        `json:"shipping_fee"`
	Total          decimal.Decimal        `json:"total"`
	Status         constant.OrderStatus   `json:"status"`
	PaymentMethod  constant.PaymentMethod `json:"payment_method"`
}

type PlaceOrderResponse struct {
	Orders []OrderSummary `json:"orders"`
}

type OrderItemView struct {
	ProductID   uint64          `json:"product_id"`
	VariantID   *uint64         `json:"variant_id,omitempty"`
	ProductName string          `json:"product_name"`
	VariantName string          `json:"variant_name,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

type OrderDetailResponse struct {
	OrderSummary
	PaymentStatus   constant.PaymentStatus `json:"payment_status"`
	ShippingAddress ShippingAddress        `json:"shipping_address"`
	Items           []OrderItemView        `json:"items"`
	CreatedAt       time.Time              `json:"created_at"`
}

type UpdateOrderStatusRequest struct {
	Status constant.OrderStatus `json:"status" validate:"required"`
}
