package order

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"marketplace/constant"
	"marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, o *model.Order) (uint64, error)
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItem) error
	InsertRedemptionTx(ctx context.Context, tx *sqlx.Tx, voucherID, orderID uint64) error
	GetByID(ctx context.Context, orderID uint64) (*model.Order, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.Order, error)
	GetItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error)
	ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Order, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, from, to constant.OrderStatus) (bool, error)
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const orderColumns = "id, order_number, buyer_id, shop_id, subtotal, shipping_fee, discount_amount, total, status, payment_method, payment_status, recipient, phone, address_line, city, province, postal_code, created_at"

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, o *model.Order) (uint64, error) {
	q := "INSERT INTO `order` (order_number, buyer_id, shop_id, subtotal, shipping_fee, discount_amount, total, status, payment_method, payment_status, recipient, phone, address_line, city, province, postal_code) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	res, err := tx.ExecContext(ctx, q,
		o.OrderNumber, o.BuyerID, o.ShopID, o.Subtotal, o.ShippingFee, o.DiscountAmount, o.Total,
		o.Status, o.PaymentMethod, o.PaymentStatus,
		o.Recipient, o.Phone, o.AddressLine, o.City, o.Province, o.PostalCode)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItem) error {
	q := "INSERT INTO order_item (order_id, product_id, variant_id, product_name, variant_name, unit_price, quantity) VALUES (?, ?, ?, ?, ?, ?, ?)"
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q, orderID, it.ProductID, it.VariantID, it.ProductName, it.VariantName, it.UnitPrice, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) InsertRedemptionTx(ctx context.Context, tx *sqlx.Tx, voucherID, orderID uint64) error {
	_, err := tx.ExecContext(ctx, "INSERT INTO voucher_redemption (voucher_id, order_id) VALUES (?, ?)", voucherID, orderID)
	return err
}

func (r *SQL) GetByID(ctx context.Context, orderID uint64) (*model.Order, error) {
	var o model.Order
	if err := r.conn.QueryRowxContext(ctx, "SELECT "+orderColumns+" FROM `order` WHERE id = ?", orderID).StructScan(&o); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// GetByIDTx locks the order row for the duration of a status transition.
func (r *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.Order, error) {
	var o model.Order
	if err := tx.QueryRowxContext(ctx, "SELECT "+orderColumns+" FROM `order` WHERE id = ? FOR UPDATE", orderID).StructScan(&o); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *SQL) GetItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	rows, err := r.conn.QueryxContext(ctx, "SELECT id, order_id, product_id, variant_id, product_name, variant_name, unit_price, quantity FROM order_item WHERE order_id = ? ORDER BY id", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OrderItem, 0)
	for rows.Next() {
		var it model.OrderItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *SQL) ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Order, error) {
	rows, err := r.conn.QueryxContext(ctx, "SELECT "+orderColumns+" FROM `order` WHERE buyer_id = ? ORDER BY id DESC", buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.StructScan(&o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateStatusTx transitions status conditionally on the current value, so
// a concurrent transition that already moved the order makes this a no-op.
func (r *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, from, to constant.OrderStatus) (bool, error) {
	res, err := tx.ExecContext(ctx, "UPDATE `order` SET status = ? WHERE id = ? AND status = ?", to, orderID, from)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
