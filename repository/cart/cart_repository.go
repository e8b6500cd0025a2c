package cart

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type CartRepository interface {
	GetItems(ctx context.Context, userID uint64) ([]model.CartItemDetail, error)
	GetItemsTx(ctx context.Context, tx *sqlx.Tx, userID uint64) ([]model.CartItemDetail, error)
	GetItem(ctx context.Context, userID, productID uint64, variantID *uint64) (*model.CartItem, error)
	GetItemByID(ctx context.Context, userID, itemID uint64) (*model.CartItem, error)
	AddQuantity(ctx context.Context, userID, productID uint64, variantID *uint64, quantity int, max int64) (*model.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID uint64, quantity int) error
	DeleteItem(ctx context.Context, userID, itemID uint64) error
	DeleteAll(ctx context.Context, userID uint64) error
	DeleteAllTx(ctx context.Context, tx *sqlx.Tx, userID uint64) error
	ReplaceAllTx(ctx context.Context, tx *sqlx.Tx, userID uint64, items []model.CartItem) error
}

func NewCartRepository(conn *sqlx.DB) CartRepository {
	return &SQL{conn: conn}
}

// cartDetailQuery joins cart rows with product/variant pricing and the
// owning shop. LEFT JOINs keep rows whose product or variant has been
// removed so callers can flag them unavailable. The effective unit price
// is the variant price when a variant is referenced.
const cartDetailQuery = `SELECT ci.id, ci.user_id, ci.product_id, ci.variant_id, ci.quantity,
p.name AS product_name, pv.name AS variant_name,
COALESCE(pv.price, p.price) AS unit_price,
COALESCE(pv.stock_quantity, p.stock_quantity) AS stock_quantity,
s.id AS shop_id, s.name AS shop_name, s.status AS shop_status
FROM cart_item ci
LEFT JOIN product p ON p.id = ci.product_id
LEFT JOIN product_variant pv ON pv.id = ci.variant_id AND pv.product_id = ci.product_id
LEFT JOIN shop s ON s.id = p.shop_id
WHERE ci.user_id = ?
ORDER BY ci.id`

func scanDetails(rows *sqlx.Rows) ([]model.CartItemDetail, error) {
	items := make([]model.CartItemDetail, 0)
	for rows.Next() {
		var d model.CartItemDetail
		if err := rows.StructScan(&d); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *SQL) GetItems(ctx context.Context, userID uint64) ([]model.CartItemDetail, error) {
	rows, err := r.conn.QueryxContext(ctx, cartDetailQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDetails(rows)
}

func (r *SQL) GetItemsTx(ctx context.Context, tx *sqlx.Tx, userID uint64) ([]model.CartItemDetail, error) {
	rows, err := tx.QueryxContext(ctx, cartDetailQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDetails(rows)
}

func (r *SQL) GetItem(ctx context.Context, userID, productID uint64, variantID *uint64) (*model.CartItem, error) {
	var item model.CartItem
	q := "SELECT id, user_id, product_id, variant_id, quantity FROM cart_item WHERE user_id = ? AND product_id = ? AND variant_id <=> ?"
	if err := r.conn.QueryRowxContext(ctx, q, userID, productID, variantID).StructScan(&item); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *SQL) GetItemByID(ctx context.Context, userID, itemID uint64) (*model.CartItem, error) {
	var item model.CartItem
	q := "SELECT id, user_id, product_id, variant_id, quantity FROM cart_item WHERE id = ? AND user_id = ?"
	if err := r.conn.QueryRowxContext(ctx, q, itemID, userID).StructScan(&item); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// AddQuantity upserts a cart row by adding to its quantity, capped at max,
// in one statement. The unique key on (user_id, product_id, variant_id)
// collapses concurrent adds into one row, and the in-SQL addition keeps
// neither add from overwriting the other. Returns the resulting row.
func (r *SQL) AddQuantity(ctx context.Context, userID, productID uint64, variantID *uint64, quantity int, max int64) (*model.CartItem, error) {
	q := `INSERT INTO cart_item (user_id, product_id, variant_id, quantity) VALUES (?, ?, ?, LEAST(?, ?))
ON DUPLICATE KEY UPDATE quantity = LEAST(quantity + ?, ?), id = LAST_INSERT_ID(id)`
	res, err := r.conn.ExecContext(ctx, q, userID, productID, variantID, quantity, max, quantity, max)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetItemByID(ctx, userID, uint64(id))
}

func (r *SQL) UpdateQuantity(ctx context.Context, userID, itemID uint64, quantity int) error {
	res, err := r.conn.ExecContext(ctx, "UPDATE cart_item SET quantity = ? WHERE id = ? AND user_id = ?", quantity, itemID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SQL) DeleteItem(ctx context.Context, userID, itemID uint64) error {
	res, err := r.conn.ExecContext(ctx, "DELETE FROM cart_item WHERE id = ? AND user_id = ?", itemID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SQL) DeleteAll(ctx context.Context, userID uint64) error {
	_, err := r.conn.ExecContext(ctx, "DELETE FROM cart_item WHERE user_id = ?", userID)
	return err
}

func (r *SQL) DeleteAllTx(ctx context.Context, tx *sqlx.Tx, userID uint64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM cart_item WHERE user_id = ?", userID)
	return err
}

// ReplaceAllTx swaps the whole cart in one transaction (guest merge).
func (r *SQL) ReplaceAllTx(ctx context.Context, tx *sqlx.Tx, userID uint64, items []model.CartItem) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_item WHERE user_id = ?", userID); err != nil {
		return err
	}
	q := "INSERT INTO cart_item (user_id, product_id, variant_id, quantity) VALUES (?, ?, ?, ?)"
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q, userID, it.ProductID, it.VariantID, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}
