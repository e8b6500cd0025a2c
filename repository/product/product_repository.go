package product

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	GetInfo(ctx context.Context, productID uint64, variantID *uint64) (*model.ProductInfo, error)
	DecrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, variantID *uint64, quantity int) (bool, error)
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	getProductInfo = `SELECT p.id AS product_id, NULL AS variant_id, p.name, NULL AS variant_name, p.price, p.stock_quantity, p.shop_id
FROM product p WHERE p.id = ?`

	getVariantInfo = `SELECT p.id AS product_id, pv.id AS variant_id, p.name, pv.name AS variant_name, pv.price, pv.stock_quantity, p.shop_id
FROM product p JOIN product_variant pv ON pv.product_id = p.id
WHERE p.id = ? AND pv.id = ?`
)

func (r *SQL) GetInfo(ctx context.Context, productID uint64, variantID *uint64) (*model.ProductInfo, error) {
	var info model.ProductInfo
	var err error
	if variantID != nil {
		err = r.conn.QueryRowxContext(ctx, getVariantInfo, productID, *variantID).StructScan(&info)
	} else {
		err = r.conn.QueryRowxContext(ctx, getProductInfo, productID).StructScan(&info)
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// DecrementStockTx is an atomic conditional decrement: the WHERE guard
// keeps stock from ever going negative under concurrent checkouts. Returns
// false when the remaining stock could not cover the quantity.
func (r *SQL) DecrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, variantID *uint64, quantity int) (bool, error) {
	var res sql.Result
	var err error
	if variantID != nil {
		res, err = tx.ExecContext(ctx,
			"UPDATE product_variant SET stock_quantity = stock_quantity - ? WHERE id = ? AND product_id = ? AND stock_quantity >= ?",
			quantity, *variantID, productID, quantity)
	} else {
		res, err = tx.ExecContext(ctx,
			"UPDATE product SET stock_quantity = stock_quantity - ? WHERE id = ? AND stock_quantity >= ?",
			quantity, productID, quantity)
	}
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
