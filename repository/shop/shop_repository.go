package shop

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ShopRepository interface {
	GetByID(ctx context.Context, shopID uint64) (*model.Shop, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, shopID uint64) (*model.Shop, error)
}

func NewShopRepository(conn *sqlx.DB) ShopRepository {
	return &SQL{conn: conn}
}

const getShopQuery = "SELECT id, owner_id, name, shipping_fee, free_shipping_threshold, status FROM shop WHERE id = ?"

func (r *SQL) GetByID(ctx context.Context, shopID uint64) (*model.Shop, error) {
	var s model.Shop
	if err := r.conn.QueryRowxContext(ctx, getShopQuery, shopID).StructScan(&s); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, shopID uint64) (*model.Shop, error) {
	var s model.Shop
	if err := tx.QueryRowxContext(ctx, getShopQuery, shopID).StructScan(&s); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
