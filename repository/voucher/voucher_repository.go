package voucher

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type VoucherRepository interface {
	GetByCode(ctx context.Context, shopID uint64, code string) (*model.Voucher, error)
	GetByCodeTx(ctx context.Context, tx *sqlx.Tx, shopID uint64, code string) (*model.Voucher, error)
	ListActiveByShop(ctx context.Context, shopID uint64) ([]model.Voucher, error)
	IncrementUsageTx(ctx context.Context, tx *sqlx.Tx, voucherID uint64) (bool, error)
}

func NewVoucherRepository(conn *sqlx.DB) VoucherRepository {
	return &SQL{conn: conn}
}

// BINARY forces a case-sensitive code match regardless of column collation.
const getVoucherByCode = `SELECT id, shop_id, code, type, value, min_order_value, usage_limit, used_count, valid_from, valid_until, is_active
FROM voucher WHERE shop_id = ? AND BINARY code = ?`

func (r *SQL) GetByCode(ctx context.Context, shopID uint64, code string) (*model.Voucher, error) {
	var v model.Voucher
	if err := r.conn.QueryRowxContext(ctx, getVoucherByCode, shopID, code).StructScan(&v); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *SQL) GetByCodeTx(ctx context.Context, tx *sqlx.Tx, shopID uint64, code string) (*model.Voucher, error) {
	var v model.Voucher
	if err := tx.QueryRowxContext(ctx, getVoucherByCode, shopID, code).StructScan(&v); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *SQL) ListActiveByShop(ctx context.Context, shopID uint64) ([]model.Voucher, error) {
	q := `SELECT id, shop_id, code, type, value, min_order_value, usage_limit, used_count, valid_from, valid_until, is_active
FROM voucher WHERE shop_id = ? AND is_active = 1 ORDER BY id`
	rows, err := r.conn.QueryxContext(ctx, q, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vouchers := make([]model.Voucher, 0)
	for rows.Next() {
		var v model.Voucher
		if err := rows.StructScan(&v); err != nil {
			return nil, err
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}

// IncrementUsageTx is an atomic conditional increment: the WHERE guard
// keeps used_count from exceeding usage_limit under concurrent
// redemptions. Returns false when the limit was already reached.
func (r *SQL) IncrementUsageTx(ctx context.Context, tx *sqlx.Tx, voucherID uint64) (bool, error) {
	q := "UPDATE voucher SET used_count = used_count + 1 WHERE id = ? AND (usage_limit IS NULL OR used_count < usage_limit)"
	res, err := tx.ExecContext(ctx, q, voucherID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
