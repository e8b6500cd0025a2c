package tx

import (
	"context"
	"errors"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

type TxRepository interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	CommitTx(tx *sqlx.Tx) error
	RollbackTx(tx *sqlx.Tx) error
}

type txRepo struct {
	db              *sqlx.DB
	lockWaitTimeout time.Duration
}

func NewTxRepository(db *sqlx.DB, lockWaitTimeout time.Duration) TxRepository {
	return &txRepo{db: db, lockWaitTimeout: lockWaitTimeout}
}

// BeginTx opens a transaction with a bounded row-lock wait, so a checkout
// stuck behind another one fails fast instead of blocking indefinitely.
func (r *txRepo) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	if r.lockWaitTimeout > 0 {
		secs := int64(r.lockWaitTimeout / time.Second)
		if secs < 1 {
			secs = 1
		}
		if _, err := tx.ExecContext(ctx, "SET innodb_lock_wait_timeout = ?", secs); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}
	return tx, nil
}

func (r *txRepo) CommitTx(tx *sqlx.Tx) error {
	return tx.Commit()
}

func (r *txRepo) RollbackTx(tx *sqlx.Tx) error {
	return tx.Rollback()
}

// IsLockWaitTimeout reports whether err is a MySQL lock wait timeout; the
// enclosing operation is safe to retry by the caller.
func IsLockWaitTimeout(err error) bool {
	var me *mysqldriver.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrLockWaitTimeout
}

// IsDeadlock reports whether err is a MySQL deadlock rollback.
func IsDeadlock(err error) bool {
	var me *mysqldriver.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDeadlock
}
