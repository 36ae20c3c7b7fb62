package database

import (
	"context"

	"github.com/Selvam-T/POS-sub000/pkg/apperror"
	"gorm.io/gorm"
)

type txContextKey struct{}

// TxManager runs multi-table write sequences inside a single database
// transaction. The open transaction handle travels in the context, so
// repositories participate transparently and the commit/rollback decision
// stays with the function outcome: nil commits, any error rolls back.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTx executes fn inside a transaction. Nested calls are a programmer
// error and fail fast rather than silently joining or stacking savepoints.
// The DSN's _txlock=immediate makes the write lock acquire at BEGIN.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		return apperror.ErrTransactionAlreadyOpen
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txContextKey{}, tx)
		return fn(txCtx)
	})
}

// TxFromContext returns the open transaction handle, if any.
func TxFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok
}

// InTransaction reports whether the context carries an open transaction.
func InTransaction(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}
