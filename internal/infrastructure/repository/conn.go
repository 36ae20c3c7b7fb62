package repository

import (
	"context"

	"github.com/Selvam-T/POS-sub000/internal/infrastructure/database"
	"gorm.io/gorm"
)

// conn resolves the database handle for a call: the transaction carried in
// the context when one is open, the base connection otherwise. Every
// repository method goes through this so a service-level transaction scope
// covers all participating writes.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.WithContext(ctx)
}
