package dao

import (
	"context"

	"gorm.io/gorm"
)

// Transact runs fn inside one database transaction. Any error returned by fn
// rolls back every statement issued through tx.
func Transact(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}
