package service

import (
	"database/sql"

	"gorm.io/gorm"
)

// TxManager runs a callback inside a single database transaction.
// *gorm.DB satisfies it directly; tests substitute a fake.
type TxManager interface {
	Transaction(fn func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}
