package persistence

import (
	"context"

	saleapp "github.com/erp/projectlink/internal/application/sale"
	"github.com/erp/projectlink/internal/domain/accounting"
	"gorm.io/gorm"
)

// GormTransactionScope implements saleapp.TransactionScope on top of
// Database.Transaction.
type GormTransactionScope struct {
	db *Database
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *Database) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. The transaction is rolled
// back when fn returns an error and committed otherwise.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos saleapp.TransactionalRepositories) error) error {
	return s.db.Transaction(ctx, func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// MoveRepo returns the account move repository scoped to the transaction
func (r *gormTransactionalRepositories) MoveRepo() accounting.Repository {
	return NewGormAccountMoveRepository(r.tx)
}

var _ saleapp.TransactionScope = (*GormTransactionScope)(nil)
