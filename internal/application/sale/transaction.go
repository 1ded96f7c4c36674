package sale

import (
	"context"

	"github.com/erp/projectlink/internal/domain/accounting"
)

// TransactionalRepositories provides repositories bound to a single transaction
type TransactionalRepositories interface {
	MoveRepo() accounting.Repository
}

// TransactionScope runs fn atomically. When fn returns an error, every write
// made through the provided repositories is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}
