// Package analytic holds analytic accounts and the per-line distributions
// that tag transactional lines with them.
package analytic

import (
	"context"
	"strings"

	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/google/uuid"
)

// Account is a cost/revenue tracking tag. Projects point at exactly one.
type Account struct {
	shared.BaseEntity
	Name      string
	Code      string
	CompanyID *uuid.UUID
}

// NewAccount creates a new analytic account
func NewAccount(name, code string) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Analytic account name cannot be empty")
	}
	return &Account{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Code:       strings.TrimSpace(code),
	}, nil
}

// Key returns the distribution key lines use to reference this account
func (a *Account) Key() string {
	return Key(a.ID)
}

// Key formats an account id the way distributions store it
func Key(accountID uuid.UUID) string {
	return accountID.String()
}

// AccountRepository defines the interface for analytic account persistence
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	Save(ctx context.Context, account *Account) error
}
