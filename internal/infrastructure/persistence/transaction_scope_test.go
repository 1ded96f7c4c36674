package persistence

import (
	"context"
	"errors"
	"testing"

	saleapp "github.com/erp/projectlink/internal/application/sale"
	"github.com/erp/projectlink/internal/domain/accounting"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftInvoice(t *testing.T, moves accounting.Repository) *accounting.Move {
	t.Helper()
	ctx := context.Background()
	name, err := moves.GenerateName(ctx, accounting.MoveTypeOutInvoice)
	require.NoError(t, err)
	move, err := accounting.NewMove(name, accounting.MoveTypeOutInvoice, nil)
	require.NoError(t, err)
	_, err = move.AddLine(accounting.LineInput{
		Name:      "Down payment",
		Quantity:  decimal.NewFromInt(1),
		PriceUnit: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.NoError(t, moves.Save(ctx, move))
	return move
}

func TestGormTransactionScope(t *testing.T) {
	ctx := context.Background()

	t.Run("commits every write", func(t *testing.T) {
		db := setupTestDB(t)
		scope := NewGormTransactionScope(&Database{DB: db})

		var first, second *accounting.Move
		err := scope.Execute(ctx, func(repos saleapp.TransactionalRepositories) error {
			first = newDraftInvoice(t, repos.MoveRepo())
			second = newDraftInvoice(t, repos.MoveRepo())
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "INV/00001", first.Name)
		assert.Equal(t, "INV/00002", second.Name)

		found, err := NewGormAccountMoveRepository(db).FindByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Len(t, found.Lines, 1)
	})

	t.Run("rolls back when the function fails", func(t *testing.T) {
		db := setupTestDB(t)
		scope := NewGormTransactionScope(&Database{DB: db})

		boom := errors.New("boom")
		var saved *accounting.Move
		err := scope.Execute(ctx, func(repos saleapp.TransactionalRepositories) error {
			saved = newDraftInvoice(t, repos.MoveRepo())
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = NewGormAccountMoveRepository(db).FindByID(ctx, saved.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var count int64
		require.NoError(t, db.Table("account_move_lines").Count(&count).Error)
		assert.Zero(t, count)
	})
}
