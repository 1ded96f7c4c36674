package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/projectlink/internal/domain/accounting"
	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestGormPurchaseLinkRepository_PurchaseTotals(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPurchaseLinkRepository(db)
	ctx := context.Background()

	p1 := createProjectWithAccount(t, db, "P1")
	p2 := createProjectWithAccount(t, db, "P2")
	key1, _ := p1.AccountKey()
	key2, _ := p2.AccountKey()

	first := createPurchaseOrder(t, db, analytic.Single(*p1.AnalyticAccountID), "100", "20")
	createPurchaseOrder(t, db, analytic.Single(*p1.AnalyticAccountID), "30")
	createPurchaseOrder(t, db, analytic.Distribution{
		key1: decimal.NewFromInt(50),
		key2: decimal.NewFromInt(50),
	}, "8")
	createPurchaseOrder(t, db, nil, "999")

	cancelled := createPurchaseOrder(t, db, analytic.Single(*p2.AnalyticAccountID), "500")
	require.NoError(t, cancelled.Cancel())
	require.NoError(t, NewGormPurchaseOrderRepository(db).Save(ctx, cancelled))

	totals, err := repo.PurchaseTotalsByAccount(ctx, []string{key1, key2})
	require.NoError(t, err)

	assert.Equal(t, int64(3), totals[key1].Count)
	assert.True(t, totals[key1].Total.Equal(decimal.NewFromInt(158)), totals[key1].Total.String())
	assert.Equal(t, int64(1), totals[key2].Count)
	assert.True(t, totals[key2].Total.Equal(decimal.NewFromInt(8)), totals[key2].Total.String())

	t.Run("order and line ids", func(t *testing.T) {
		orderIDs, err := repo.PurchaseOrderIDs(ctx, []string{key1})
		require.NoError(t, err)
		assert.Len(t, orderIDs, 3)
		assert.Contains(t, orderIDs, first.ID)

		lineIDs, err := repo.PurchaseOrderLineIDs(ctx, []string{key1})
		require.NoError(t, err)
		assert.Len(t, lineIDs, 4)
		assert.Contains(t, lineIDs, first.Lines[0].ID)
	})

	t.Run("cancelled order is excluded from ids", func(t *testing.T) {
		orderIDs, err := repo.PurchaseOrderIDs(ctx, []string{key2})
		require.NoError(t, err)
		assert.NotContains(t, orderIDs, cancelled.ID)
	})

	t.Run("unknown key has no row", func(t *testing.T) {
		got, err := repo.PurchaseTotalsByAccount(ctx, []string{uuid.NewString()})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty key set short-circuits", func(t *testing.T) {
		got, err := repo.PurchaseTotalsByAccount(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, got)

		ids, err := repo.PurchaseOrderLineIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestGormPurchaseLinkRepository_InvoiceTotals(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPurchaseLinkRepository(db)
	ctx := context.Background()

	p := createProjectWithAccount(t, db, "P")
	key, _ := p.AccountKey()
	dist := analytic.Single(*p.AnalyticAccountID)

	bill := createMove(t, db, accounting.MoveTypeInInvoice, dist, nil, "40", "60")
	refund := createMove(t, db, accounting.MoveTypeInRefund, dist, nil, "5")
	cancelled := createMove(t, db, accounting.MoveTypeInInvoice, dist, nil, "1000")
	require.NoError(t, cancelled.Cancel())
	require.NoError(t, NewGormAccountMoveRepository(db).Save(ctx, cancelled))

	totals, err := repo.InvoiceTotalsByAccount(ctx, []string{key})
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals[key].Count)
	assert.True(t, totals[key].Total.Equal(decimal.NewFromInt(105)), totals[key].Total.String())

	moveIDs, err := repo.InvoiceIDs(ctx, []string{key})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{bill.ID, refund.ID}, moveIDs)

	lineIDs, err := repo.InvoiceLineIDs(ctx, []string{key})
	require.NoError(t, err)
	assert.Len(t, lineIDs, 3)
	assert.NotContains(t, lineIDs, cancelled.Lines[0].ID)
}

func TestGormPurchaseLinkRepository_Recount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPurchaseLinkRepository(db)
	ctx := context.Background()

	p := createProjectWithAccount(t, db, "P")
	key, _ := p.AccountKey()
	dist := analytic.Single(*p.AnalyticAccountID)

	t.Run("cancelling a counted order removes it", func(t *testing.T) {
		kept := createPurchaseOrder(t, db, dist, "10")
		dropped := createPurchaseOrder(t, db, dist, "25", "5")

		before, err := repo.PurchaseTotalsByAccount(ctx, []string{key})
		require.NoError(t, err)
		assert.Equal(t, int64(2), before[key].Count)
		assert.True(t, before[key].Total.Equal(decimal.NewFromInt(40)), before[key].Total.String())

		require.NoError(t, dropped.Cancel())
		require.NoError(t, NewGormPurchaseOrderRepository(db).Save(ctx, dropped))

		after, err := repo.PurchaseTotalsByAccount(ctx, []string{key})
		require.NoError(t, err)
		assert.Equal(t, int64(1), after[key].Count)
		assert.True(t, after[key].Total.Equal(decimal.NewFromInt(10)), after[key].Total.String())

		again, err := repo.PurchaseTotalsByAccount(ctx, []string{key})
		require.NoError(t, err)
		assert.Equal(t, after[key].Count, again[key].Count)
		assert.True(t, after[key].Total.Equal(again[key].Total))

		orderIDs, err := repo.PurchaseOrderIDs(ctx, []string{key})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{kept.ID}, orderIDs)
	})

	t.Run("cancelling a counted bill removes it", func(t *testing.T) {
		createMove(t, db, accounting.MoveTypeInInvoice, dist, nil, "70")
		bill := createMove(t, db, accounting.MoveTypeInInvoice, dist, nil, "30")

		before, err := repo.InvoiceTotalsByAccount(ctx, []string{key})
		require.NoError(t, err)
		assert.Equal(t, int64(2), before[key].Count)

		require.NoError(t, bill.Cancel())
		require.NoError(t, NewGormAccountMoveRepository(db).Save(ctx, bill))

		for i := 0; i < 2; i++ {
			after, err := repo.InvoiceTotalsByAccount(ctx, []string{key})
			require.NoError(t, err)
			assert.Equal(t, int64(1), after[key].Count)
			assert.True(t, after[key].Total.Equal(decimal.NewFromInt(70)), after[key].Total.String())
		}
	})
}

func newPostgresMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestGormPurchaseLinkRepository_PostgresSQL(t *testing.T) {
	key := uuid.NewString()

	t.Run("purchase totals use one grouped query over jsonb keys", func(t *testing.T) {
		db, mock := newPostgresMock(t)
		repo := NewGormPurchaseLinkRepository(db)

		mock.ExpectQuery(
			`SELECT k\.key AS account_key, COUNT\(DISTINCT l\.order_id\) AS count, SUM\(l\.price_subtotal\) AS total ` +
				`FROM purchase_order_lines AS l JOIN purchase_orders AS o ON o\.id = l\.order_id ` +
				`CROSS JOIN LATERAL jsonb_object_keys\(l\.analytic_distribution\) AS k\(key\) ` +
				`WHERE o\.state <> \$1 AND k\.key IN \(\$2\) GROUP BY`).
			WithArgs("cancel", key).
			WillReturnRows(sqlmock.NewRows([]string{"account_key", "count", "total"}).AddRow(key, 2, "150.00"))

		got, err := repo.PurchaseTotalsByAccount(context.Background(), []string{key})
		require.NoError(t, err)
		assert.Equal(t, int64(2), got[key].Count)
		assert.True(t, got[key].Total.Equal(decimal.NewFromInt(150)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invoice totals count distinct moves", func(t *testing.T) {
		db, mock := newPostgresMock(t)
		repo := NewGormPurchaseLinkRepository(db)

		mock.ExpectQuery(
			`SELECT k\.key AS account_key, COUNT\(DISTINCT l\.move_id\) AS count, SUM\(l\.price_subtotal\) AS total ` +
				`FROM account_move_lines AS l JOIN account_moves AS m ON m\.id = l\.move_id ` +
				`CROSS JOIN LATERAL jsonb_object_keys\(l\.analytic_distribution\) AS k\(key\) ` +
				`WHERE m\.state <> \$1 AND k\.key IN \(\$2\) GROUP BY`).
			WithArgs("cancel", key).
			WillReturnRows(sqlmock.NewRows([]string{"account_key", "count", "total"}))

		got, err := repo.InvoiceTotalsByAccount(context.Background(), []string{key})
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("order ids are distinct and sorted", func(t *testing.T) {
		db, mock := newPostgresMock(t)
		repo := NewGormPurchaseLinkRepository(db)
		id := uuid.New()

		mock.ExpectQuery(`SELECT DISTINCT l\.order_id FROM purchase_order_lines AS l .*ORDER BY l\.order_id`).
			WithArgs("cancel", key).
			WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(id.String()))

		got, err := repo.PurchaseOrderIDs(context.Background(), []string{key})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{id}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
