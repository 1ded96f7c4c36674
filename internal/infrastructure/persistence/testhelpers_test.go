package persistence

import (
	"context"
	"testing"

	"github.com/erp/projectlink/internal/domain/accounting"
	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/erp/projectlink/internal/domain/project"
	"github.com/erp/projectlink/internal/domain/purchase"
	"github.com/erp/projectlink/internal/domain/sale"
	"github.com/erp/projectlink/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with every model migrated.
// A single connection keeps the in-memory database shared across queries.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(models.All()...)
	require.NoError(t, err)
	return db
}

// createProjectWithAccount persists an analytic account and a project bound to it
func createProjectWithAccount(t *testing.T, db *gorm.DB, name string) *project.Project {
	t.Helper()
	ctx := context.Background()

	account, err := analytic.NewAccount(name, "")
	require.NoError(t, err)
	require.NoError(t, NewGormAnalyticAccountRepository(db).Save(ctx, account))

	p, err := project.NewProject(name, project.VisibilityEmployees)
	require.NoError(t, err)
	p.AttachAnalyticAccount(account.ID)
	require.NoError(t, NewGormProjectRepository(db).Save(ctx, p))
	return p
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// createPurchaseOrder persists an order with one line per price, all charged to dist
func createPurchaseOrder(t *testing.T, db *gorm.DB, dist analytic.Distribution, prices ...string) *purchase.Order {
	t.Helper()
	ctx := context.Background()
	repo := NewGormPurchaseOrderRepository(db)

	name, err := repo.GenerateName(ctx)
	require.NoError(t, err)
	o, err := purchase.NewOrder(name, nil)
	require.NoError(t, err)
	for i, price := range prices {
		_, err := o.AddLine("line "+string(rune('a'+i)), decimal.NewFromInt(1), mustDecimal(price), dist)
		require.NoError(t, err)
	}
	require.NoError(t, repo.Save(ctx, o))
	return o
}

// createMove persists a move with one line per price, all charged to dist
func createMove(t *testing.T, db *gorm.DB, moveType accounting.MoveType, dist analytic.Distribution, saleOrderID *uuid.UUID, prices ...string) *accounting.Move {
	t.Helper()
	ctx := context.Background()
	repo := NewGormAccountMoveRepository(db)

	name, err := repo.GenerateName(ctx, moveType)
	require.NoError(t, err)
	m, err := accounting.NewMove(name, moveType, nil)
	require.NoError(t, err)
	for i, price := range prices {
		_, err := m.AddLine(accounting.LineInput{
			Name:         "line " + string(rune('a'+i)),
			Quantity:     decimal.NewFromInt(1),
			PriceUnit:    mustDecimal(price),
			Distribution: dist,
			SaleOrderID:  saleOrderID,
		})
		require.NoError(t, err)
	}
	require.NoError(t, repo.Save(ctx, m))
	return m
}

// createSaleOrder persists a one-line order for the project
func createSaleOrder(t *testing.T, db *gorm.DB, projectID *uuid.UUID, price string) *sale.Order {
	t.Helper()
	ctx := context.Background()
	repo := NewGormSaleOrderRepository(db)

	name, err := repo.GenerateName(ctx)
	require.NoError(t, err)
	o, err := sale.NewOrder(name, nil, projectID)
	require.NoError(t, err)
	_, err = o.AddLine(nil, "Consulting", decimal.NewFromInt(1), mustDecimal(price))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, o))
	return o
}
