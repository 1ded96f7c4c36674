//go:build integration

// Package integration runs the project link service end to end against a
// real PostgreSQL started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	accountingapp "github.com/erp/projectlink/internal/application/accounting"
	projectapp "github.com/erp/projectlink/internal/application/project"
	purchaseapp "github.com/erp/projectlink/internal/application/purchase"
	saleapp "github.com/erp/projectlink/internal/application/sale"
	"github.com/erp/projectlink/internal/infrastructure/i18n"
	"github.com/erp/projectlink/internal/infrastructure/logger"
	"github.com/erp/projectlink/internal/infrastructure/migration"
	"github.com/erp/projectlink/internal/infrastructure/persistence"
	"github.com/erp/projectlink/internal/interfaces/http/handler"
	"github.com/erp/projectlink/internal/interfaces/http/middleware"
	"github.com/erp/projectlink/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TestDB represents a test database connection
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewTestDB creates a new PostgreSQL container with every migration applied.
// Each test gets its own container for complete isolation.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("projectlink_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, sqlDB := connectToDatabase(t, dsn)
	runMigrations(t, sqlDB)

	testDB := &TestDB{
		DB:        db,
		SqlDB:     sqlDB,
		Container: container,
		DSN:       dsn,
		t:         t,
	}
	t.Cleanup(testDB.Close)
	return testDB
}

// Close closes the database connection and terminates the container
func (tdb *TestDB) Close() {
	if tdb.SqlDB != nil {
		_ = tdb.SqlDB.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(context.Background()); err != nil {
			tdb.t.Logf("Warning: Failed to terminate container: %v", err)
		}
	}
}

// CleanTables truncates the business tables. Stored window actions and the
// migration bookkeeping are kept.
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename NOT IN ('schema_migrations', 'window_actions')
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to get table names")

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			tdb.t.Logf("Warning: Failed to truncate table %s: %v", table, err)
		}
	}
}

// NewAPI wires the HTTP stack the same way cmd/server does, minus telemetry
// exporters.
func (tdb *TestDB) NewAPI() *gin.Engine {
	tdb.t.Helper()

	translator, err := i18n.NewTranslator("en")
	require.NoError(tdb.t, err)

	db := tdb.DB
	projectRepo := persistence.NewGormProjectRepository(db)
	saleRepo := persistence.NewGormSaleOrderRepository(db)
	moveRepo := persistence.NewGormAccountMoveRepository(db)
	actionRepo := persistence.NewGormWindowActionRepository(db)

	purchaseLink := projectapp.NewPurchaseLinkService(projectRepo, persistence.NewGormPurchaseLinkRepository(db), actionRepo, translator, nil)
	saleLink := projectapp.NewSaleLinkService(projectRepo, persistence.NewGormSaleLinkRepository(db), actionRepo, translator, nil)

	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID(), logger.Recovery(zap.NewNop()))
	router.NewRouter(engine).
		Use(middleware.Language(translator)).
		RegisterAll(router.Handlers{
			Project: handler.NewProjectHandler(
				projectapp.NewProjectService(projectRepo, persistence.NewGormAnalyticAccountRepository(db), purchaseLink, saleLink),
				purchaseLink, saleLink),
			PurchaseOrder: handler.NewPurchaseOrderHandler(purchaseapp.NewOrderService(persistence.NewGormPurchaseOrderRepository(db))),
			AccountMove:   handler.NewAccountMoveHandler(accountingapp.NewMoveService(moveRepo)),
			SaleOrder: handler.NewSaleOrderHandler(
				saleapp.NewOrderService(saleRepo, projectRepo),
				saleapp.NewAdvancePaymentService(saleRepo, projectRepo, persistence.NewGormTransactionScope(&persistence.Database{DB: db}), nil)),
		}).
		Setup()
	return engine
}

// connectToDatabase establishes a GORM connection to the database
func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	// Enable debug logging if TEST_DB_DEBUG is set
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, sqlDB
}

// runMigrations applies the embedded migrations
func runMigrations(t *testing.T, sqlDB *sql.DB) {
	t.Helper()

	m, err := migration.New(sqlDB, zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")
}
