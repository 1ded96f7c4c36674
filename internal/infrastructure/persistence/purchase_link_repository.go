package persistence

import (
	"context"

	"github.com/erp/projectlink/internal/domain/project"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const stateCancel = "cancel"

// GormPurchaseLinkRepository implements project.PurchaseLinkReader using GORM.
// Every query matches lines whose analytic distribution has one of the given
// account keys and whose parent document is not cancelled.
type GormPurchaseLinkRepository struct {
	db *gorm.DB
}

// NewGormPurchaseLinkRepository creates a new GormPurchaseLinkRepository
func NewGormPurchaseLinkRepository(db *gorm.DB) *GormPurchaseLinkRepository {
	return &GormPurchaseLinkRepository{db: db}
}

type linkTotalsRow struct {
	AccountKey string
	Count      int64
	Total      decimal.Decimal
}

func (r *GormPurchaseLinkRepository) purchaseLines(ctx context.Context, keys []string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("purchase_order_lines AS l").
		Joins("JOIN purchase_orders AS o ON o.id = l.order_id").
		Joins(jsonKeysJoin(r.db, "l", "analytic_distribution")).
		Where("o.state <> ?", stateCancel).
		Where(jsonKeyColumn+" IN ?", keys)
}

func (r *GormPurchaseLinkRepository) invoiceLines(ctx context.Context, keys []string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("account_move_lines AS l").
		Joins("JOIN account_moves AS m ON m.id = l.move_id").
		Joins(jsonKeysJoin(r.db, "l", "analytic_distribution")).
		Where("m.state <> ?", stateCancel).
		Where(jsonKeyColumn+" IN ?", keys)
}

func scanTotals(query *gorm.DB, countExpr string) (map[string]project.LinkTotals, error) {
	var rows []linkTotalsRow
	err := query.
		Select(jsonKeyColumn + " AS account_key, COUNT(DISTINCT " + countExpr + ") AS count, SUM(l.price_subtotal) AS total").
		Group(jsonKeyColumn).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]project.LinkTotals, len(rows))
	for _, row := range rows {
		out[row.AccountKey] = project.LinkTotals{Count: row.Count, Total: row.Total}
	}
	return out, nil
}

func pluckIDs(query *gorm.DB, column string) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if err := query.Distinct(column).Order(column).Pluck(column, &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// PurchaseTotalsByAccount returns (distinct order count, line subtotal sum) per key
func (r *GormPurchaseLinkRepository) PurchaseTotalsByAccount(ctx context.Context, keys []string) (map[string]project.LinkTotals, error) {
	if len(keys) == 0 {
		return map[string]project.LinkTotals{}, nil
	}
	return scanTotals(r.purchaseLines(ctx, keys), "l.order_id")
}

// PurchaseOrderIDs returns the distinct orders having a matching line
func (r *GormPurchaseLinkRepository) PurchaseOrderIDs(ctx context.Context, keys []string) ([]uuid.UUID, error) {
	if len(keys) == 0 {
		return []uuid.UUID{}, nil
	}
	return pluckIDs(r.purchaseLines(ctx, keys), "l.order_id")
}

// PurchaseOrderLineIDs returns the matching purchase order lines
func (r *GormPurchaseLinkRepository) PurchaseOrderLineIDs(ctx context.Context, keys []string) ([]uuid.UUID, error) {
	if len(keys) == 0 {
		return []uuid.UUID{}, nil
	}
	return pluckIDs(r.purchaseLines(ctx, keys), "l.id")
}

// InvoiceTotalsByAccount returns (distinct move count, line subtotal sum) per key.
// Moves of every type are counted; the vendor bill action narrows by type.
func (r *GormPurchaseLinkRepository) InvoiceTotalsByAccount(ctx context.Context, keys []string) (map[string]project.LinkTotals, error) {
	if len(keys) == 0 {
		return map[string]project.LinkTotals{}, nil
	}
	return scanTotals(r.invoiceLines(ctx, keys), "l.move_id")
}

// InvoiceIDs returns the distinct moves having a matching line
func (r *GormPurchaseLinkRepository) InvoiceIDs(ctx context.Context, keys []string) ([]uuid.UUID, error) {
	if len(keys) == 0 {
		return []uuid.UUID{}, nil
	}
	return pluckIDs(r.invoiceLines(ctx, keys), "l.move_id")
}

// InvoiceLineIDs returns the matching move lines
func (r *GormPurchaseLinkRepository) InvoiceLineIDs(ctx context.Context, keys []string) ([]uuid.UUID, error) {
	if len(keys) == 0 {
		return []uuid.UUID{}, nil
	}
	return pluckIDs(r.invoiceLines(ctx, keys), "l.id")
}
