package persistence

import (
	"context"

	"github.com/erp/projectlink/internal/domain/accounting"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleLinkRepository implements project.SaleLinkReader using GORM
type GormSaleLinkRepository struct {
	db *gorm.DB
}

// NewGormSaleLinkRepository creates a new GormSaleLinkRepository
func NewGormSaleLinkRepository(db *gorm.DB) *GormSaleLinkRepository {
	return &GormSaleLinkRepository{db: db}
}

type projectCountRow struct {
	ProjectID uuid.UUID
	Count     int64
}

func customerInvoiceTypes() []string {
	out := make([]string, 0, len(accounting.CustomerInvoiceTypes))
	for _, t := range accounting.CustomerInvoiceTypes {
		out = append(out, string(t))
	}
	return out
}

func (r *GormSaleLinkRepository) orders(ctx context.Context, projectIDs []uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("sale_orders AS so").
		Where("so.project_id IN ?", projectIDs).
		Where("so.state <> ?", stateCancel)
}

func (r *GormSaleLinkRepository) invoices(ctx context.Context, projectIDs []uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("account_move_lines AS l").
		Joins("JOIN account_moves AS m ON m.id = l.move_id").
		Joins("JOIN sale_orders AS so ON so.id = l.sale_order_id").
		Where("so.project_id IN ?", projectIDs).
		Where("so.state <> ?", stateCancel).
		Where("m.state <> ?", stateCancel).
		Where("m.move_type IN ?", customerInvoiceTypes())
}

func scanProjectCounts(query *gorm.DB, countExpr string) (map[uuid.UUID]int64, error) {
	var rows []projectCountRow
	if err := query.
		Select("so.project_id AS project_id, COUNT(DISTINCT " + countExpr + ") AS count").
		Group("so.project_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		out[row.ProjectID] = row.Count
	}
	return out, nil
}

// SaleOrderCounts counts non-cancelled sales orders per project
func (r *GormSaleLinkRepository) SaleOrderCounts(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(projectIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	return scanProjectCounts(r.orders(ctx, projectIDs), "so.id")
}

// CustomerInvoiceCounts counts distinct non-cancelled customer invoices per
// project, reached through lines pointing at the project's orders
func (r *GormSaleLinkRepository) CustomerInvoiceCounts(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(projectIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	return scanProjectCounts(r.invoices(ctx, projectIDs), "m.id")
}

// SaleOrderIDs returns the project's non-cancelled sales orders
func (r *GormSaleLinkRepository) SaleOrderIDs(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	return pluckIDs(r.orders(ctx, []uuid.UUID{projectID}), "so.id")
}

// CustomerInvoiceIDs returns the project's non-cancelled customer invoices
func (r *GormSaleLinkRepository) CustomerInvoiceIDs(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	return pluckIDs(r.invoices(ctx, []uuid.UUID{projectID}), "m.id")
}
