package persistence

import (
	"context"

	"github.com/erp/projectlink/internal/domain/sale"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/erp/projectlink/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleOrderRepository implements sale.Repository using GORM
type GormSaleOrderRepository struct {
	db *gorm.DB
}

// NewGormSaleOrderRepository creates a new GormSaleOrderRepository
func NewGormSaleOrderRepository(db *gorm.DB) *GormSaleOrderRepository {
	return &GormSaleOrderRepository{db: db}
}

func preloadSaleLines(db *gorm.DB) *gorm.DB {
	return db.Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("name") })
}

// FindByID finds a sales order with its lines
func (r *GormSaleOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sale.Order, error) {
	var model models.SaleOrderModel
	if err := preloadSaleLines(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs returns the orders in the order of ids; unknown ids yield NOT_FOUND
func (r *GormSaleOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]sale.Order, error) {
	if len(ids) == 0 {
		return []sale.Order{}, nil
	}
	var rows []models.SaleOrderModel
	if err := preloadSaleLines(r.db.WithContext(ctx)).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.SaleOrderModel, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	out := make([]sale.Order, 0, len(ids))
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Sales order not found: "+id.String())
		}
		out = append(out, *m.ToDomain())
	}
	return out, nil
}

// Save upserts the order header and replaces its lines in one transaction
func (r *GormSaleOrderRepository) Save(ctx context.Context, o *sale.Order) error {
	model := models.SaleOrderModelFromDomain(o)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", model.ID).Delete(&models.SaleOrderLineModel{}).Error; err != nil {
			return err
		}
		if len(model.Lines) == 0 {
			return nil
		}
		return tx.Create(&model.Lines).Error
	})
}

// GenerateName returns the next sales order reference (S00001, S00002, ...)
func (r *GormSaleOrderRepository) GenerateName(ctx context.Context) (string, error) {
	return nextName(ctx, r.db, models.SaleOrderModel{}.TableName(), "S", nil)
}
