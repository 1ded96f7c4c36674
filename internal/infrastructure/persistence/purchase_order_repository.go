package persistence

import (
	"context"

	"github.com/erp/projectlink/internal/domain/purchase"
	"github.com/erp/projectlink/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseOrderRepository implements purchase.Repository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order with its lines
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.Order, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save upserts the order header and replaces its lines in one transaction
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, o *purchase.Order) error {
	model := models.PurchaseOrderModelFromDomain(o)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", model.ID).Delete(&models.PurchaseOrderLineModel{}).Error; err != nil {
			return err
		}
		if len(model.Lines) == 0 {
			return nil
		}
		return tx.Create(&model.Lines).Error
	})
}

// GenerateName returns the next purchase order reference (P00001, P00002, ...)
func (r *GormPurchaseOrderRepository) GenerateName(ctx context.Context) (string, error) {
	return nextName(ctx, r.db, models.PurchaseOrderModel{}.TableName(), "P", nil)
}
