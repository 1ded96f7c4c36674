package persistence

import (
	"context"

	"github.com/erp/projectlink/internal/domain/accounting"
	"github.com/erp/projectlink/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAccountMoveRepository implements accounting.Repository using GORM
type GormAccountMoveRepository struct {
	db *gorm.DB
}

// NewGormAccountMoveRepository creates a new GormAccountMoveRepository
func NewGormAccountMoveRepository(db *gorm.DB) *GormAccountMoveRepository {
	return &GormAccountMoveRepository{db: db}
}

// FindByID finds a move with its lines
func (r *GormAccountMoveRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Move, error) {
	var model models.AccountMoveModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save upserts the move header and replaces its lines in one transaction
func (r *GormAccountMoveRepository) Save(ctx context.Context, m *accounting.Move) error {
	model := models.AccountMoveModelFromDomain(m)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("move_id = ?", model.ID).Delete(&models.AccountMoveLineModel{}).Error; err != nil {
			return err
		}
		if len(model.Lines) == 0 {
			return nil
		}
		return tx.Create(&model.Lines).Error
	})
}

// GenerateName returns the next reference for the move type, e.g. BILL/00001
func (r *GormAccountMoveRepository) GenerateName(ctx context.Context, moveType accounting.MoveType) (string, error) {
	return nextName(ctx, r.db, models.AccountMoveModel{}.TableName(), accounting.NamePrefix(moveType),
		func(db *gorm.DB) *gorm.DB { return db.Where("move_type = ?", string(moveType)) })
}
