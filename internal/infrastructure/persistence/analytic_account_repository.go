package persistence

import (
	"context"

	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/erp/projectlink/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAnalyticAccountRepository implements analytic.AccountRepository using GORM
type GormAnalyticAccountRepository struct {
	db *gorm.DB
}

// NewGormAnalyticAccountRepository creates a new GormAnalyticAccountRepository
func NewGormAnalyticAccountRepository(db *gorm.DB) *GormAnalyticAccountRepository {
	return &GormAnalyticAccountRepository{db: db}
}

// FindByID finds an analytic account by its ID
func (r *GormAnalyticAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*analytic.Account, error) {
	var model models.AnalyticAccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates an analytic account
func (r *GormAnalyticAccountRepository) Save(ctx context.Context, account *analytic.Account) error {
	return r.db.WithContext(ctx).Save(models.AnalyticAccountModelFromDomain(account)).Error
}
