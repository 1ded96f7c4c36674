package persistence

import (
	"context"
	"errors"

	"github.com/erp/projectlink/internal/domain/action"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/erp/projectlink/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormWindowActionRepository implements action.Repository using GORM
type GormWindowActionRepository struct {
	db *gorm.DB
}

// NewGormWindowActionRepository creates a new GormWindowActionRepository
func NewGormWindowActionRepository(db *gorm.DB) *GormWindowActionRepository {
	return &GormWindowActionRepository{db: db}
}

// FindByXMLID finds a stored action by its external identifier
func (r *GormWindowActionRepository) FindByXMLID(ctx context.Context, xmlID string) (*action.StoredAction, error) {
	var model models.WindowActionModel
	if err := r.db.WithContext(ctx).First(&model, "xml_id = ?", xmlID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Stored action not found: "+xmlID)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
