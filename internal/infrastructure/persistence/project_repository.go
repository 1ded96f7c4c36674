package persistence

import (
	"context"

	"github.com/erp/projectlink/internal/domain/project"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/erp/projectlink/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProjectRepository implements project.Repository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a project by its ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs returns the projects in the order of ids, deduplicated.
// Any unknown id fails the whole lookup with shared.ErrNotFound.
func (r *GormProjectRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]project.Project, error) {
	if len(ids) == 0 {
		return []project.Project{}, nil
	}
	var rows []models.ProjectModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.ProjectModel, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]project.Project, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		m, ok := byID[id]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Project not found: "+id.String())
		}
		out = append(out, *m.ToDomain())
	}
	return out, nil
}

// FindAll lists projects matching the filter, newest first
func (r *GormProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]project.Project, error) {
	var rows []models.ProjectModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProjectModel{}), filter)
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]project.Project, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// Count counts projects matching the filter
func (r *GormProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProjectModel{}), filter).Count(&count).Error
	return count, err
}

// Save creates or updates a project
func (r *GormProjectRepository) Save(ctx context.Context, p *project.Project) error {
	return r.db.WithContext(ctx).Save(models.ProjectModelFromDomain(p)).Error
}

func (r *GormProjectRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+normalizeSearch(filter.Search)+"%")
	}
	return query
}
