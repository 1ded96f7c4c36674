package models

import (
	"github.com/erp/projectlink/internal/domain/project"
	"github.com/google/uuid"
)

// ProjectModel is the persistence model for projects
type ProjectModel struct {
	BaseModel
	Name              string     `gorm:"type:varchar(200);not null"`
	PrivacyVisibility string     `gorm:"type:varchar(20);not null;default:'employees'"`
	AliasName         string     `gorm:"type:varchar(100)"`
	CompanyID         *uuid.UUID `gorm:"type:uuid;index"`
	AnalyticAccountID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the model to a domain project
func (m *ProjectModel) ToDomain() *project.Project {
	return &project.Project{
		BaseEntity:        m.BaseModel.ToDomain(),
		Name:              m.Name,
		PrivacyVisibility: project.Visibility(m.PrivacyVisibility),
		AliasName:         m.AliasName,
		CompanyID:         m.CompanyID,
		AnalyticAccountID: m.AnalyticAccountID,
	}
}

// ProjectModelFromDomain converts a domain project to its model
func ProjectModelFromDomain(p *project.Project) *ProjectModel {
	m := &ProjectModel{
		Name:              p.Name,
		PrivacyVisibility: string(p.PrivacyVisibility),
		AliasName:         p.AliasName,
		CompanyID:         p.CompanyID,
		AnalyticAccountID: p.AnalyticAccountID,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
