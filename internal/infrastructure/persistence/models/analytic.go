package models

import (
	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/google/uuid"
)

// AnalyticAccountModel is the persistence model for analytic accounts
type AnalyticAccountModel struct {
	BaseModel
	Name      string     `gorm:"type:varchar(200);not null"`
	Code      string     `gorm:"type:varchar(50)"`
	CompanyID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (AnalyticAccountModel) TableName() string {
	return "analytic_accounts"
}

// ToDomain converts the model to a domain account
func (m *AnalyticAccountModel) ToDomain() *analytic.Account {
	return &analytic.Account{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Code:       m.Code,
		CompanyID:  m.CompanyID,
	}
}

// AnalyticAccountModelFromDomain converts a domain account to its model
func AnalyticAccountModelFromDomain(a *analytic.Account) *AnalyticAccountModel {
	m := &AnalyticAccountModel{
		Name:      a.Name,
		Code:      a.Code,
		CompanyID: a.CompanyID,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
