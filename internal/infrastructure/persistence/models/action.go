package models

import "github.com/erp/projectlink/internal/domain/action"

// WindowActionModel is the persistence model for stored window actions
type WindowActionModel struct {
	BaseModel
	XMLID    string `gorm:"column:xml_id;type:varchar(200);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(200);not null"`
	ResModel string `gorm:"type:varchar(100);not null"`
	ViewMode string `gorm:"type:varchar(100);not null"`
	Domain   string `gorm:"type:text"`
	Context  string `gorm:"type:text"`
	Help     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (WindowActionModel) TableName() string {
	return "window_actions"
}

// ToDomain converts the model to a domain stored action
func (m *WindowActionModel) ToDomain() *action.StoredAction {
	return &action.StoredAction{
		BaseEntity:  m.BaseModel.ToDomain(),
		XMLID:       m.XMLID,
		Name:        m.Name,
		ResModel:    m.ResModel,
		ViewMode:    m.ViewMode,
		DomainText:  m.Domain,
		ContextText: m.Context,
		Help:        m.Help,
	}
}
