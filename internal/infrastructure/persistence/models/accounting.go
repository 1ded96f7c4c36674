package models

import (
	"time"

	"github.com/erp/projectlink/internal/domain/accounting"
	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountMoveModel is the persistence model for account moves
type AccountMoveModel struct {
	BaseModel
	Name        string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	MoveType    string                 `gorm:"type:varchar(20);not null;index"`
	PartnerID   *uuid.UUID             `gorm:"type:uuid"`
	State       string                 `gorm:"type:varchar(20);not null;index"`
	InvoiceDate *time.Time             `gorm:"type:date"`
	Lines       []AccountMoveLineModel `gorm:"foreignKey:MoveID"`
}

// TableName returns the table name for GORM
func (AccountMoveModel) TableName() string {
	return "account_moves"
}

// AccountMoveLineModel is the persistence model for account move lines
type AccountMoveLineModel struct {
	ID                   uuid.UUID             `gorm:"type:uuid;primary_key"`
	MoveID               uuid.UUID             `gorm:"type:uuid;not null;index"`
	Name                 string                `gorm:"type:varchar(500);not null"`
	Quantity             decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	PriceUnit            decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	PriceSubtotal        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	AnalyticDistribution analytic.Distribution `gorm:"type:jsonb"`
	SaleOrderID          *uuid.UUID            `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (AccountMoveLineModel) TableName() string {
	return "account_move_lines"
}

// ToDomain converts the model to a domain move
func (m *AccountMoveModel) ToDomain() *accounting.Move {
	mv := &accounting.Move{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		MoveType:    accounting.MoveType(m.MoveType),
		PartnerID:   m.PartnerID,
		State:       accounting.MoveState(m.State),
		InvoiceDate: m.InvoiceDate,
		Lines:       make([]accounting.MoveLine, 0, len(m.Lines)),
	}
	for _, l := range m.Lines {
		mv.Lines = append(mv.Lines, accounting.MoveLine{
			ID:                   l.ID,
			MoveID:               l.MoveID,
			Name:                 l.Name,
			Quantity:             l.Quantity,
			PriceUnit:            l.PriceUnit,
			PriceSubtotal:        l.PriceSubtotal,
			AnalyticDistribution: l.AnalyticDistribution,
			SaleOrderID:          l.SaleOrderID,
		})
	}
	return mv
}

// AccountMoveModelFromDomain converts a domain move to its model
func AccountMoveModelFromDomain(mv *accounting.Move) *AccountMoveModel {
	m := &AccountMoveModel{
		Name:        mv.Name,
		MoveType:    string(mv.MoveType),
		PartnerID:   mv.PartnerID,
		State:       string(mv.State),
		InvoiceDate: mv.InvoiceDate,
		Lines:       make([]AccountMoveLineModel, 0, len(mv.Lines)),
	}
	m.FromDomainBaseEntity(mv.BaseEntity)
	for _, l := range mv.Lines {
		m.Lines = append(m.Lines, AccountMoveLineModel{
			ID:                   l.ID,
			MoveID:               mv.ID,
			Name:                 l.Name,
			Quantity:             l.Quantity,
			PriceUnit:            l.PriceUnit,
			PriceSubtotal:        l.PriceSubtotal,
			AnalyticDistribution: l.AnalyticDistribution,
			SaleOrderID:          l.SaleOrderID,
		})
	}
	return m
}
