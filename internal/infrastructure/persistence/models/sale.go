package models

import (
	"time"

	"github.com/erp/projectlink/internal/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleOrderModel is the persistence model for sales orders
type SaleOrderModel struct {
	BaseModel
	Name        string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	PartnerID   *uuid.UUID           `gorm:"type:uuid"`
	ProjectID   *uuid.UUID           `gorm:"type:uuid;index"`
	State       string               `gorm:"type:varchar(20);not null;index"`
	DateOrder   time.Time            `gorm:"not null"`
	AmountTotal decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Lines       []SaleOrderLineModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (SaleOrderModel) TableName() string {
	return "sale_orders"
}

// SaleOrderLineModel is the persistence model for sales order lines
type SaleOrderLineModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     *uuid.UUID      `gorm:"type:uuid"`
	Name          string          `gorm:"type:varchar(500);not null"`
	ProductUomQty decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PriceUnit     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PriceSubtotal decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SaleOrderLineModel) TableName() string {
	return "sale_order_lines"
}

// ToDomain converts the model to a domain order
func (m *SaleOrderModel) ToDomain() *sale.Order {
	o := &sale.Order{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		PartnerID:   m.PartnerID,
		ProjectID:   m.ProjectID,
		State:       sale.OrderState(m.State),
		DateOrder:   m.DateOrder,
		AmountTotal: m.AmountTotal,
		Lines:       make([]sale.OrderLine, 0, len(m.Lines)),
	}
	for _, l := range m.Lines {
		o.Lines = append(o.Lines, sale.OrderLine{
			ID:            l.ID,
			OrderID:       l.OrderID,
			ProductID:     l.ProductID,
			Name:          l.Name,
			ProductUomQty: l.ProductUomQty,
			PriceUnit:     l.PriceUnit,
			PriceSubtotal: l.PriceSubtotal,
		})
	}
	return o
}

// SaleOrderModelFromDomain converts a domain order to its model
func SaleOrderModelFromDomain(o *sale.Order) *SaleOrderModel {
	m := &SaleOrderModel{
		Name:        o.Name,
		PartnerID:   o.PartnerID,
		ProjectID:   o.ProjectID,
		State:       string(o.State),
		DateOrder:   o.DateOrder,
		AmountTotal: o.AmountTotal,
		Lines:       make([]SaleOrderLineModel, 0, len(o.Lines)),
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	for _, l := range o.Lines {
		m.Lines = append(m.Lines, SaleOrderLineModel{
			ID:            l.ID,
			OrderID:       o.ID,
			ProductID:     l.ProductID,
			Name:          l.Name,
			ProductUomQty: l.ProductUomQty,
			PriceUnit:     l.PriceUnit,
			PriceSubtotal: l.PriceSubtotal,
		})
	}
	return m
}
