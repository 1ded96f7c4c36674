package models

import (
	"time"

	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/erp/projectlink/internal/domain/purchase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderModel is the persistence model for purchase orders
type PurchaseOrderModel struct {
	BaseModel
	Name      string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	PartnerID *uuid.UUID               `gorm:"type:uuid"`
	State     string                   `gorm:"type:varchar(20);not null;index"`
	DateOrder time.Time                `gorm:"not null"`
	Lines     []PurchaseOrderLineModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderLineModel is the persistence model for purchase order lines
type PurchaseOrderLineModel struct {
	ID                   uuid.UUID             `gorm:"type:uuid;primary_key"`
	OrderID              uuid.UUID             `gorm:"type:uuid;not null;index"`
	Name                 string                `gorm:"type:varchar(500);not null"`
	ProductQty           decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	PriceUnit            decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	PriceSubtotal        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	AnalyticDistribution analytic.Distribution `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLineModel) TableName() string {
	return "purchase_order_lines"
}

// ToDomain converts the model to a domain order
func (m *PurchaseOrderModel) ToDomain() *purchase.Order {
	o := &purchase.Order{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		PartnerID:  m.PartnerID,
		State:      purchase.OrderState(m.State),
		DateOrder:  m.DateOrder,
		Lines:      make([]purchase.OrderLine, 0, len(m.Lines)),
	}
	for _, l := range m.Lines {
		o.Lines = append(o.Lines, purchase.OrderLine{
			ID:                   l.ID,
			OrderID:              l.OrderID,
			Name:                 l.Name,
			ProductQty:           l.ProductQty,
			PriceUnit:            l.PriceUnit,
			PriceSubtotal:        l.PriceSubtotal,
			AnalyticDistribution: l.AnalyticDistribution,
		})
	}
	return o
}

// PurchaseOrderModelFromDomain converts a domain order to its model
func PurchaseOrderModelFromDomain(o *purchase.Order) *PurchaseOrderModel {
	m := &PurchaseOrderModel{
		Name:      o.Name,
		PartnerID: o.PartnerID,
		State:     string(o.State),
		DateOrder: o.DateOrder,
		Lines:     make([]PurchaseOrderLineModel, 0, len(o.Lines)),
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	for _, l := range o.Lines {
		m.Lines = append(m.Lines, PurchaseOrderLineModel{
			ID:                   l.ID,
			OrderID:              o.ID,
			Name:                 l.Name,
			ProductQty:           l.ProductQty,
			PriceUnit:            l.PriceUnit,
			PriceSubtotal:        l.PriceSubtotal,
			AnalyticDistribution: l.AnalyticDistribution,
		})
	}
	return m
}
