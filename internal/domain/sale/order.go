// Package sale holds sales orders and the advance payment (down payment)
// invoicing rules.
package sale

import (
	"context"
	"strings"
	"time"

	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderState represents the state of a sales order
type OrderState string

const (
	OrderStateDraft  OrderState = "draft"
	OrderStateSale   OrderState = "sale"
	OrderStateCancel OrderState = "cancel"
)

// CanTransitionTo checks if the state can transition to the target state
func (s OrderState) CanTransitionTo(target OrderState) bool {
	switch s {
	case OrderStateDraft:
		return target == OrderStateSale || target == OrderStateCancel
	case OrderStateSale:
		return target == OrderStateCancel
	}
	return false
}

// OrderLine is a sales order line
type OrderLine struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	ProductID     *uuid.UUID
	Name          string
	ProductUomQty decimal.Decimal
	PriceUnit     decimal.Decimal
	PriceSubtotal decimal.Decimal
}

// Order is the sales order aggregate
type Order struct {
	shared.BaseEntity
	Name        string
	PartnerID   *uuid.UUID
	ProjectID   *uuid.UUID
	State       OrderState
	DateOrder   time.Time
	AmountTotal decimal.Decimal
	Lines       []OrderLine
}

// NewOrder creates a draft sales order, optionally attached to a project
func NewOrder(name string, partnerID, projectID *uuid.UUID) (*Order, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sales order name cannot be empty")
	}
	o := &Order{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		PartnerID:   partnerID,
		ProjectID:   projectID,
		State:       OrderStateDraft,
		AmountTotal: decimal.Zero,
	}
	o.DateOrder = o.CreatedAt
	return o, nil
}

// AddLine appends a line and refreshes the order total
func (o *Order) AddLine(productID *uuid.UUID, name string, qty, price decimal.Decimal) (*OrderLine, error) {
	if o.State != OrderStateDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Lines can only be added to draft sales orders")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Line description cannot be empty")
	}
	if !qty.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}
	subtotal := qty.Mul(price)
	o.Lines = append(o.Lines, OrderLine{
		ID:            uuid.New(),
		OrderID:       o.ID,
		ProductID:     productID,
		Name:          strings.TrimSpace(name),
		ProductUomQty: qty,
		PriceUnit:     price,
		PriceSubtotal: subtotal,
	})
	o.AmountTotal = o.AmountTotal.Add(subtotal)
	o.Touch()
	return &o.Lines[len(o.Lines)-1], nil
}

// Confirm moves the order from draft to sale
func (o *Order) Confirm() error {
	if !o.State.CanTransitionTo(OrderStateSale) {
		return shared.NewDomainError("INVALID_STATE", "Only draft sales orders can be confirmed")
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Cannot confirm a sales order without lines")
	}
	o.State = OrderStateSale
	o.Touch()
	return nil
}

// Cancel cancels the order
func (o *Order) Cancel() error {
	if !o.State.CanTransitionTo(OrderStateCancel) {
		return shared.NewDomainError("INVALID_STATE", "Sales order is already cancelled")
	}
	o.State = OrderStateCancel
	o.Touch()
	return nil
}

// Repository defines the interface for sales order persistence
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Order, error)
	// Save upserts the order and replaces its lines
	Save(ctx context.Context, o *Order) error
	GenerateName(ctx context.Context) (string, error)
}
