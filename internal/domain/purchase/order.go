// Package purchase holds purchase orders and their lines. Lines carry an
// analytic distribution, which is what links them to projects.
package purchase

import (
	"context"
	"strings"
	"time"

	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderState represents the state of a purchase order
type OrderState string

const (
	OrderStateDraft    OrderState = "draft"
	OrderStatePurchase OrderState = "purchase"
	OrderStateCancel   OrderState = "cancel"
)

// CanTransitionTo checks if the state can transition to the target state
func (s OrderState) CanTransitionTo(target OrderState) bool {
	switch s {
	case OrderStateDraft:
		return target == OrderStatePurchase || target == OrderStateCancel
	case OrderStatePurchase:
		return target == OrderStateCancel
	}
	return false
}

// OrderLine is a purchase order line
type OrderLine struct {
	ID                   uuid.UUID
	OrderID              uuid.UUID
	Name                 string
	ProductQty           decimal.Decimal
	PriceUnit            decimal.Decimal
	PriceSubtotal        decimal.Decimal
	AnalyticDistribution analytic.Distribution
}

// Order is the purchase order aggregate
type Order struct {
	shared.BaseEntity
	Name      string
	PartnerID *uuid.UUID
	State     OrderState
	DateOrder time.Time
	Lines     []OrderLine
}

// NewOrder creates a draft purchase order
func NewOrder(name string, partnerID *uuid.UUID) (*Order, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase order name cannot be empty")
	}
	o := &Order{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		PartnerID:  partnerID,
		State:      OrderStateDraft,
	}
	o.DateOrder = o.CreatedAt
	return o, nil
}

// AddLine appends a line; the subtotal is qty * price
func (o *Order) AddLine(name string, qty, price decimal.Decimal, dist analytic.Distribution) (*OrderLine, error) {
	if o.State != OrderStateDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Lines can only be added to draft purchase orders")
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
	if err := dist.Validate(); err != nil {
		return nil, err
	}
	o.Lines = append(o.Lines, OrderLine{
		ID:                   uuid.New(),
		OrderID:              o.ID,
		Name:                 strings.TrimSpace(name),
		ProductQty:           qty,
		PriceUnit:            price,
		PriceSubtotal:        qty.Mul(price),
		AnalyticDistribution: dist,
	})
	o.Touch()
	return &o.Lines[len(o.Lines)-1], nil
}

// AmountTotal returns the sum of the line subtotals
func (o *Order) AmountTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.PriceSubtotal)
	}
	return total
}

// Confirm moves the order from draft to purchase
func (o *Order) Confirm() error {
	if !o.State.CanTransitionTo(OrderStatePurchase) {
		return shared.NewDomainError("INVALID_STATE", "Only draft purchase orders can be confirmed")
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Cannot confirm a purchase order without lines")
	}
	o.State = OrderStatePurchase
	o.Touch()
	return nil
}

// Cancel cancels the order. Cancelled orders drop out of every project counter.
func (o *Order) Cancel() error {
	if !o.State.CanTransitionTo(OrderStateCancel) {
		return shared.NewDomainError("INVALID_STATE", "Purchase order is already cancelled")
	}
	o.State = OrderStateCancel
	o.Touch()
	return nil
}

// Repository defines the interface for purchase order persistence
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// Save upserts the order and replaces its lines
	Save(ctx context.Context, o *Order) error
	GenerateName(ctx context.Context) (string, error)
}
