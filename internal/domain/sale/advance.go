package sale

import (
	"github.com/erp/projectlink/internal/domain/accounting"
	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdvanceMethod selects how the down payment amount is computed
type AdvanceMethod string

const (
	AdvanceFixed      AdvanceMethod = "fixed"
	AdvancePercentage AdvanceMethod = "percentage"
)

var hundred = decimal.NewFromInt(100)

// DownPaymentLabel is the label of the generated invoice line
const DownPaymentLabel = "Down payment"

// AdvancePayment is the wizard input shared by every selected order
type AdvancePayment struct {
	Method AdvanceMethod
	// Amount is the fixed amount or the percentage, depending on Method
	Amount decimal.Decimal
}

// Validate checks the method and the amount range
func (a AdvancePayment) Validate() error {
	switch a.Method {
	case AdvanceFixed:
		if !a.Amount.IsPositive() {
			return shared.NewDomainError("INVALID_INPUT", "The value of the down payment amount must be positive")
		}
	case AdvancePercentage:
		if !a.Amount.IsPositive() || a.Amount.GreaterThan(hundred) {
			return shared.NewDomainError("INVALID_INPUT", "The percentage of the down payment must be in (0, 100]")
		}
	default:
		return shared.NewDomainError("INVALID_INPUT", "Unknown advance payment method: "+string(a.Method))
	}
	return nil
}

// LineAmount returns the down payment amount for an order
func (a AdvancePayment) LineAmount(o *Order) decimal.Decimal {
	if a.Method == AdvancePercentage {
		return o.AmountTotal.Mul(a.Amount).Div(hundred).Round(2)
	}
	return a.Amount
}

// Check returns the down payment amount for a confirmed order, failing when
// the order is not confirmed or the amount is not positive.
func (a AdvancePayment) Check(o *Order) (decimal.Decimal, error) {
	if err := a.Validate(); err != nil {
		return decimal.Zero, err
	}
	if o.State != OrderStateSale {
		return decimal.Zero, shared.NewDomainError("INVALID_STATE", "Down payments can only be invoiced on confirmed sales orders: "+o.Name)
	}
	amount := a.LineAmount(o)
	if !amount.IsPositive() {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Down payment amount for "+o.Name+" is not positive")
	}
	return amount, nil
}

// BuildInvoice creates the draft customer invoice for one confirmed order.
// projectAccountID is the analytic account of the order's project, if any.
func (a AdvancePayment) BuildInvoice(o *Order, name string, projectAccountID *uuid.UUID) (*accounting.Move, error) {
	amount, err := a.Check(o)
	if err != nil {
		return nil, err
	}

	move, err := accounting.NewMove(name, accounting.MoveTypeOutInvoice, o.PartnerID)
	if err != nil {
		return nil, err
	}
	var dist analytic.Distribution
	if projectAccountID != nil {
		dist = analytic.Single(*projectAccountID)
	}
	orderID := o.ID
	if _, err := move.AddLine(accounting.LineInput{
		Name:         DownPaymentLabel,
		Quantity:     decimal.NewFromInt(1),
		PriceUnit:    amount,
		Distribution: dist,
		SaleOrderID:  &orderID,
	}); err != nil {
		return nil, err
	}
	return move, nil
}
