// Package accounting holds journal entries (moves): vendor bills, customer
// invoices and their refunds.
package accounting

import (
	"context"
	"strings"
	"time"

	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoveType classifies a move
type MoveType string

const (
	MoveTypeInInvoice  MoveType = "in_invoice"
	MoveTypeInRefund   MoveType = "in_refund"
	MoveTypeOutInvoice MoveType = "out_invoice"
	MoveTypeOutRefund  MoveType = "out_refund"
	MoveTypeEntry      MoveType = "entry"
)

// IsValid reports whether t is a known move type
func (t MoveType) IsValid() bool {
	switch t {
	case MoveTypeInInvoice, MoveTypeInRefund, MoveTypeOutInvoice, MoveTypeOutRefund, MoveTypeEntry:
		return true
	}
	return false
}

// IsCustomerInvoice reports whether the move is a customer invoice or refund
func (t MoveType) IsCustomerInvoice() bool {
	return t == MoveTypeOutInvoice || t == MoveTypeOutRefund
}

// IsVendorBill reports whether the move is a vendor bill or refund
func (t MoveType) IsVendorBill() bool {
	return t == MoveTypeInInvoice || t == MoveTypeInRefund
}

// CustomerInvoiceTypes are the move types counted as customer invoices
var CustomerInvoiceTypes = []MoveType{MoveTypeOutInvoice, MoveTypeOutRefund}

// MoveState represents the state of a move
type MoveState string

const (
	MoveStateDraft  MoveState = "draft"
	MoveStatePosted MoveState = "posted"
	MoveStateCancel MoveState = "cancel"
)

// CanTransitionTo checks if the state can transition to the target state
func (s MoveState) CanTransitionTo(target MoveState) bool {
	switch s {
	case MoveStateDraft:
		return target == MoveStatePosted || target == MoveStateCancel
	case MoveStatePosted:
		return target == MoveStateCancel
	}
	return false
}

// MoveLine is an invoice line
type MoveLine struct {
	ID                   uuid.UUID
	MoveID               uuid.UUID
	Name                 string
	Quantity             decimal.Decimal
	PriceUnit            decimal.Decimal
	PriceSubtotal        decimal.Decimal
	AnalyticDistribution analytic.Distribution
	// SaleOrderID is set on lines invoicing a sales order
	SaleOrderID *uuid.UUID
}

// Move is the journal entry aggregate
type Move struct {
	shared.BaseEntity
	Name        string
	MoveType    MoveType
	PartnerID   *uuid.UUID
	State       MoveState
	InvoiceDate *time.Time
	Lines       []MoveLine
}

// NewMove creates a draft move
func NewMove(name string, moveType MoveType, partnerID *uuid.UUID) (*Move, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Move name cannot be empty")
	}
	if !moveType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid move type: "+string(moveType))
	}
	return &Move{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		MoveType:   moveType,
		PartnerID:  partnerID,
		State:      MoveStateDraft,
	}, nil
}

// LineInput describes a line to add to a move
type LineInput struct {
	Name         string
	Quantity     decimal.Decimal
	PriceUnit    decimal.Decimal
	Distribution analytic.Distribution
	SaleOrderID  *uuid.UUID
}

// AddLine appends a line; the subtotal is quantity * price
func (m *Move) AddLine(in LineInput) (*MoveLine, error) {
	if m.State != MoveStateDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Lines can only be added to draft moves")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Line label cannot be empty")
	}
	if in.Quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity cannot be zero")
	}
	if err := in.Distribution.Validate(); err != nil {
		return nil, err
	}
	m.Lines = append(m.Lines, MoveLine{
		ID:                   uuid.New(),
		MoveID:               m.ID,
		Name:                 strings.TrimSpace(in.Name),
		Quantity:             in.Quantity,
		PriceUnit:            in.PriceUnit,
		PriceSubtotal:        in.Quantity.Mul(in.PriceUnit),
		AnalyticDistribution: in.Distribution,
		SaleOrderID:          in.SaleOrderID,
	})
	m.Touch()
	return &m.Lines[len(m.Lines)-1], nil
}

// AmountUntaxed returns the sum of the line subtotals
func (m *Move) AmountUntaxed() decimal.Decimal {
	total := decimal.Zero
	for _, l := range m.Lines {
		total = total.Add(l.PriceSubtotal)
	}
	return total
}

// Post moves a draft move to posted and stamps the invoice date when unset
func (m *Move) Post() error {
	if !m.State.CanTransitionTo(MoveStatePosted) {
		return shared.NewDomainError("INVALID_STATE", "Only draft moves can be posted")
	}
	if len(m.Lines) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Cannot post a move without lines")
	}
	if m.InvoiceDate == nil {
		now := time.Now()
		m.InvoiceDate = &now
	}
	m.State = MoveStatePosted
	m.Touch()
	return nil
}

// Cancel cancels the move
func (m *Move) Cancel() error {
	if !m.State.CanTransitionTo(MoveStateCancel) {
		return shared.NewDomainError("INVALID_STATE", "Move is already cancelled")
	}
	m.State = MoveStateCancel
	m.Touch()
	return nil
}

// Repository defines the interface for move persistence
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Move, error)
	// Save upserts the move and replaces its lines
	Save(ctx context.Context, m *Move) error
	GenerateName(ctx context.Context, moveType MoveType) (string, error)
}

// NamePrefix returns the sequence prefix for a move type
func NamePrefix(t MoveType) string {
	switch t {
	case MoveTypeInInvoice:
		return "BILL/"
	case MoveTypeInRefund:
		return "RBILL/"
	case MoveTypeOutInvoice:
		return "INV/"
	case MoveTypeOutRefund:
		return "RINV/"
	}
	return "MISC/"
}
