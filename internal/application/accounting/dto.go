package accounting

import (
	"time"

	"github.com/erp/projectlink/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMoveRequest represents a request to create a vendor bill, customer
// invoice, refund or miscellaneous entry
type CreateMoveRequest struct {
	MoveType  string            `json:"move_type" binding:"required,oneof=entry in_invoice in_refund out_invoice out_refund"`
	PartnerID *uuid.UUID        `json:"partner_id"`
	Lines     []MoveLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// MoveLineRequest is one move line
type MoveLineRequest struct {
	Name                 string                     `json:"name" binding:"required,min=1,max=500"`
	Quantity             decimal.Decimal            `json:"quantity"`
	PriceUnit            decimal.Decimal            `json:"price_unit"`
	AnalyticDistribution map[string]decimal.Decimal `json:"analytic_distribution"`
	SaleOrderID          *uuid.UUID                 `json:"sale_order_id"`
}

// MoveLineResponse represents a move line in API responses
type MoveLineResponse struct {
	ID                   uuid.UUID                  `json:"id"`
	Name                 string                     `json:"name"`
	Quantity             decimal.Decimal            `json:"quantity"`
	PriceUnit            decimal.Decimal            `json:"price_unit"`
	PriceSubtotal        decimal.Decimal            `json:"price_subtotal"`
	AnalyticDistribution map[string]decimal.Decimal `json:"analytic_distribution,omitempty"`
	SaleOrderID          *uuid.UUID                 `json:"sale_order_id,omitempty"`
}

// MoveResponse represents a move in API responses
type MoveResponse struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	MoveType      string             `json:"move_type"`
	PartnerID     *uuid.UUID         `json:"partner_id,omitempty"`
	State         string             `json:"state"`
	InvoiceDate   *time.Time         `json:"invoice_date,omitempty"`
	AmountUntaxed decimal.Decimal    `json:"amount_untaxed"`
	Lines         []MoveLineResponse `json:"lines"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ToMoveResponse converts a domain move to a response
func ToMoveResponse(m *accounting.Move) MoveResponse {
	lines := make([]MoveLineResponse, 0, len(m.Lines))
	for _, l := range m.Lines {
		lines = append(lines, MoveLineResponse{
			ID:                   l.ID,
			Name:                 l.Name,
			Quantity:             l.Quantity,
			PriceUnit:            l.PriceUnit,
			PriceSubtotal:        l.PriceSubtotal,
			AnalyticDistribution: l.AnalyticDistribution,
			SaleOrderID:          l.SaleOrderID,
		})
	}
	return MoveResponse{
		ID:            m.ID,
		Name:          m.Name,
		MoveType:      string(m.MoveType),
		PartnerID:     m.PartnerID,
		State:         string(m.State),
		InvoiceDate:   m.InvoiceDate,
		AmountUntaxed: m.AmountUntaxed(),
		Lines:         lines,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
