package sale

import (
	"time"

	"github.com/erp/projectlink/internal/domain/accounting"
	"github.com/erp/projectlink/internal/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to create a sales order
type CreateOrderRequest struct {
	PartnerID *uuid.UUID         `json:"partner_id"`
	ProjectID *uuid.UUID         `json:"project_id"`
	Lines     []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// OrderLineRequest is one sales order line
type OrderLineRequest struct {
	ProductID     *uuid.UUID      `json:"product_id"`
	Name          string          `json:"name" binding:"required,min=1,max=500"`
	ProductUomQty decimal.Decimal `json:"product_uom_qty"`
	PriceUnit     decimal.Decimal `json:"price_unit"`
}

// OrderLineResponse represents a sales order line in API responses
type OrderLineResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     *uuid.UUID      `json:"product_id,omitempty"`
	Name          string          `json:"name"`
	ProductUomQty decimal.Decimal `json:"product_uom_qty"`
	PriceUnit     decimal.Decimal `json:"price_unit"`
	PriceSubtotal decimal.Decimal `json:"price_subtotal"`
}

// OrderResponse represents a sales order in API responses
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	PartnerID   *uuid.UUID          `json:"partner_id,omitempty"`
	ProjectID   *uuid.UUID          `json:"project_id,omitempty"`
	State       string              `json:"state"`
	DateOrder   time.Time           `json:"date_order"`
	AmountTotal decimal.Decimal     `json:"amount_total"`
	Lines       []OrderLineResponse `json:"lines"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ToOrderResponse converts a domain sales order to a response
func ToOrderResponse(o *sale.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineResponse{
			ID:            l.ID,
			ProductID:     l.ProductID,
			Name:          l.Name,
			ProductUomQty: l.ProductUomQty,
			PriceUnit:     l.PriceUnit,
			PriceSubtotal: l.PriceSubtotal,
		})
	}
	return OrderResponse{
		ID:          o.ID,
		Name:        o.Name,
		PartnerID:   o.PartnerID,
		ProjectID:   o.ProjectID,
		State:       string(o.State),
		DateOrder:   o.DateOrder,
		AmountTotal: o.AmountTotal,
		Lines:       lines,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// AdvancePaymentRequest is the down payment wizard input
type AdvancePaymentRequest struct {
	OrderIDs []uuid.UUID     `json:"order_ids" binding:"required,min=1"`
	Method   string          `json:"method" binding:"required,oneof=fixed percentage"`
	Amount   decimal.Decimal `json:"amount"`
}

// DownPaymentInvoice summarises one invoice created by the wizard
type DownPaymentInvoice struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	Name          string          `json:"name"`
	SaleOrderID   uuid.UUID       `json:"sale_order_id"`
	SaleOrderName string          `json:"sale_order_name"`
	Amount        decimal.Decimal `json:"amount"`
	State         string          `json:"state"`
}

// AdvancePaymentResponse lists the invoices created by one wizard run
type AdvancePaymentResponse struct {
	Invoices []DownPaymentInvoice `json:"invoices"`
}

func toDownPaymentInvoice(move *accounting.Move, order *sale.Order) DownPaymentInvoice {
	return DownPaymentInvoice{
		InvoiceID:     move.ID,
		Name:          move.Name,
		SaleOrderID:   order.ID,
		SaleOrderName: order.Name,
		Amount:        move.AmountUntaxed(),
		State:         string(move.State),
	}
}
