package purchase

import (
	"time"

	"github.com/erp/projectlink/internal/domain/purchase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to create a purchase order
type CreateOrderRequest struct {
	PartnerID *uuid.UUID         `json:"partner_id"`
	Lines     []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// OrderLineRequest is one purchase order line. AnalyticDistribution maps
// analytic account ids to allocation percentages.
type OrderLineRequest struct {
	Name                 string                     `json:"name" binding:"required,min=1,max=500"`
	ProductQty           decimal.Decimal            `json:"product_qty"`
	PriceUnit            decimal.Decimal            `json:"price_unit"`
	AnalyticDistribution map[string]decimal.Decimal `json:"analytic_distribution"`
}

// OrderLineResponse represents a purchase order line in API responses
type OrderLineResponse struct {
	ID                   uuid.UUID                  `json:"id"`
	Name                 string                     `json:"name"`
	ProductQty           decimal.Decimal            `json:"product_qty"`
	PriceUnit            decimal.Decimal            `json:"price_unit"`
	PriceSubtotal        decimal.Decimal            `json:"price_subtotal"`
	AnalyticDistribution map[string]decimal.Decimal `json:"analytic_distribution,omitempty"`
}

// OrderResponse represents a purchase order in API responses
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	PartnerID   *uuid.UUID          `json:"partner_id,omitempty"`
	State       string              `json:"state"`
	DateOrder   time.Time           `json:"date_order"`
	AmountTotal decimal.Decimal     `json:"amount_total"`
	Lines       []OrderLineResponse `json:"lines"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ToOrderResponse converts a domain order to a response
func ToOrderResponse(o *purchase.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineResponse{
			ID:                   l.ID,
			Name:                 l.Name,
			ProductQty:           l.ProductQty,
			PriceUnit:            l.PriceUnit,
			PriceSubtotal:        l.PriceSubtotal,
			AnalyticDistribution: l.AnalyticDistribution,
		})
	}
	return OrderResponse{
		ID:          o.ID,
		Name:        o.Name,
		PartnerID:   o.PartnerID,
		State:       string(o.State),
		DateOrder:   o.DateOrder,
		AmountTotal: o.AmountTotal(),
		Lines:       lines,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
