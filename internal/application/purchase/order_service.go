package purchase

import (
	"context"

	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/erp/projectlink/internal/domain/purchase"
	"github.com/erp/projectlink/internal/infrastructure/logger"
	"github.com/erp/projectlink/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles purchase order operations
type OrderService struct {
	repo purchase.Repository
}

// NewOrderService creates a new OrderService
func NewOrderService(repo purchase.Repository) *OrderService {
	return &OrderService{repo: repo}
}

// Create creates a draft purchase order with its lines
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_order", "create")
	defer span.End()

	name, err := s.repo.GenerateName(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	order, err := purchase.NewOrder(name, req.PartnerID)
	if err != nil {
		return nil, err
	}
	for _, line := range req.Lines {
		if _, err := order.AddLine(line.Name, line.ProductQty, line.PriceUnit, analytic.Distribution(line.AnalyticDistribution)); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("Purchase order created",
		zap.String("order_id", order.ID.String()),
		zap.String("name", order.Name),
		zap.Int("lines", len(order.Lines)))
	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetByID returns a purchase order with its lines
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Confirm confirms a draft order
func (s *OrderService) Confirm(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, "confirm", (*purchase.Order).Confirm)
}

// Cancel cancels an order; it then drops out of every project counter
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, "cancel", (*purchase.Order).Cancel)
}

func (s *OrderService) transition(ctx context.Context, id uuid.UUID, method string, apply func(*purchase.Order) error) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_order", method,
		telemetry.SpanAttrOrderID, id.String())
	defer span.End()

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := apply(order); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	logger.L(ctx).Info("Purchase order state changed",
		zap.String("order_id", order.ID.String()),
		zap.String("state", string(order.State)))
	resp := ToOrderResponse(order)
	return &resp, nil
}
