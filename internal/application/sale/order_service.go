package sale

import (
	"context"
	"errors"

	"github.com/erp/projectlink/internal/domain/project"
	"github.com/erp/projectlink/internal/domain/sale"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/erp/projectlink/internal/infrastructure/logger"
	"github.com/erp/projectlink/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles sales order operations
type OrderService struct {
	orders   sale.Repository
	projects project.Repository
}

// NewOrderService creates a new OrderService
func NewOrderService(orders sale.Repository, projects project.Repository) *OrderService {
	return &OrderService{orders: orders, projects: projects}
}

// Create creates a draft sales order. A referenced project must exist.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale_order", "create")
	defer span.End()

	if req.ProjectID != nil {
		if _, err := s.projects.FindByID(ctx, *req.ProjectID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_INPUT", "Project not found: "+req.ProjectID.String())
			}
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	name, err := s.orders.GenerateName(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	order, err := sale.NewOrder(name, req.PartnerID, req.ProjectID)
	if err != nil {
		return nil, err
	}
	for _, line := range req.Lines {
		if _, err := order.AddLine(line.ProductID, line.Name, line.ProductUomQty, line.PriceUnit); err != nil {
			return nil, err
		}
	}
	if err := s.orders.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("Sales order created",
		zap.String("order_id", order.ID.String()),
		zap.String("name", order.Name),
		zap.String("amount_total", order.AmountTotal.String()))
	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetByID returns a sales order with its lines
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Confirm moves a draft order to sale
func (s *OrderService) Confirm(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, "confirm", (*sale.Order).Confirm)
}

// Cancel cancels an order
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, "cancel", (*sale.Order).Cancel)
}

func (s *OrderService) transition(ctx context.Context, id uuid.UUID, method string, apply func(*sale.Order) error) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale_order", method,
		telemetry.SpanAttrOrderID, id.String())
	defer span.End()

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := apply(order); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	logger.L(ctx).Info("Sales order state changed",
		zap.String("order_id", order.ID.String()),
		zap.String("state", string(order.State)))
	resp := ToOrderResponse(order)
	return &resp, nil
}
