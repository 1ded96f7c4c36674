package sale

import (
	"context"

	"github.com/erp/projectlink/internal/domain/accounting"
	"github.com/erp/projectlink/internal/domain/project"
	"github.com/erp/projectlink/internal/domain/sale"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/erp/projectlink/internal/infrastructure/logger"
	"github.com/erp/projectlink/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdvancePaymentService runs the down payment wizard: one draft customer
// invoice per selected confirmed sales order.
type AdvancePaymentService struct {
	orders   sale.Repository
	projects project.Repository
	tx       TransactionScope
	metrics  *telemetry.LinkMetrics
}

// NewAdvancePaymentService creates a new AdvancePaymentService.
// metrics may be nil.
func NewAdvancePaymentService(
	orders sale.Repository,
	projects project.Repository,
	tx TransactionScope,
	metrics *telemetry.LinkMetrics,
) *AdvancePaymentService {
	return &AdvancePaymentService{orders: orders, projects: projects, tx: tx, metrics: metrics}
}

// downPayment is a checked order waiting for its invoice
type downPayment struct {
	order     *sale.Order
	accountID *uuid.UUID
}

// CreateInvoices checks every selected order before writing anything, then
// creates all invoices in one transaction.
func (s *AdvancePaymentService) CreateInvoices(ctx context.Context, req AdvancePaymentRequest) (*AdvancePaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "advance_payment", "create_invoices",
		"method", req.Method, "order_count", len(req.OrderIDs))
	defer span.End()

	wizard := sale.AdvancePayment{Method: sale.AdvanceMethod(req.Method), Amount: req.Amount}
	if err := wizard.Validate(); err != nil {
		return nil, err
	}
	if len(req.OrderIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Select at least one sales order")
	}

	orders, err := s.orders.FindByIDs(ctx, uniqueIDs(req.OrderIDs))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	accounts := make(map[uuid.UUID]*uuid.UUID)
	pending := make([]downPayment, 0, len(orders))
	for i := range orders {
		order := &orders[i]
		if _, err := wizard.Check(order); err != nil {
			return nil, err
		}
		accountID, err := s.projectAccount(ctx, order, accounts)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		pending = append(pending, downPayment{order: order, accountID: accountID})
	}

	var invoices []DownPaymentInvoice
	err = s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		moves := repos.MoveRepo()
		invoices = make([]DownPaymentInvoice, 0, len(pending))
		for _, dp := range pending {
			name, err := moves.GenerateName(ctx, accounting.MoveTypeOutInvoice)
			if err != nil {
				return err
			}
			move, err := wizard.BuildInvoice(dp.order, name, dp.accountID)
			if err != nil {
				return err
			}
			if err := moves.Save(ctx, move); err != nil {
				return err
			}
			invoices = append(invoices, toDownPaymentInvoice(move, dp.order))
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	for _, inv := range invoices {
		logger.L(ctx).Info("Down payment invoice created",
			zap.String("invoice", inv.Name),
			zap.String("sale_order", inv.SaleOrderName),
			zap.String("amount", inv.Amount.String()))
	}
	s.metrics.DownPaymentsCreated(ctx, req.Method, len(invoices))
	telemetry.SetAttributes(span, telemetry.SpanAttrResultCount, len(invoices))
	return &AdvancePaymentResponse{Invoices: invoices}, nil
}

// projectAccount returns the analytic account of the order's project, nil when
// the order has no project or the project has no account.
func (s *AdvancePaymentService) projectAccount(ctx context.Context, order *sale.Order, seen map[uuid.UUID]*uuid.UUID) (*uuid.UUID, error) {
	if order.ProjectID == nil {
		return nil, nil
	}
	if accountID, ok := seen[*order.ProjectID]; ok {
		return accountID, nil
	}
	p, err := s.projects.FindByID(ctx, *order.ProjectID)
	if err != nil {
		return nil, err
	}
	seen[*order.ProjectID] = p.AnalyticAccountID
	return p.AnalyticAccountID, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
