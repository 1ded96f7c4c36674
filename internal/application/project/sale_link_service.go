package project

import (
	"context"
	"time"

	"github.com/erp/projectlink/internal/domain/action"
	"github.com/erp/projectlink/internal/domain/expression"
	"github.com/erp/projectlink/internal/domain/project"
	"github.com/erp/projectlink/internal/infrastructure/i18n"
	"github.com/erp/projectlink/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// ModelSaleOrder is the target model of the sales order action
const ModelSaleOrder = "sale.order"

// Sale navigation action names
const (
	ActionOpenSaleOrders       = "open-sale-orders"
	ActionOpenCustomerInvoices = "open-customer-invoices"
)

// SaleLinkService links projects to their sales orders and to the customer
// invoices raised from those orders.
type SaleLinkService struct {
	projects   project.Repository
	links      project.SaleLinkReader
	actions    action.Repository
	translator Translator
	metrics    *telemetry.LinkMetrics
}

// NewSaleLinkService creates a new SaleLinkService
func NewSaleLinkService(
	projects project.Repository,
	links project.SaleLinkReader,
	actions action.Repository,
	translator Translator,
	metrics *telemetry.LinkMetrics,
) *SaleLinkService {
	return &SaleLinkService{
		projects:   projects,
		links:      links,
		actions:    actions,
		translator: orIdentity(translator),
		metrics:    metrics,
	}
}

func projectIDsOf(projects []project.Project) []uuid.UUID {
	ids := make([]uuid.UUID, len(projects))
	for i := range projects {
		ids[i] = projects[i].ID
	}
	return ids
}

// SaleInfoFor computes sale_order_count and customer_invoice_count for the set
func (s *SaleLinkService) SaleInfoFor(ctx context.Context, projects []project.Project) (map[uuid.UUID]project.SaleInfo, error) {
	defer s.metrics.ObserveCompute(ctx, "sale_info", time.Now())

	ids := projectIDsOf(projects)
	orders, err := s.links.SaleOrderCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	invoices, err := s.links.CustomerInvoiceCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]project.SaleInfo, len(projects))
	for _, id := range ids {
		out[id] = project.SaleInfo{
			SaleOrderCount:       orders[id],
			CustomerInvoiceCount: invoices[id],
		}
	}
	return out, nil
}

// ComputeSaleInfo returns the sale counters of each project, in request order
func (s *SaleLinkService) ComputeSaleInfo(ctx context.Context, projectIDs []uuid.UUID) ([]SaleInfoResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale_link", "compute_sale_info",
		telemetry.SpanAttrProjectCount, len(projectIDs))
	defer span.End()

	projects, err := s.projects.FindByIDs(ctx, projectIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	infos, err := s.SaleInfoFor(ctx, projects)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	out := make([]SaleInfoResponse, 0, len(projects))
	for _, p := range projects {
		info := infos[p.ID]
		out = append(out, SaleInfoResponse{
			ProjectID:            p.ID,
			SaleOrderCount:       info.SaleOrderCount,
			CustomerInvoiceCount: info.CustomerInvoiceCount,
		})
	}
	return out, nil
}

func (s *SaleLinkService) single(ctx context.Context, projectIDs []uuid.UUID) (*project.Project, error) {
	projects, err := s.projects.FindByIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	return project.EnsureOne(projects)
}

// OpenSaleOrders opens the project's sales orders
func (s *SaleLinkService) OpenSaleOrders(ctx context.Context, projectIDs []uuid.UUID) (*action.WindowAction, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale_link", "open_action",
		telemetry.SpanAttrAction, ActionOpenSaleOrders)
	defer span.End()

	p, err := s.single(ctx, projectIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	ids, err := s.links.SaleOrderIDs(ctx, p.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrProjectID, p.ID.String(), telemetry.SpanAttrResultCount, len(ids))
	s.metrics.ActionOpened(ctx, ActionOpenSaleOrders)
	return action.NewWindowAction(s.translator.Translate(ctx, i18n.MsgSalesOrders), ModelSaleOrder, expression.IDsIn(ids)), nil
}

// OpenCustomerInvoices reads the stored customer invoice action and narrows
// it to the invoices raised from the project's orders.
func (s *SaleLinkService) OpenCustomerInvoices(ctx context.Context, projectIDs []uuid.UUID) (*action.WindowAction, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale_link", "open_action",
		telemetry.SpanAttrAction, ActionOpenCustomerInvoices)
	defer span.End()

	p, err := s.single(ctx, projectIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	ids, err := s.links.CustomerInvoiceIDs(ctx, p.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	wa, err := openStored(ctx, s.actions, s.translator, action.XMLIDCustomerInvoices, expression.IDsIn(ids))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.metrics.ActionOpened(ctx, ActionOpenCustomerInvoices)
	return wa, nil
}
