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

// Target models of the purchase navigation actions
const (
	ModelPurchaseOrder     = "purchase.order"
	ModelPurchaseOrderLine = "purchase.order.line"
	ModelAccountMove       = "account.move"
	ModelAccountMoveLine   = "account.move.line"
)

// Action names used for metrics and the HTTP surface
const (
	ActionOpenPurchaseOrders       = "open-purchase-orders"
	ActionOpenPurchaseOrderLines   = "open-purchase-order-lines"
	ActionOpenPurchaseInvoices     = "open-purchase-invoices"
	ActionOpenPurchaseInvoiceLines = "open-purchase-invoice-lines"
)

// PurchaseLinkService links projects to purchase orders and vendor bills
// through the analytic distribution of their lines. Counters are computed
// on every call and never stored.
type PurchaseLinkService struct {
	projects   project.Repository
	links      project.PurchaseLinkReader
	actions    action.Repository
	translator Translator
	metrics    *telemetry.LinkMetrics
}

// NewPurchaseLinkService creates a new PurchaseLinkService
func NewPurchaseLinkService(
	projects project.Repository,
	links project.PurchaseLinkReader,
	actions action.Repository,
	translator Translator,
	metrics *telemetry.LinkMetrics,
) *PurchaseLinkService {
	return &PurchaseLinkService{
		projects:   projects,
		links:      links,
		actions:    actions,
		translator: orIdentity(translator),
		metrics:    metrics,
	}
}

// PurchaseInfoFor computes purchase_count and purchase_line_total for every
// project in the set with one grouped query. Projects without matches get zeros.
func (s *PurchaseLinkService) PurchaseInfoFor(ctx context.Context, projects []project.Project) (map[uuid.UUID]project.PurchaseInfo, error) {
	defer s.metrics.ObserveCompute(ctx, "purchase_info", time.Now())

	totals, err := s.links.PurchaseTotalsByAccount(ctx, project.AccountKeys(projects))
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]project.PurchaseInfo, len(projects))
	for i := range projects {
		info := project.PurchaseInfo{}
		if key, ok := projects[i].AccountKey(); ok {
			t := totals[key]
			info.PurchaseCount = t.Count
			info.PurchaseLineTotal = t.Total
		}
		out[projects[i].ID] = info
	}
	return out, nil
}

// PurchaseInvoiceInfoFor computes purchase_invoice_count and
// purchase_invoice_line_total the same way over account move lines.
func (s *PurchaseLinkService) PurchaseInvoiceInfoFor(ctx context.Context, projects []project.Project) (map[uuid.UUID]project.PurchaseInvoiceInfo, error) {
	defer s.metrics.ObserveCompute(ctx, "purchase_invoice_info", time.Now())

	totals, err := s.links.InvoiceTotalsByAccount(ctx, project.AccountKeys(projects))
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]project.PurchaseInvoiceInfo, len(projects))
	for i := range projects {
		info := project.PurchaseInvoiceInfo{}
		if key, ok := projects[i].AccountKey(); ok {
			t := totals[key]
			info.PurchaseInvoiceCount = t.Count
			info.PurchaseInvoiceLineTotal = t.Total
		}
		out[projects[i].ID] = info
	}
	return out, nil
}

// ComputePurchaseInfo returns the purchase counters of each project, in request order
func (s *PurchaseLinkService) ComputePurchaseInfo(ctx context.Context, projectIDs []uuid.UUID) ([]PurchaseInfoResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_link", "compute_purchase_info",
		telemetry.SpanAttrProjectCount, len(projectIDs))
	defer span.End()

	projects, err := s.projects.FindByIDs(ctx, projectIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	infos, err := s.PurchaseInfoFor(ctx, projects)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	out := make([]PurchaseInfoResponse, 0, len(projects))
	for _, p := range projects {
		info := infos[p.ID]
		out = append(out, PurchaseInfoResponse{
			ProjectID:         p.ID,
			PurchaseCount:     info.PurchaseCount,
			PurchaseLineTotal: info.PurchaseLineTotal,
		})
	}
	return out, nil
}

// ComputePurchaseInvoiceInfo returns the vendor bill counters of each project, in request order
func (s *PurchaseLinkService) ComputePurchaseInvoiceInfo(ctx context.Context, projectIDs []uuid.UUID) ([]PurchaseInvoiceInfoResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_link", "compute_purchase_invoice_info",
		telemetry.SpanAttrProjectCount, len(projectIDs))
	defer span.End()

	projects, err := s.projects.FindByIDs(ctx, projectIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	infos, err := s.PurchaseInvoiceInfoFor(ctx, projects)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	out := make([]PurchaseInvoiceInfoResponse, 0, len(projects))
	for _, p := range projects {
		info := infos[p.ID]
		out = append(out, PurchaseInvoiceInfoResponse{
			ProjectID:                p.ID,
			PurchaseInvoiceCount:     info.PurchaseInvoiceCount,
			PurchaseInvoiceLineTotal: info.PurchaseInvoiceLineTotal,
		})
	}
	return out, nil
}

// singleKey loads the set, requires exactly one project and returns its account key
func (s *PurchaseLinkService) singleKey(ctx context.Context, projectIDs []uuid.UUID) ([]string, error) {
	projects, err := s.projects.FindByIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	p, err := project.EnsureOne(projects)
	if err != nil {
		return nil, err
	}
	if key, ok := p.AccountKey(); ok {
		return []string{key}, nil
	}
	return nil, nil
}

func (s *PurchaseLinkService) buildDomain(ctx context.Context, projectIDs []uuid.UUID,
	fetch func(context.Context, []string) ([]uuid.UUID, error)) (expression.Domain, error) {
	keys, err := s.singleKey(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	ids, err := fetch(ctx, keys)
	if err != nil {
		return nil, err
	}
	return expression.IDsIn(ids), nil
}

// PurchaseOrderDomain returns [("id", "in", order ids)] for the single project
func (s *PurchaseLinkService) PurchaseOrderDomain(ctx context.Context, projectIDs []uuid.UUID) (expression.Domain, error) {
	return s.buildDomain(ctx, projectIDs, s.links.PurchaseOrderIDs)
}

// PurchaseOrderLineDomain returns [("id", "in", line ids)] for the single project
func (s *PurchaseLinkService) PurchaseOrderLineDomain(ctx context.Context, projectIDs []uuid.UUID) (expression.Domain, error) {
	return s.buildDomain(ctx, projectIDs, s.links.PurchaseOrderLineIDs)
}

// PurchaseInvoiceDomain returns [("id", "in", move ids)] for the single project
func (s *PurchaseLinkService) PurchaseInvoiceDomain(ctx context.Context, projectIDs []uuid.UUID) (expression.Domain, error) {
	return s.buildDomain(ctx, projectIDs, s.links.InvoiceIDs)
}

// PurchaseInvoiceLineDomain returns [("id", "in", move line ids)] for the single project
func (s *PurchaseLinkService) PurchaseInvoiceLineDomain(ctx context.Context, projectIDs []uuid.UUID) (expression.Domain, error) {
	return s.buildDomain(ctx, projectIDs, s.links.InvoiceLineIDs)
}

func (s *PurchaseLinkService) openWindow(ctx context.Context, name, nameKey, resModel string, projectIDs []uuid.UUID,
	domainFn func(context.Context, []uuid.UUID) (expression.Domain, error)) (*action.WindowAction, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_link", "open_action",
		telemetry.SpanAttrAction, name)
	defer span.End()

	domain, err := domainFn(ctx, projectIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.metrics.ActionOpened(ctx, name)
	return action.NewWindowAction(s.translator.Translate(ctx, nameKey), resModel, domain), nil
}

// OpenPurchaseOrders opens the purchase orders of the project
func (s *PurchaseLinkService) OpenPurchaseOrders(ctx context.Context, projectIDs []uuid.UUID) (*action.WindowAction, error) {
	return s.openWindow(ctx, ActionOpenPurchaseOrders, i18n.MsgPurchaseOrder, ModelPurchaseOrder,
		projectIDs, s.PurchaseOrderDomain)
}

// OpenPurchaseOrderLines opens the purchase order lines charged to the project
func (s *PurchaseLinkService) OpenPurchaseOrderLines(ctx context.Context, projectIDs []uuid.UUID) (*action.WindowAction, error) {
	return s.openWindow(ctx, ActionOpenPurchaseOrderLines, i18n.MsgPurchaseOrderLines, ModelPurchaseOrderLine,
		projectIDs, s.PurchaseOrderLineDomain)
}

// OpenPurchaseInvoiceLines opens the vendor bill lines charged to the project
func (s *PurchaseLinkService) OpenPurchaseInvoiceLines(ctx context.Context, projectIDs []uuid.UUID) (*action.WindowAction, error) {
	return s.openWindow(ctx, ActionOpenPurchaseInvoiceLines, i18n.MsgPurchaseInvoiceLines, ModelAccountMoveLine,
		projectIDs, s.PurchaseInvoiceLineDomain)
}

// OpenPurchaseInvoices reads the stored vendor bill action and narrows its
// default domain to the project's moves.
func (s *PurchaseLinkService) OpenPurchaseInvoices(ctx context.Context, projectIDs []uuid.UUID) (*action.WindowAction, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_link", "open_action",
		telemetry.SpanAttrAction, ActionOpenPurchaseInvoices)
	defer span.End()

	domain, err := s.PurchaseInvoiceDomain(ctx, projectIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	wa, err := openStored(ctx, s.actions, s.translator, action.XMLIDVendorBills, domain)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.metrics.ActionOpened(ctx, ActionOpenPurchaseInvoices)
	return wa, nil
}

// openStored loads a stored action, evaluates its default domain and ANDs it with filter
func openStored(ctx context.Context, repo action.Repository, tr Translator, xmlID string, filter expression.Domain) (*action.WindowAction, error) {
	stored, err := repo.FindByXMLID(ctx, xmlID)
	if err != nil {
		return nil, err
	}
	wa, err := stored.Read()
	if err != nil {
		return nil, err
	}
	wa.Name = tr.Translate(ctx, wa.Name)
	wa.Domain = expression.AND(wa.Domain, filter)
	return wa, nil
}
