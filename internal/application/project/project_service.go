package project

import (
	"context"
	"errors"

	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/erp/projectlink/internal/domain/project"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/erp/projectlink/internal/infrastructure/logger"
	"github.com/erp/projectlink/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProjectService handles project operations and assembles the derived counters
type ProjectService struct {
	projects project.Repository
	accounts analytic.AccountRepository
	purchase *PurchaseLinkService
	sale     *SaleLinkService
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projects project.Repository,
	accounts analytic.AccountRepository,
	purchase *PurchaseLinkService,
	sale *SaleLinkService,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		accounts: accounts,
		purchase: purchase,
		sale:     sale,
	}
}

// Create creates a project. When no analytic account is given, one with the
// project's name is created and linked.
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "project", "create")
	defer span.End()

	p, err := project.NewProject(req.Name, project.Visibility(req.PrivacyVisibility))
	if err != nil {
		return nil, err
	}
	if req.AliasName != "" {
		p.SetAlias(req.AliasName)
	}
	if req.CompanyID != nil {
		p.SetCompany(*req.CompanyID)
	}

	if req.AnalyticAccountID != nil {
		account, err := s.accounts.FindByID(ctx, *req.AnalyticAccountID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_INPUT", "Analytic account not found")
			}
			return nil, err
		}
		p.AttachAnalyticAccount(account.ID)
	} else {
		account, err := analytic.NewAccount(p.Name, "")
		if err != nil {
			return nil, err
		}
		account.CompanyID = p.CompanyID
		if err := s.accounts.Save(ctx, account); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		p.AttachAnalyticAccount(account.ID)
	}

	if err := s.projects.Save(ctx, p); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	logger.L(ctx).Info("Project created",
		zap.String("project_id", p.ID.String()),
		zap.String("analytic_account_id", p.AnalyticAccountID.String()))

	resp := ToProjectResponse(p, project.PurchaseInfo{}, project.PurchaseInvoiceInfo{}, project.SaleInfo{})
	return &resp, nil
}

// GetByID returns a project with all six counters
func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := s.withCounters(ctx, []project.Project{*p})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// List lists projects with their counters, computed for the whole page at once
func (s *ProjectService) List(ctx context.Context, filter shared.Filter) ([]ProjectResponse, int64, error) {
	projects, err := s.projects.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.projects.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.withCounters(ctx, projects)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *ProjectService) withCounters(ctx context.Context, projects []project.Project) ([]ProjectResponse, error) {
	purchases, err := s.purchase.PurchaseInfoFor(ctx, projects)
	if err != nil {
		return nil, err
	}
	invoices, err := s.purchase.PurchaseInvoiceInfoFor(ctx, projects)
	if err != nil {
		return nil, err
	}
	sales, err := s.sale.SaleInfoFor(ctx, projects)
	if err != nil {
		return nil, err
	}
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		id := projects[i].ID
		out = append(out, ToProjectResponse(&projects[i], purchases[id], invoices[id], sales[id]))
	}
	return out, nil
}
