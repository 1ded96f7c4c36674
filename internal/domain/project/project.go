// Package project holds the project aggregate and the read models linking it
// to purchase, accounting and sale records through its analytic account.
package project

import (
	"context"
	"strconv"
	"strings"

	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/google/uuid"
)

// Visibility controls who can see a project
type Visibility string

const (
	VisibilityFollowers Visibility = "followers"
	VisibilityEmployees Visibility = "employees"
	VisibilityPortal    Visibility = "portal"
)

// IsValid reports whether v is a known visibility
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityFollowers, VisibilityEmployees, VisibilityPortal:
		return true
	}
	return false
}

// Project is the aggregate root. Its analytic account is the join key for
// every linkage counter.
type Project struct {
	shared.BaseEntity
	Name              string
	PrivacyVisibility Visibility
	AliasName         string
	CompanyID         *uuid.UUID
	AnalyticAccountID *uuid.UUID
}

// NewProject creates a new project
func NewProject(name string, visibility Visibility) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Project name cannot be empty")
	}
	if visibility == "" {
		visibility = VisibilityEmployees
	}
	if !visibility.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid project visibility: "+string(visibility))
	}
	return &Project{
		BaseEntity:        shared.NewBaseEntity(),
		Name:              name,
		PrivacyVisibility: visibility,
	}, nil
}

// SetAlias sets the mail alias
func (p *Project) SetAlias(alias string) {
	p.AliasName = strings.TrimSpace(alias)
	p.Touch()
}

// SetCompany sets the owning company
func (p *Project) SetCompany(companyID uuid.UUID) {
	p.CompanyID = &companyID
	p.Touch()
}

// AttachAnalyticAccount links the project to its analytic account
func (p *Project) AttachAnalyticAccount(accountID uuid.UUID) {
	p.AnalyticAccountID = &accountID
	p.Touch()
}

// AccountKey returns the distribution key for the project's analytic account.
// Projects without an account have no key and never match any line.
func (p *Project) AccountKey() (string, bool) {
	if p.AnalyticAccountID == nil {
		return "", false
	}
	return analytic.Key(*p.AnalyticAccountID), true
}

// AccountKeys collects the distinct keys of a project set
func AccountKeys(projects []Project) []string {
	seen := make(map[string]struct{}, len(projects))
	keys := make([]string, 0, len(projects))
	for i := range projects {
		key, ok := projects[i].AccountKey()
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// EnsureOne enforces the single-record precondition of actions and domain builders
func EnsureOne(projects []Project) (*Project, error) {
	if len(projects) != 1 {
		return nil, shared.NewDomainError("EXPECTED_SINGLETON",
			"Expected a single project, got "+strconv.Itoa(len(projects)))
	}
	return &projects[0], nil
}

// Repository defines the interface for project persistence
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	// FindByIDs returns the projects in the order of ids; unknown ids yield shared.ErrNotFound
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Project, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Project, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, p *Project) error
}
