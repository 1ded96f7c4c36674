package project

import (
	"time"

	"github.com/erp/projectlink/internal/domain/project"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest represents a request to create a project.
// Without an analytic account, one named after the project is created.
type CreateProjectRequest struct {
	Name              string     `json:"name" binding:"required,min=1,max=200"`
	PrivacyVisibility string     `json:"privacy_visibility" binding:"omitempty,oneof=followers employees portal"`
	AliasName         string     `json:"alias_name" binding:"max=100"`
	CompanyID         *uuid.UUID `json:"company_id"`
	AnalyticAccountID *uuid.UUID `json:"analytic_account_id"`
}

// ProjectIDsRequest names the project set an action runs on
type ProjectIDsRequest struct {
	ProjectIDs []uuid.UUID `json:"project_ids"`
}

// ProjectResponse represents a project with its derived counters
type ProjectResponse struct {
	ID                       uuid.UUID       `json:"id"`
	Name                     string          `json:"name"`
	PrivacyVisibility        string          `json:"privacy_visibility"`
	AliasName                string          `json:"alias_name,omitempty"`
	CompanyID                *uuid.UUID      `json:"company_id,omitempty"`
	AnalyticAccountID        *uuid.UUID      `json:"analytic_account_id,omitempty"`
	PurchaseCount            int64           `json:"purchase_count"`
	PurchaseLineTotal        decimal.Decimal `json:"purchase_line_total"`
	PurchaseInvoiceCount     int64           `json:"purchase_invoice_count"`
	PurchaseInvoiceLineTotal decimal.Decimal `json:"purchase_invoice_line_total"`
	SaleOrderCount           int64           `json:"sale_order_count"`
	CustomerInvoiceCount     int64           `json:"customer_invoice_count"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

// PurchaseInfoResponse carries the purchase counters of one project
type PurchaseInfoResponse struct {
	ProjectID         uuid.UUID       `json:"project_id"`
	PurchaseCount     int64           `json:"purchase_count"`
	PurchaseLineTotal decimal.Decimal `json:"purchase_line_total"`
}

// PurchaseInvoiceInfoResponse carries the vendor bill counters of one project
type PurchaseInvoiceInfoResponse struct {
	ProjectID                uuid.UUID       `json:"project_id"`
	PurchaseInvoiceCount     int64           `json:"purchase_invoice_count"`
	PurchaseInvoiceLineTotal decimal.Decimal `json:"purchase_invoice_line_total"`
}

// SaleInfoResponse carries the sale counters of one project
type SaleInfoResponse struct {
	ProjectID            uuid.UUID `json:"project_id"`
	SaleOrderCount       int64     `json:"sale_order_count"`
	CustomerInvoiceCount int64     `json:"customer_invoice_count"`
}

// ToProjectResponse converts a project and its counters to a response
func ToProjectResponse(p *project.Project, pi project.PurchaseInfo, ii project.PurchaseInvoiceInfo, si project.SaleInfo) ProjectResponse {
	return ProjectResponse{
		ID:                       p.ID,
		Name:                     p.Name,
		PrivacyVisibility:        string(p.PrivacyVisibility),
		AliasName:                p.AliasName,
		CompanyID:                p.CompanyID,
		AnalyticAccountID:        p.AnalyticAccountID,
		PurchaseCount:            pi.PurchaseCount,
		PurchaseLineTotal:        pi.PurchaseLineTotal,
		PurchaseInvoiceCount:     ii.PurchaseInvoiceCount,
		PurchaseInvoiceLineTotal: ii.PurchaseInvoiceLineTotal,
		SaleOrderCount:           si.SaleOrderCount,
		CustomerInvoiceCount:     si.CustomerInvoiceCount,
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt,
	}
}
