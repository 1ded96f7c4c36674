package handler

import (
	"context"

	projectapp "github.com/erp/projectlink/internal/application/project"
	"github.com/erp/projectlink/internal/domain/action"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/erp/projectlink/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type actionFunc func(ctx context.Context, projectIDs []uuid.UUID) (*action.WindowAction, error)

// ProjectHandler handles projects, their counters and navigation actions
type ProjectHandler struct {
	BaseHandler
	projects *projectapp.ProjectService
	purchase *projectapp.PurchaseLinkService
	sale     *projectapp.SaleLinkService
	actions  map[string]actionFunc
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(
	projects *projectapp.ProjectService,
	purchase *projectapp.PurchaseLinkService,
	sale *projectapp.SaleLinkService,
) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		purchase: purchase,
		sale:     sale,
		actions: map[string]actionFunc{
			projectapp.ActionOpenPurchaseOrders:       purchase.OpenPurchaseOrders,
			projectapp.ActionOpenPurchaseOrderLines:   purchase.OpenPurchaseOrderLines,
			projectapp.ActionOpenPurchaseInvoices:     purchase.OpenPurchaseInvoices,
			projectapp.ActionOpenPurchaseInvoiceLines: purchase.OpenPurchaseInvoiceLines,
			projectapp.ActionOpenSaleOrders:           sale.OpenSaleOrders,
			projectapp.ActionOpenCustomerInvoices:     sale.OpenCustomerInvoices,
		},
	}
}

// Create creates a project
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request body projectapp.CreateProjectRequest true "Project"
// @Success      201 {object} dto.Response{data=projectapp.ProjectResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectapp.CreateProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.projects.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List lists projects with their counters
// @Summary      List projects with their counters
// @Tags         projects
// @Produce      json
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Name filter"
// @Success      200 {object} dto.Response{data=[]projectapp.ProjectResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter := shared.Filter{Page: req.Page, PageSize: req.PageSize, Search: req.Search}
	items, total, err := h.projects.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, req.Page, req.PageSize)
}

// GetByID returns a project with all six counters
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      200 {object} dto.Response{data=projectapp.ProjectResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PurchaseInfo computes purchase_count and purchase_line_total for a project set
// @Summary      Purchase order counters
// @Tags         projects
// @Produce      json
// @Param        ids query string true "Comma separated project IDs"
// @Success      200 {object} dto.Response{data=[]projectapp.PurchaseInfoResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /projects/purchase-info [get]
func (h *ProjectHandler) PurchaseInfo(c *gin.Context) {
	ids, ok := h.queryIDs(c)
	if !ok {
		return
	}
	resp, err := h.purchase.ComputePurchaseInfo(c.Request.Context(), ids)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PurchaseInvoiceInfo computes the vendor bill counters for a project set
// @Summary      Vendor bill counters
// @Tags         projects
// @Produce      json
// @Param        ids query string true "Comma separated project IDs"
// @Success      200 {object} dto.Response{data=[]projectapp.PurchaseInvoiceInfoResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /projects/purchase-invoice-info [get]
func (h *ProjectHandler) PurchaseInvoiceInfo(c *gin.Context) {
	ids, ok := h.queryIDs(c)
	if !ok {
		return
	}
	resp, err := h.purchase.ComputePurchaseInvoiceInfo(c.Request.Context(), ids)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SaleInfo computes sale_order_count and customer_invoice_count for a project set
// @Summary      Sales order and customer invoice counters
// @Tags         projects
// @Produce      json
// @Param        ids query string true "Comma separated project IDs"
// @Success      200 {object} dto.Response{data=[]projectapp.SaleInfoResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /projects/sale-info [get]
func (h *ProjectHandler) SaleInfo(c *gin.Context) {
	ids, ok := h.queryIDs(c)
	if !ok {
		return
	}
	resp, err := h.sale.ComputeSaleInfo(c.Request.Context(), ids)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// OpenAction builds a navigation action for exactly one project
// @Summary      Open a navigation action
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        action path string true "Action name" Enums(open-purchase-orders, open-purchase-order-lines, open-purchase-invoices, open-purchase-invoice-lines, open-sale-orders, open-customer-invoices)
// @Param        request body projectapp.ProjectIDsRequest true "Exactly one project"
// @Success      200 {object} dto.Response{data=action.WindowAction}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /projects/actions/{action} [post]
func (h *ProjectHandler) OpenAction(c *gin.Context) {
	open, ok := h.actions[c.Param("action")]
	if !ok {
		h.NotFound(c, "Unknown action: "+c.Param("action"))
		return
	}
	var req projectapp.ProjectIDsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	act, err := open(c.Request.Context(), req.ProjectIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, act)
}
