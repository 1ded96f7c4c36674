package router

import "github.com/erp/projectlink/internal/interfaces/http/handler"

// Handlers bundles the API handlers
type Handlers struct {
	Project       *handler.ProjectHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	AccountMove   *handler.AccountMoveHandler
	SaleOrder     *handler.SaleOrderHandler
}

// ProjectRoutes returns the project group: CRUD, counters and navigation actions
func ProjectRoutes(h *handler.ProjectHandler) *DomainGroup {
	return NewDomainGroup("projects", "/projects").
		POST("", h.Create).
		GET("", h.List).
		GET("/purchase-info", h.PurchaseInfo).
		GET("/purchase-invoice-info", h.PurchaseInvoiceInfo).
		GET("/sale-info", h.SaleInfo).
		POST("/actions/:action", h.OpenAction).
		GET("/:id", h.GetByID)
}

// PurchaseRoutes returns the purchase group
func PurchaseRoutes(h *handler.PurchaseOrderHandler) *DomainGroup {
	g := NewDomainGroup("purchase", "/purchase")
	g.Group("orders", "/orders").
		POST("", h.Create).
		GET("/:id", h.GetByID).
		POST("/:id/confirm", h.Confirm).
		POST("/:id/cancel", h.Cancel)
	return g
}

// AccountingRoutes returns the accounting group
func AccountingRoutes(h *handler.AccountMoveHandler) *DomainGroup {
	g := NewDomainGroup("accounting", "/accounting")
	g.Group("moves", "/moves").
		POST("", h.Create).
		GET("/:id", h.GetByID).
		POST("/:id/post", h.Post).
		POST("/:id/cancel", h.Cancel)
	return g
}

// SaleRoutes returns the sale group including the down payment wizard
func SaleRoutes(h *handler.SaleOrderHandler) *DomainGroup {
	g := NewDomainGroup("sale", "/sale").
		POST("/advance-payment", h.AdvancePayment)
	g.Group("orders", "/orders").
		POST("", h.Create).
		GET("/:id", h.GetByID).
		POST("/:id/confirm", h.Confirm).
		POST("/:id/cancel", h.Cancel)
	return g
}

// RegisterAll registers every domain group of the API
func (r *Router) RegisterAll(h Handlers) *Router {
	return r.Register(ProjectRoutes(h.Project)).
		Register(PurchaseRoutes(h.PurchaseOrder)).
		Register(AccountingRoutes(h.AccountMove)).
		Register(SaleRoutes(h.SaleOrder))
}
