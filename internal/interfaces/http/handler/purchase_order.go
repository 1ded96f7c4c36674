package handler

import (
	"context"

	purchaseapp "github.com/erp/projectlink/internal/application/purchase"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PurchaseOrderHandler handles purchase order endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orders *purchaseapp.OrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(orders *purchaseapp.OrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orders: orders}
}

// Create creates a draft purchase order
// @Summary      Create a draft purchase order
// @Tags         purchase
// @Accept       json
// @Produce      json
// @Param        request body purchaseapp.CreateOrderRequest true "Purchase order"
// @Success      201 {object} dto.Response{data=purchaseapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchase/orders [post]
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req purchaseapp.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID returns a purchase order
// @Summary      Get a purchase order
// @Tags         purchase
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=purchaseapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchase/orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	h.run(c, h.orders.GetByID)
}

// Confirm confirms a draft order
// @Summary      Confirm a purchase order
// @Tags         purchase
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=purchaseapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchase/orders/{id}/confirm [post]
func (h *PurchaseOrderHandler) Confirm(c *gin.Context) {
	h.run(c, h.orders.Confirm)
}

// Cancel cancels an order
// @Summary      Cancel a purchase order
// @Tags         purchase
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=purchaseapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchase/orders/{id}/cancel [post]
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	h.run(c, h.orders.Cancel)
}

func (h *PurchaseOrderHandler) run(c *gin.Context, op func(context.Context, uuid.UUID) (*purchaseapp.OrderResponse, error)) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
