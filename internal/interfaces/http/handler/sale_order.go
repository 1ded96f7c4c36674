package handler

import (
	"context"

	saleapp "github.com/erp/projectlink/internal/application/sale"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaleOrderHandler handles sales orders and the down payment wizard
type SaleOrderHandler struct {
	BaseHandler
	orders  *saleapp.OrderService
	advance *saleapp.AdvancePaymentService
}

// NewSaleOrderHandler creates a new SaleOrderHandler
func NewSaleOrderHandler(orders *saleapp.OrderService, advance *saleapp.AdvancePaymentService) *SaleOrderHandler {
	return &SaleOrderHandler{orders: orders, advance: advance}
}

// Create creates a draft sales order
// @Summary      Create a draft sales order
// @Tags         sale
// @Accept       json
// @Produce      json
// @Param        request body saleapp.CreateOrderRequest true "Sales order"
// @Success      201 {object} dto.Response{data=saleapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sale/orders [post]
func (h *SaleOrderHandler) Create(c *gin.Context) {
	var req saleapp.CreateOrderRequest
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

// GetByID returns a sales order
// @Summary      Get a sales order
// @Tags         sale
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=saleapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sale/orders/{id} [get]
func (h *SaleOrderHandler) GetByID(c *gin.Context) {
	h.run(c, h.orders.GetByID)
}

// Confirm moves a draft order to sale
// @Summary      Confirm a sales order
// @Tags         sale
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=saleapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sale/orders/{id}/confirm [post]
func (h *SaleOrderHandler) Confirm(c *gin.Context) {
	h.run(c, h.orders.Confirm)
}

// Cancel cancels an order
// @Summary      Cancel a sales order
// @Tags         sale
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=saleapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sale/orders/{id}/cancel [post]
func (h *SaleOrderHandler) Cancel(c *gin.Context) {
	h.run(c, h.orders.Cancel)
}

// AdvancePayment creates one draft down payment invoice per selected order
// @Summary      Create down payment invoices
// @Tags         sale
// @Accept       json
// @Produce      json
// @Param        request body saleapp.AdvancePaymentRequest true "Down payment wizard"
// @Success      201 {object} dto.Response{data=saleapp.AdvancePaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sale/advance-payment [post]
func (h *SaleOrderHandler) AdvancePayment(c *gin.Context) {
	var req saleapp.AdvancePaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.advance.CreateInvoices(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *SaleOrderHandler) run(c *gin.Context, op func(context.Context, uuid.UUID) (*saleapp.OrderResponse, error)) {
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
