package handler

import (
	"context"

	accountingapp "github.com/erp/projectlink/internal/application/accounting"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountMoveHandler handles vendor bill and customer invoice endpoints
type AccountMoveHandler struct {
	BaseHandler
	moves *accountingapp.MoveService
}

// NewAccountMoveHandler creates a new AccountMoveHandler
func NewAccountMoveHandler(moves *accountingapp.MoveService) *AccountMoveHandler {
	return &AccountMoveHandler{moves: moves}
}

// Create creates a draft move
// @Summary      Create a draft bill or invoice
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Param        request body accountingapp.CreateMoveRequest true "Move"
// @Success      201 {object} dto.Response{data=accountingapp.MoveResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /accounting/moves [post]
func (h *AccountMoveHandler) Create(c *gin.Context) {
	var req accountingapp.CreateMoveRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.moves.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID returns a move
// @Summary      Get a move
// @Tags         accounting
// @Produce      json
// @Param        id path string true "Move ID" format(uuid)
// @Success      200 {object} dto.Response{data=accountingapp.MoveResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /accounting/moves/{id} [get]
func (h *AccountMoveHandler) GetByID(c *gin.Context) {
	h.run(c, h.moves.GetByID)
}

// Post posts a draft move
// @Summary      Post a draft move
// @Tags         accounting
// @Produce      json
// @Param        id path string true "Move ID" format(uuid)
// @Success      200 {object} dto.Response{data=accountingapp.MoveResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /accounting/moves/{id}/post [post]
func (h *AccountMoveHandler) Post(c *gin.Context) {
	h.run(c, h.moves.Post)
}

// Cancel cancels a move
// @Summary      Cancel a move
// @Tags         accounting
// @Produce      json
// @Param        id path string true "Move ID" format(uuid)
// @Success      200 {object} dto.Response{data=accountingapp.MoveResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /accounting/moves/{id}/cancel [post]
func (h *AccountMoveHandler) Cancel(c *gin.Context) {
	h.run(c, h.moves.Cancel)
}

func (h *AccountMoveHandler) run(c *gin.Context, op func(context.Context, uuid.UUID) (*accountingapp.MoveResponse, error)) {
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
