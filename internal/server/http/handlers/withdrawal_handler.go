package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/mailmart/internal/domain/model"
	"github.com/polkiloo/mailmart/internal/server/http/dto"
)

// WithdrawalHandler serves cash-out requests of account holders.
type WithdrawalHandler struct {
	facade WithdrawalFacade
}

// NewWithdrawalHandler constructs WithdrawalHandler.
func NewWithdrawalHandler(facade WithdrawalFacade) *WithdrawalHandler {
	return &WithdrawalHandler{facade: facade}
}

// Withdraw handles POST /api/withdrawals.
func (h *WithdrawalHandler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request")
		return
	}

	var (
		request *model.WithdrawalRequest
		err     error
	)
	accountID := CurrentAccountID(c)
	switch {
	case strings.TrimSpace(req.Text) != "":
		request, err = h.facade.WithdrawText(c.Request.Context(), accountID, req.Text)
	case req.Amount == nil:
		badRequest(c, "amount is required")
		return
	default:
		request, err = h.facade.Withdraw(c.Request.Context(), accountID, req.Destination, *req.Amount)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toWithdrawalResponse(*request))
}

// List handles GET /api/withdrawals.
func (h *WithdrawalHandler) List(c *gin.Context) {
	requests, err := h.facade.Withdrawals(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(requests) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.WithdrawalResponse, 0, len(requests))
	for _, r := range requests {
		resp = append(resp, toWithdrawalResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}
