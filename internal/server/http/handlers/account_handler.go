package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/mailmart/internal/domain/model"
	"github.com/polkiloo/mailmart/internal/server/http/dto"
	"github.com/polkiloo/mailmart/internal/server/http/middleware"
)

// AccountHandler serves account opening, sessions and account reads.
type AccountHandler struct {
	facade AccountFacade
}

// NewAccountHandler creates AccountHandler instance.
func NewAccountHandler(facade AccountFacade) *AccountHandler {
	return &AccountHandler{facade: facade}
}

// Create handles POST /api/accounts.
func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request")
		return
	}

	account, token, err := h.facade.Register(c.Request.Context(), model.NewAccount{
		ID:         req.ID,
		Name:       req.Name,
		ReferrerID: req.ReferrerID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := toAccountResponse(account)
	middleware.SetAuthHeader(c, token)
	c.JSON(http.StatusCreated, dto.TokenResponse{Token: token, Account: &resp})
}

// Session handles POST /api/session.
func (h *AccountHandler) Session(c *gin.Context) {
	var req dto.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request")
		return
	}

	token, err := h.facade.Session(c.Request.Context(), req.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetAuthHeader(c, token)
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Me handles GET /api/account.
func (h *AccountHandler) Me(c *gin.Context) {
	account, err := h.facade.Account(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(account))
}

// Balance handles GET /api/balance.
func (h *AccountHandler) Balance(c *gin.Context) {
	summary, err := h.facade.Balance(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		Balance:          summary.Balance,
		Pending:          summary.Pending,
		Display:          summary.Display,
		ReferralCount:    summary.ReferralCount,
		ReferralEarnings: summary.ReferralEarnings,
		MinWithdrawal:    summary.MinWithdrawal,
	})
}

// Transactions handles GET /api/transactions.
func (h *AccountHandler) Transactions(c *gin.Context) {
	txs, err := h.facade.Transactions(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(txs) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, dto.TransactionResponse{
			ID:          tx.ID,
			Amount:      tx.Amount,
			Kind:        string(tx.Kind),
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Referrals handles GET /api/referrals.
func (h *AccountHandler) Referrals(c *gin.Context) {
	referrals, err := h.facade.Referrals(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(referrals) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.ReferralResponse, 0, len(referrals))
	for _, r := range referrals {
		resp = append(resp, dto.ReferralResponse{
			AccountID: r.AccountID,
			Name:      r.Name,
			JoinedAt:  r.JoinedAt,
			Credited:  r.Credited,
			Earnings:  r.Earnings,
		})
	}
	c.JSON(http.StatusOK, resp)
}
