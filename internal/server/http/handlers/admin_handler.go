package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/mailmart/internal/server/http/dto"
)

// AdminHandler serves the review queue and the withdrawal overview.
type AdminHandler struct {
	submissions SubmissionFacade
	withdrawals WithdrawalFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(submissions SubmissionFacade, withdrawals WithdrawalFacade) *AdminHandler {
	return &AdminHandler{submissions: submissions, withdrawals: withdrawals}
}

// Pending handles GET /api/admin/submissions.
func (h *AdminHandler) Pending(c *gin.Context) {
	pending, err := h.submissions.PendingSubmissions(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(pending) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.PendingResponse, 0, len(pending))
	for _, p := range pending {
		resp = append(resp, toPendingResponse(p, true))
	}
	c.JSON(http.StatusOK, resp)
}

// Approve handles POST /api/admin/submissions/:id/approve.
func (h *AdminHandler) Approve(c *gin.Context) {
	pendingID, ok := pathID(c, "id")
	if !ok {
		badRequest(c, "invalid submission id")
		return
	}

	item, err := h.submissions.Approve(c.Request.Context(), CurrentAccountID(c), pendingID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ItemResponse{
		ID:         item.ID,
		Identifier: item.Payload.Identifier,
		Recovery:   item.Payload.Recovery,
		ApprovedAt: item.ApprovedAt,
	})
}

// Reject handles POST /api/admin/submissions/:id/reject. The body is optional.
func (h *AdminHandler) Reject(c *gin.Context) {
	pendingID, ok := pathID(c, "id")
	if !ok {
		badRequest(c, "invalid submission id")
		return
	}

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "malformed request")
		return
	}

	rejection, err := h.submissions.Reject(c.Request.Context(), CurrentAccountID(c), pendingID, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RejectResponse{
		ID:        rejection.Submission.ID,
		AccountID: rejection.Submission.AccountID,
		Reason:    rejection.Reason,
	})
}

// Withdrawals handles GET /api/admin/withdrawals.
func (h *AdminHandler) Withdrawals(c *gin.Context) {
	requests, err := h.withdrawals.AllWithdrawals(c.Request.Context(), CurrentAccountID(c))
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
