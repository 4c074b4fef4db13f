package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/mailmart/internal/domain/model"
	"github.com/polkiloo/mailmart/internal/server/http/dto"
)

// SubmissionHandler serves item intake for account holders.
type SubmissionHandler struct {
	facade SubmissionFacade
}

// NewSubmissionHandler constructs SubmissionHandler.
func NewSubmissionHandler(facade SubmissionFacade) *SubmissionHandler {
	return &SubmissionHandler{facade: facade}
}

// Submit handles POST /api/submissions.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request")
		return
	}

	var (
		pending *model.PendingSubmission
		err     error
	)
	accountID := CurrentAccountID(c)
	if strings.TrimSpace(req.Text) != "" {
		pending, err = h.facade.SubmitText(c.Request.Context(), accountID, req.Text)
	} else {
		pending, err = h.facade.Submit(c.Request.Context(), accountID, model.Payload{
			Identifier: req.Identifier,
			Secret:     req.Secret,
			Recovery:   req.Recovery,
		})
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPendingResponse(*pending, false))
}

// Items handles GET /api/items.
func (h *SubmissionHandler) Items(c *gin.Context) {
	items, err := h.facade.ApprovedItems(c.Request.Context(), CurrentAccountID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(items) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, dto.ItemResponse{
			ID:         item.ID,
			Identifier: item.Payload.Identifier,
			Recovery:   item.Payload.Recovery,
			ApprovedAt: item.ApprovedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}
