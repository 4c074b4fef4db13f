package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/mailmart/internal/domain/errors"
	"github.com/polkiloo/mailmart/internal/domain/model"
	"github.com/polkiloo/mailmart/internal/server/http/dto"
	"github.com/polkiloo/mailmart/internal/server/http/middleware"
)

// CurrentAccountID extracts the authenticated account from context.
func CurrentAccountID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.AccountIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// statusFor maps domain errors to HTTP statuses. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidPayload),
		errors.Is(err, domainErrors.ErrInvalidAmount),
		errors.Is(err, domainErrors.ErrInvalidAccountID),
		errors.Is(err, domainErrors.ErrInvalidReferrer),
		errors.Is(err, domainErrors.ErrSelfReferral),
		errors.Is(err, domainErrors.ErrBelowMinimum):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrDuplicateAccount):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrAccountNotFound),
		errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrInsufficientBalance),
		errors.Is(err, domainErrors.ErrNegativeBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err. Internal errors never leak their message.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal error"
	}
	c.JSON(status, dto.ErrorResponse{Error: message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: message})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func toAccountResponse(a *model.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:         a.ID,
		Name:       a.Name,
		Balance:    a.Balance,
		ReferrerID: a.ReferrerID,
		CreatedAt:  a.CreatedAt,
	}
}

func toPendingResponse(p model.PendingSubmission, withSecret bool) dto.PendingResponse {
	resp := dto.PendingResponse{
		ID:          p.ID,
		AccountID:   p.AccountID,
		AccountName: p.AccountName,
		Identifier:  p.Payload.Identifier,
		Recovery:    p.Payload.Recovery,
		SubmittedAt: p.SubmittedAt,
	}
	if withSecret {
		resp.Secret = p.Payload.Secret
	}
	return resp
}

func toWithdrawalResponse(w model.WithdrawalRequest) dto.WithdrawalResponse {
	return dto.WithdrawalResponse{
		ID:          w.ID,
		AccountID:   w.AccountID,
		Destination: w.Destination,
		Amount:      w.Amount,
		Status:      string(w.Status),
		RequestedAt: w.RequestedAt,
	}
}
