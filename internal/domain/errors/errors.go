package errors

import "errors"

var (
	ErrDuplicateAccount    = errors.New("account already exists")
	ErrInvalidReferrer     = errors.New("invalid referrer")
	ErrSelfReferral        = errors.New("self referral is not allowed")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidAccountID    = errors.New("invalid account id")
	ErrNegativeBalance     = errors.New("balance would become negative")
	ErrNotFound            = errors.New("not found")
	ErrBelowMinimum        = errors.New("amount below minimum withdrawal")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidPayload      = errors.New("invalid payload")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrForbidden           = errors.New("forbidden")
)
