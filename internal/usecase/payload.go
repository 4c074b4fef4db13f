package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/mailmart/internal/domain/errors"
	"github.com/polkiloo/mailmart/internal/domain/model"
)

const (
	fieldIdentifier  = "identifier"
	fieldSecret      = "secret"
	fieldRecovery    = "recovery"
	fieldDestination = "destination"
	fieldAmount      = "amount"
)

// Labels accepted in chat messages, lower-cased.
var (
	payloadLabels = map[string]string{
		"email":          fieldIdentifier,
		"password":       fieldSecret,
		"recovery email": fieldRecovery,
		"recovery":       fieldRecovery,
	}
	withdrawalLabels = map[string]string{
		"number": fieldDestination,
		"amount": fieldAmount,
	}
)

// ParsePayload reads a submission written as labelled lines:
//
//	Email: someone@example.com
//	Password: secret
//	Recovery Email: backup@example.com
func ParsePayload(text string) (model.Payload, error) {
	fields, err := parseLabelled(text, payloadLabels)
	if err != nil {
		return model.Payload{}, err
	}

	payload := model.Payload{
		Identifier: fields[fieldIdentifier],
		Secret:     fields[fieldSecret],
		Recovery:   fields[fieldRecovery],
	}
	if !payload.Complete() {
		return model.Payload{}, fmt.Errorf("%w: email, password and recovery email are required", domainErrors.ErrInvalidPayload)
	}
	return payload, nil
}

// ParseWithdrawalForm reads a withdrawal written as labelled lines:
//
//	Number: 01XXXXXXXXX
//	Amount: $12.50
func ParseWithdrawalForm(text string) (model.WithdrawalForm, error) {
	fields, err := parseLabelled(text, withdrawalLabels)
	if err != nil {
		return model.WithdrawalForm{}, err
	}

	destination := fields[fieldDestination]
	rawAmount := fields[fieldAmount]
	if destination == "" || rawAmount == "" {
		return model.WithdrawalForm{}, fmt.Errorf("%w: number and amount are required", domainErrors.ErrInvalidPayload)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(strings.TrimPrefix(rawAmount, "$")))
	if err != nil {
		return model.WithdrawalForm{}, fmt.Errorf("%w: amount %q is not a number", domainErrors.ErrInvalidPayload, rawAmount)
	}

	return model.WithdrawalForm{Destination: destination, Amount: amount}, nil
}

func parseLabelled(text string, labels map[string]string) (map[string]string, error) {
	fields := make(map[string]string, len(labels))
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		label, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: line %d has no label", domainErrors.ErrInvalidPayload, n+1)
		}

		field, known := labels[strings.ToLower(strings.TrimSpace(label))]
		if !known {
			return nil, fmt.Errorf("%w: unknown label %q", domainErrors.ErrInvalidPayload, strings.TrimSpace(label))
		}
		if _, seen := fields[field]; seen {
			return nil, fmt.Errorf("%w: %s given twice", domainErrors.ErrInvalidPayload, strings.TrimSpace(label))
		}
		fields[field] = strings.TrimSpace(value)
	}
	return fields, nil
}
