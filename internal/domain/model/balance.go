package model

import "github.com/shopspring/decimal"

// BalanceSummary aggregates what an account sees on its balance screen.
type BalanceSummary struct {
	Balance          decimal.Decimal
	Pending          decimal.Decimal
	Display          int64
	ReferralCount    int
	ReferralEarnings decimal.Decimal
	MinWithdrawal    decimal.Decimal
}
