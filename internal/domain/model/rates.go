package model

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places kept for stored amounts.
const MoneyScale = 8

// FitsScale reports whether amount can be stored without rounding.
func FitsScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(MoneyScale))
}

// Rates are the monetary constants shared by the ledger and its front end.
type Rates struct {
	UnitPayout    decimal.Decimal
	ReferralRate  decimal.Decimal
	MinWithdrawal decimal.Decimal
	// DisplayRate converts primary currency into the secondary currency shown
	// to users. It is never used for stored amounts.
	DisplayRate decimal.Decimal
}

// DefaultRates returns the rates the marketplace launched with.
func DefaultRates() Rates {
	return Rates{
		UnitPayout:    decimal.RequireFromString("0.05"),
		ReferralRate:  decimal.RequireFromString("0.05"),
		MinWithdrawal: decimal.RequireFromString("1.00"),
		DisplayRate:   decimal.NewFromInt(110),
	}
}

// ReferralBonus is credited to a referrer when a referred account joins.
// Digits beyond MoneyScale are dropped.
func (r Rates) ReferralBonus() decimal.Decimal {
	return r.ReferralRate.Mul(r.UnitPayout).Truncate(MoneyScale)
}

// Display converts amount into whole units of the secondary currency.
func (r Rates) Display(amount decimal.Decimal) int64 {
	return amount.Mul(r.DisplayRate).Truncate(0).IntPart()
}
