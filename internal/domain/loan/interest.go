package loan

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// MonthlyInterest is the interest-only periodic payment: value * rate% rounded
// to cents.
func MonthlyInterest(value, ratePercent decimal.Decimal) decimal.Decimal {
	return value.Mul(ratePercent).Div(hundred).Round(2)
}
