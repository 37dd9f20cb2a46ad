package ledger

import (
	"loan-ledger/internal/domain/loan"

	"github.com/shopspring/decimal"
)

// Summary is the portfolio overview shown above the client list.
type Summary struct {
	Clients         int
	Debtors         int
	TotalLent       decimal.Decimal
	TotalReceived   decimal.Decimal
	ExpectedMonthly decimal.Decimal
}

func Summarize(records []loan.Record) Summary {
	s := Summary{TotalLent: decimal.Zero, TotalReceived: decimal.Zero, ExpectedMonthly: decimal.Zero}
	for _, r := range records {
		s.Clients++
		if r.Status() == loan.StatusLate {
			s.Debtors++
		}
		s.TotalLent = s.TotalLent.Add(r.Value)
		s.TotalReceived = s.TotalReceived.Add(r.ValuePaid)
		if !r.TotalDebtPaid {
			s.ExpectedMonthly = s.ExpectedMonthly.Add(r.MonthlyPaid)
		}
	}
	return s
}
