package loan

import (
	"errors"
	"time"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/pkg/mask"

	"github.com/shopspring/decimal"
)

var ErrInvalidInput = errors.New("invalid input")

// RecordInput is the writable part of a record. The id is always assigned here.
type RecordInput struct {
	Name             string
	Email            string
	CPF              string
	Phone            string
	Address          string
	Value            decimal.Decimal
	LoanInterest     decimal.Decimal
	MonthlyPaid      decimal.Decimal
	Installments     int
	InstallmentsPaid int
	LateInstallments int
	ValuePaid        decimal.Decimal
	LoanDate         time.Time
	NextPaymentDate  *time.Time
	LastPaymentDate  *time.Time
	MonthlyFeePaid   bool
	TotalDebtPaid    bool
	Observations     string
}

func (in RecordInput) validate() error {
	if in.Name == "" || len(mask.Digits(in.CPF)) != 11 {
		return ErrInvalidInput
	}
	for _, d := range []decimal.Decimal{in.Value, in.LoanInterest, in.MonthlyPaid, in.ValuePaid} {
		if d.IsNegative() {
			return ErrInvalidInput
		}
	}
	if in.Installments < 0 || in.InstallmentsPaid < 0 || in.LateInstallments < 0 {
		return ErrInvalidInput
	}
	return nil
}

// apply overwrites every writable column of r; identity and timestamps stay.
func (in RecordInput) apply(r *loan.Record) {
	r.Name = in.Name
	r.Email = in.Email
	r.CPF = mask.Digits(in.CPF)
	r.Phone = mask.Digits(in.Phone)
	r.Address = in.Address
	r.Value = in.Value
	r.LoanInterest = in.LoanInterest
	r.MonthlyPaid = in.MonthlyPaid
	r.Installments = in.Installments
	r.InstallmentsPaid = in.InstallmentsPaid
	r.LateInstallments = in.LateInstallments
	r.ValuePaid = in.ValuePaid
	r.LoanDate = in.LoanDate.UTC()
	r.NextPaymentDate = utcPtr(in.NextPaymentDate)
	r.LastPaymentDate = utcPtr(in.LastPaymentDate)
	r.MonthlyFeePaid = in.MonthlyFeePaid
	r.TotalDebtPaid = in.TotalDebtPaid
	r.Observations = in.Observations
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
