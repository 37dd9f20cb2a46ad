package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("loan record not found")
	ErrDuplicateCPF = errors.New("cpf already registered")
)

func init() {
	// Amounts travel as JSON numbers on the /clients boundary.
	decimal.MarshalJSONWithoutQuotes = true
}

// Record is one borrower and their loan. Table: clients.
type Record struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	ClientID         string          `gorm:"column:client_id;size:32;uniqueIndex:ux_clients_client_id" json:"id,omitempty"`
	Name             string          `gorm:"column:name;size:255;not null" json:"name"`
	Email            string          `gorm:"column:email;size:255" json:"email"`
	CPF              string          `gorm:"column:cpf;size:11;uniqueIndex:ux_clients_cpf" json:"cpf"`
	Phone            string          `gorm:"column:phone;size:11" json:"phone"`
	Address          string          `gorm:"column:address;type:text" json:"address"`
	Value            decimal.Decimal `gorm:"column:value;type:decimal(18,2)" json:"value"`
	LoanInterest     decimal.Decimal `gorm:"column:loan_interest;type:decimal(9,4)" json:"loanInterest"`
	MonthlyPaid      decimal.Decimal `gorm:"column:monthly_paid;type:decimal(18,2)" json:"monthlyPaid"`
	Installments     int             `gorm:"column:installments" json:"installments"`
	InstallmentsPaid int             `gorm:"column:installments_paid" json:"installmentsPaid"`
	LateInstallments int             `gorm:"column:late_installments;index:idx_clients_late" json:"lateInstallments"`
	ValuePaid        decimal.Decimal `gorm:"column:value_paid;type:decimal(18,2)" json:"valuePaid"`
	LoanDate         time.Time       `gorm:"column:loan_date" json:"loanDate"`
	NextPaymentDate  *time.Time      `gorm:"column:next_payment_date" json:"nextPaymentDate"`
	LastPaymentDate  *time.Time      `gorm:"column:last_payment_date" json:"lastPaymentDate"`
	MonthlyFeePaid   bool            `gorm:"column:monthly_fee_paid" json:"monthlyFeePaid"`
	TotalDebtPaid    bool            `gorm:"column:total_debt_paid" json:"totalDebtPaid"`
	Observations     string          `gorm:"column:observations;type:text" json:"observations"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Record) TableName() string { return "clients" }

// Status is derived on every read and never stored.
func (r Record) Status() Status { return StatusOf(r.LateInstallments) }
