// Package sqlitedb opens in-memory sqlite databases with sqlite-safe copies
// of the clients and users tables. Decimals are stored as text.
package sqlitedb

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Record struct {
	ID               uint64     `gorm:"primaryKey;column:id"`
	ClientID         string     `gorm:"size:32;uniqueIndex;column:client_id"`
	Name             string     `gorm:"column:name"`
	Email            string     `gorm:"column:email"`
	CPF              string     `gorm:"size:11;uniqueIndex;column:cpf"`
	Phone            string     `gorm:"column:phone"`
	Address          string     `gorm:"column:address"`
	Value            string     `gorm:"type:text;column:value"`
	LoanInterest     string     `gorm:"type:text;column:loan_interest"`
	MonthlyPaid      string     `gorm:"type:text;column:monthly_paid"`
	Installments     int        `gorm:"column:installments"`
	InstallmentsPaid int        `gorm:"column:installments_paid"`
	LateInstallments int        `gorm:"column:late_installments"`
	ValuePaid        string     `gorm:"type:text;column:value_paid"`
	LoanDate         time.Time  `gorm:"column:loan_date"`
	NextPaymentDate  *time.Time `gorm:"column:next_payment_date"`
	LastPaymentDate  *time.Time `gorm:"column:last_payment_date"`
	MonthlyFeePaid   bool       `gorm:"column:monthly_fee_paid"`
	TotalDebtPaid    bool       `gorm:"column:total_debt_paid"`
	Observations     string     `gorm:"column:observations"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (Record) TableName() string { return "clients" }

type User struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	UserID       string    `gorm:"size:32;uniqueIndex;column:user_id"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"uniqueIndex;column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string { return "users" }

// Open creates an in-memory DB and migrates ONLY the sqlite-safe schema.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// one connection: every new ":memory:" connection would be a fresh empty DB
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&Record{}, &User{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
