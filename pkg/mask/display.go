package mask

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// BRL formats an amount the way the ledger shows it to operators: R$ 1.234,50.
func BRL(v decimal.Decimal) string {
	return brPrinter.Sprintf("R$ %.2f", v.Round(2).InexactFloat64())
}

// Date renders a stored timestamp as dd/mm/yyyy, or "-" when unset.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.UTC().Format("02/01/2006")
}

// FixedMoney renders a stored amount as the money field shows it while editing.
func FixedMoney(v decimal.Decimal) string { return v.StringFixed(2) }

// FormatCPF renders stored CPF digits for an edit form.
func FormatCPF(digits string) string { return CPF(digits) }

// FormatPhone renders stored phone digits for an edit form.
func FormatPhone(digits string) string { return Phone(digits) }
