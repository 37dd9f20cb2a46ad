// Package mask canonicalizes operator-typed money, CPF and phone values.
//
// Every function takes the current raw text of a field and returns the text the
// field should display. They are idempotent, accept the empty string and never
// fail: malformed input degrades to a partial canonical string.
package mask

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	cpfDigits   = 11
	phoneDigits = 11
)

// Digits drops every rune that is not an ASCII digit.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Money reads the digits of raw as cents and renders them with two decimals,
// so typing "5", "0", "0" shows "5.00".
func Money(raw string) string {
	d := Digits(raw)
	if d == "" {
		return ""
	}
	cents, err := decimal.NewFromString(d)
	if err != nil {
		return ""
	}
	return cents.Shift(-2).StringFixed(2)
}

// CPF renders up to 11 digits as ddd.ddd.ddd-dd.
func CPF(raw string) string {
	d := truncate(Digits(raw), cpfDigits)

	var b strings.Builder
	for i := 0; i < len(d); i++ {
		switch i {
		case 3, 6:
			b.WriteByte('.')
		case 9:
			b.WriteByte('-')
		}
		b.WriteByte(d[i])
	}
	return b.String()
}

// Phone renders up to 11 digits as (dd) ddddd-dddd. The hyphen only appears
// once at least five digits follow the area code.
func Phone(raw string) string {
	d := truncate(Digits(raw), phoneDigits)
	if len(d) <= 2 {
		return d
	}
	area, rest := d[:2], d[2:]
	if len(rest) >= 5 {
		rest = rest[:len(rest)-4] + "-" + rest[len(rest)-4:]
	}
	return "(" + area + ") " + rest
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
