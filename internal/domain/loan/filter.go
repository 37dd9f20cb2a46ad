package loan

import (
	"errors"
	"strings"
	"time"
)

type FilterStatus string

const (
	FilterAll    FilterStatus = "all"
	FilterDebtor FilterStatus = "debtor"
	FilterPaid   FilterStatus = "paid"
)

var ErrInvalidFilterStatus = errors.New("status must be one of all, debtor, paid")

// ParseFilterStatus accepts operator input; empty means all.
func ParseFilterStatus(s string) (FilterStatus, error) {
	switch FilterStatus(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterDebtor:
		return FilterDebtor, nil
	case FilterPaid:
		return FilterPaid, nil
	}
	return "", ErrInvalidFilterStatus
}

// Criteria narrows the ledger. The zero value of Status behaves like FilterAll.
type Criteria struct {
	Name   string       `json:"name" query:"name"`
	Status FilterStatus `json:"status" query:"status"`
	Date   string       `json:"date" query:"date"`
}

// NoFilter matches every record.
func NoFilter() Criteria { return Criteria{Status: FilterAll} }

// IsZero reports whether c lets every record through.
func (c Criteria) IsZero() bool {
	return c.Name == "" && c.Date == "" && (c.Status == "" || c.Status == FilterAll)
}

// Match applies the three predicates conjunctively.
func (c Criteria) Match(r Record) bool {
	return c.matchName(r) && c.matchStatus(r) && c.matchDate(r)
}

func (c Criteria) matchName(r Record) bool {
	return strings.Contains(strings.ToLower(r.Name), strings.ToLower(c.Name))
}

func (c Criteria) matchStatus(r Record) bool {
	switch c.Status {
	case "", FilterAll:
		return true
	case FilterDebtor:
		return r.LateInstallments > 0
	default:
		// anything that is not all/debtor selects records that are up to date
		return r.LateInstallments == 0
	}
}

func (c Criteria) matchDate(r Record) bool {
	if c.Date == "" {
		return true
	}
	if r.NextPaymentDate == nil {
		return false
	}
	return strings.Contains(DateKey(*r.NextPaymentDate), c.Date)
}

// DateKey is the text a date criterion is matched against.
func DateKey(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// FilterRecords returns the records matching c in their original order.
func FilterRecords(records []Record, c Criteria) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if c.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
