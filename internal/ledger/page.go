package ledger

import "loan-ledger/internal/domain/loan"

const PerPage = 10

// Page returns the 1-based page of records and the page count. Out of range
// indexes are clamped.
func Page(records []loan.Record, index int) ([]loan.Record, int) {
	pages := (len(records) + PerPage - 1) / PerPage
	if pages == 0 {
		return nil, 1
	}
	if index < 1 {
		index = 1
	}
	if index > pages {
		index = pages
	}
	start := (index - 1) * PerPage
	end := start + PerPage
	if end > len(records) {
		end = len(records)
	}
	return records[start:end], pages
}
