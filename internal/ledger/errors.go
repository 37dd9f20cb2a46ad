package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrTransport    = errors.New("ledger: transport failure")
	ErrConflict     = errors.New("ledger: conflict")
	ErrUnauthorized = errors.New("ledger: unauthorized")
	ErrNotFound     = errors.New("ledger: not found")
	ErrRejected     = errors.New("ledger: rejected")

	ErrSubmitting   = errors.New("ledger: a submission is already in progress")
	ErrNotConfirmed = errors.New("ledger: deletion not confirmed")
	ErrUnknownField = errors.New("ledger: unknown field")
)

// ValidationErrors maps a form field to what is wrong with it.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RemoteError is a categorized failure reported by the persistence service.
// Kind is one of the transport-level sentinels above.
type RemoteError struct {
	Kind   error
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v (status %d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("%v (status %d): %s", e.Kind, e.Status, e.Detail)
}

func (e *RemoteError) Unwrap() error { return e.Kind }

// Message is the operator-facing text for err.
func Message(err error) string {
	var ve ValidationErrors
	var re *RemoteError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return "Please fix the following fields: " + strings.TrimPrefix(ve.Error(), "validation failed: ")
	case errors.Is(err, ErrConflict):
		return "This record conflicts with an existing one (duplicate CPF or e-mail)."
	case errors.Is(err, ErrUnauthorized):
		return "Your session is invalid or has expired. Please log in again."
	case errors.Is(err, ErrNotFound):
		return "The record no longer exists. Refresh the list."
	case errors.Is(err, ErrRejected):
		if errors.As(err, &re) && re.Detail != "" {
			return "The server rejected the data: " + re.Detail
		}
		return "The server rejected the data."
	case errors.Is(err, ErrTransport):
		return "Could not reach the ledger service. Nothing was changed; try again."
	case errors.Is(err, ErrSubmitting):
		return "A submission is already in progress."
	case errors.Is(err, ErrNotConfirmed):
		return "Deletion cancelled."
	case errors.Is(err, ErrUnknownField):
		return "Unknown form field. Type help to list them."
	}
	return "Unexpected error: " + err.Error()
}
