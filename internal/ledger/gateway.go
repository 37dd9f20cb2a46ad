package ledger

import (
	"context"

	"loan-ledger/internal/domain/loan"
)

// Gateway is the CRUD boundary of the persistence service. Failures wrap
// ErrTransport, ErrConflict, ErrUnauthorized, ErrNotFound or ErrRejected.
type Gateway interface {
	List(ctx context.Context) ([]loan.Record, error)
	Create(ctx context.Context, r loan.Record) (loan.Record, error)
	Update(ctx context.Context, id string, r loan.Record) (loan.Record, error)
	Delete(ctx context.Context, id string) error
}

// AuthGateway covers the account endpoints next to the CRUD boundary.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (string, Operator, error)
	Register(ctx context.Context, name, email, password string) (Operator, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}
