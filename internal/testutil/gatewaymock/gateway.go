package gatewaymock

import (
	"context"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/ledger"
)

var (
	_ ledger.Gateway     = (*Gateway)(nil)
	_ ledger.AuthGateway = (*Gateway)(nil)
)

// Gateway is a function-backed mock of ledger.Gateway and ledger.AuthGateway.
// Unset functions fail with ledger.ErrTransport.
type Gateway struct {
	ListFn   func(ctx context.Context) ([]loan.Record, error)
	CreateFn func(ctx context.Context, r loan.Record) (loan.Record, error)
	UpdateFn func(ctx context.Context, id string, r loan.Record) (loan.Record, error)
	DeleteFn func(ctx context.Context, id string) error

	LoginFn          func(ctx context.Context, email, password string) (string, ledger.Operator, error)
	RegisterFn       func(ctx context.Context, name, email, password string) (ledger.Operator, error)
	ForgotPasswordFn func(ctx context.Context, email string) error
	ResetPasswordFn  func(ctx context.Context, token, password string) error
}

func (m *Gateway) List(ctx context.Context) ([]loan.Record, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, ledger.ErrTransport
}

func (m *Gateway) Create(ctx context.Context, r loan.Record) (loan.Record, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return loan.Record{}, ledger.ErrTransport
}

func (m *Gateway) Update(ctx context.Context, id string, r loan.Record) (loan.Record, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, r)
	}
	return loan.Record{}, ledger.ErrTransport
}

func (m *Gateway) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return ledger.ErrTransport
}

func (m *Gateway) Login(ctx context.Context, email, password string) (string, ledger.Operator, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return "", ledger.Operator{}, ledger.ErrTransport
}

func (m *Gateway) Register(ctx context.Context, name, email, password string) (ledger.Operator, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, name, email, password)
	}
	return ledger.Operator{}, ledger.ErrTransport
}

func (m *Gateway) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFn != nil {
		return m.ForgotPasswordFn(ctx, email)
	}
	return ledger.ErrTransport
}

func (m *Gateway) ResetPassword(ctx context.Context, token, password string) error {
	if m.ResetPasswordFn != nil {
		return m.ResetPasswordFn(ctx, token, password)
	}
	return ledger.ErrTransport
}
