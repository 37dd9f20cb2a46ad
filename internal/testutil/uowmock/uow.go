package uowmock

import (
	"context"
	"errors"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn       func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinRecordTxFn func(ctx context.Context, clientID string, fn func(r uow.Repos, rec *loan.Record) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) WithWithinRecordTx(fn func(context.Context, string, func(uow.Repos, *loan.Record) error) error) *UoW {
	m.WithinRecordTxFn = fn
	return m
}

// Passthrough runs callbacks directly against repo, loading the record with
// GetByClientIDForUpdate the way the gorm implementation does.
func Passthrough(repo loan.Repository) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(uow.Repos{Records: repo})
		},
		WithinRecordTxFn: func(ctx context.Context, clientID string, fn func(uow.Repos, *loan.Record) error) error {
			rec, err := repo.GetByClientIDForUpdate(ctx, clientID)
			if err != nil {
				return err
			}
			return fn(uow.Repos{Records: repo}, rec)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinRecordTx(ctx context.Context, clientID string, fn func(r uow.Repos, rec *loan.Record) error) error {
	if m.WithinRecordTxFn != nil {
		return m.WithinRecordTxFn(ctx, clientID, fn)
	}
	return errUnimplemented
}
