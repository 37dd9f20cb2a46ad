package loanmock

import (
	"context"

	domain "loan-ledger/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset mutators are no-ops; unset getters return context.Canceled.
type Repo struct {
	CreateFn                 func(ctx context.Context, r *domain.Record) error
	ListFn                   func(ctx context.Context) ([]domain.Record, error)
	GetByClientIDFn          func(ctx context.Context, clientID string) (*domain.Record, error)
	GetByClientIDForUpdateFn func(ctx context.Context, clientID string) (*domain.Record, error)
	SaveFn                   func(ctx context.Context, r *domain.Record) error
	DeleteByClientIDFn       func(ctx context.Context, clientID string) error
}

func (m *Repo) Create(ctx context.Context, r *domain.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Record, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByClientID(ctx context.Context, clientID string) (*domain.Record, error) {
	if m.GetByClientIDFn != nil {
		return m.GetByClientIDFn(ctx, clientID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByClientIDForUpdate(ctx context.Context, clientID string) (*domain.Record, error) {
	if m.GetByClientIDForUpdateFn != nil {
		return m.GetByClientIDForUpdateFn(ctx, clientID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, r *domain.Record) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) DeleteByClientID(ctx context.Context, clientID string) error {
	if m.DeleteByClientIDFn != nil {
		return m.DeleteByClientIDFn(ctx, clientID)
	}
	return nil
}
