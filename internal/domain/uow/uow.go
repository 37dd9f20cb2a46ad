package uow

import (
	"context"

	"loan-ledger/internal/domain/loan"
)

type Repos struct {
	Records loan.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// locks the record row first, then passes it in
	WithinRecordTx(ctx context.Context, clientID string, fn func(r Repos, rec *loan.Record) error) error
}
