package loan

import (
	"context"
	"time"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/uow"
	"loan-ledger/internal/metrics"
	"loan-ledger/pkg/id"
)

type Usecase struct {
	repo    loan.Repository
	uow     uow.UnitOfWork
	metrics *metrics.Metrics
}

// NewUsecase: m may be nil.
func NewUsecase(r loan.Repository, tx uow.UnitOfWork, m *metrics.Metrics) *Usecase {
	return &Usecase{repo: r, uow: tx, metrics: m}
}

// List returns every record in insertion order, narrowed by c when set.
func (u *Usecase) List(ctx context.Context, c loan.Criteria) ([]loan.Record, error) {
	rs, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if c.IsZero() {
		return rs, nil
	}
	return loan.FilterRecords(rs, c), nil
}

func (u *Usecase) Get(ctx context.Context, clientID string) (*loan.Record, error) {
	return u.repo.GetByClientID(ctx, clientID)
}

func (u *Usecase) Create(ctx context.Context, in RecordInput) (*loan.Record, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.LoanDate.IsZero() {
		in.LoanDate = time.Now().UTC()
	}

	r := &loan.Record{ClientID: id.NewID32()}
	in.apply(r)
	if err := u.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	u.metrics.IncrementRecord("create")
	return r, nil
}

// Update replaces the record wholesale under a row lock.
func (u *Usecase) Update(ctx context.Context, clientID string, in RecordInput) (*loan.Record, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var out *loan.Record
	err := u.uow.WithinRecordTx(ctx, clientID, func(r uow.Repos, rec *loan.Record) error {
		if in.LoanDate.IsZero() {
			in.LoanDate = rec.LoanDate
		}
		in.apply(rec)
		if err := r.Records.Save(ctx, rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.metrics.IncrementRecord("update")
	return out, nil
}

// Delete locks the row, then removes it.
func (u *Usecase) Delete(ctx context.Context, clientID string) error {
	err := u.uow.WithinRecordTx(ctx, clientID, func(r uow.Repos, rec *loan.Record) error {
		return r.Records.DeleteByClientID(ctx, rec.ClientID)
	})
	if err != nil {
		return err
	}
	u.metrics.IncrementRecord("delete")
	return nil
}
