package mysql

import (
	"context"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return NewRecordRepository(u.db).Tx(ctx, func(records loan.Repository) error {
		return fn(uow.Repos{Records: records})
	})
}

func (u *GormUoW) WithinRecordTx(ctx context.Context, clientID string, fn func(r uow.Repos, rec *loan.Record) error) error {
	return u.WithinTx(ctx, func(r uow.Repos) error {
		// lock the row up-front so a concurrent update or delete cannot interleave
		rec, err := r.Records.GetByClientIDForUpdate(ctx, clientID)
		if err != nil {
			return err
		}
		return fn(r, rec)
	})
}
