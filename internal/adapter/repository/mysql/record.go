package mysql

import (
	"context"
	"errors"

	loanDomain "loan-ledger/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecordRepository struct{ db *gorm.DB }

func NewRecordRepository(db *gorm.DB) *RecordRepository { return &RecordRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *RecordRepository) Tx(ctx context.Context, fn func(repo loanDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RecordRepository{db: tx})
	})
}

func (r *RecordRepository) Create(ctx context.Context, rec *loanDomain.Record) error {
	return translate(r.db.WithContext(ctx).Create(rec).Error)
}

func (r *RecordRepository) Save(ctx context.Context, rec *loanDomain.Record) error {
	return translate(r.db.WithContext(ctx).Save(rec).Error)
}

// List returns every record in insertion order.
func (r *RecordRepository) List(ctx context.Context) ([]loanDomain.Record, error) {
	out := make([]loanDomain.Record, 0)
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *RecordRepository) GetByClientID(ctx context.Context, clientID string) (*loanDomain.Record, error) {
	var out loanDomain.Record
	res := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	return &out, nil
}

func (r *RecordRepository) GetByClientIDForUpdate(ctx context.Context, clientID string) (*loanDomain.Record, error) {
	var out loanDomain.Record
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("client_id = ?", clientID).
		First(&out)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	return &out, nil
}

func (r *RecordRepository) DeleteByClientID(ctx context.Context, clientID string) error {
	res := r.db.WithContext(ctx).Where("client_id = ?", clientID).Delete(&loanDomain.Record{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrNotFound
	}
	return nil
}

// translate maps driver-level errors (TranslateError must be on) to domain sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return loanDomain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return loanDomain.ErrDuplicateCPF
	}
	return err
}
