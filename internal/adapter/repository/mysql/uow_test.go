package mysql

import (
	"context"
	"errors"
	"testing"

	loanDomain "loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/uow"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	repo := NewRecordRepository(db)

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Records.Create(ctx, makeRecord("LN-COMMIT", "12345678900", "Ana"))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}
	if _, err := repo.GetByClientID(ctx, "LN-COMMIT"); err != nil {
		t.Fatalf("record not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	repo := NewRecordRepository(db)
	sentinel := errors.New("boom")

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Records.Create(ctx, makeRecord("LN-ROLL", "12345678900", "Ana")); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	if _, err := repo.GetByClientID(ctx, "LN-ROLL"); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("expected record absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinRecordTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	repo := NewRecordRepository(db)
	if err := repo.Create(ctx, makeRecord("LN-TARGET", "12345678900", "Ana")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := guow.WithinRecordTx(ctx, "LN-TARGET", func(r uow.Repos, rec *loanDomain.Record) error {
		if rec == nil || rec.ClientID != "LN-TARGET" || rec.LateInstallments != 1 {
			t.Fatalf("unexpected record passed to fn: %+v", rec)
		}
		rec.LateInstallments = 0
		return r.Records.Save(ctx, rec)
	})
	if err != nil {
		t.Fatalf("WithinRecordTx commit err: %v", err)
	}

	got, err := repo.GetByClientID(ctx, "LN-TARGET")
	if err != nil {
		t.Fatalf("GetByClientID post-commit: %v", err)
	}
	if got.LateInstallments != 0 {
		t.Fatalf("record not updated, late=%d", got.LateInstallments)
	}
}

func TestGormUoW_WithinRecordTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	repo := NewRecordRepository(db)
	if err := repo.Create(ctx, makeRecord("LN-RB", "12345678900", "Ana")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sentinel := errors.New("stop")
	_ = guow.WithinRecordTx(ctx, "LN-RB", func(r uow.Repos, rec *loanDomain.Record) error {
		rec.Name = "Changed"
		if err := r.Records.Save(ctx, rec); err != nil {
			return err
		}
		return sentinel
	})

	got, err := repo.GetByClientID(ctx, "LN-RB")
	if err != nil {
		t.Fatalf("post-rollback GetByClientID: %v", err)
	}
	if got.Name != "Ana" {
		t.Fatalf("expected name unchanged after rollback, got %s", got.Name)
	}
}

func TestGormUoW_WithinRecordTx_NotFound(t *testing.T) {
	guow := NewGormUoW(openTestDB(t))

	err := guow.WithinRecordTx(context.Background(), "LN-NOPE", func(r uow.Repos, rec *loanDomain.Record) error {
		t.Fatalf("callback should not be called when record missing")
		return nil
	})
	if !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
