package uowmock

import (
	"context"
	"errors"
	"testing"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/uow"
	"loan-ledger/internal/testutil/loanmock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	records := &loanmock.Repo{}
	repos := uow.Repos{Records: records}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Records != records {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := &UoW{} // no funcs set
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinRecordTx(ctx, "C-X", func(uow.Repos, *loan.Record) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinRecordTx default: want errUnimplemented, got %v", err)
	}
}

func TestUoW_WithinRecordTx_PropagatesError(t *testing.T) {
	sentinel := errors.New("stop")
	m := New().WithWithinRecordTx(func(context.Context, string, func(uow.Repos, *loan.Record) error) error {
		return sentinel
	})
	if err := m.WithinRecordTx(context.Background(), "C-X", func(uow.Repos, *loan.Record) error { return nil }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinRecordTx: want %v, got %v", sentinel, err)
	}
}

func TestPassthrough_LoadsRecordFirst(t *testing.T) {
	lock := &loan.Record{ID: 7, ClientID: "C-7"}
	repo := &loanmock.Repo{
		GetByClientIDForUpdateFn: func(_ context.Context, clientID string) (*loan.Record, error) {
			if clientID != "C-7" {
				return nil, loan.ErrNotFound
			}
			return lock, nil
		},
	}
	m := Passthrough(repo)

	err := m.WithinRecordTx(context.Background(), "C-7", func(r uow.Repos, rec *loan.Record) error {
		if rec != lock || r.Records != repo {
			t.Fatalf("record or repos not forwarded: %+v", rec)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	called := false
	err = m.WithinRecordTx(context.Background(), "missing", func(uow.Repos, *loan.Record) error {
		called = true
		return nil
	})
	if !errors.Is(err, loan.ErrNotFound) || called {
		t.Fatalf("want ErrNotFound without calling fn, got %v (called=%v)", err, called)
	}
}

func TestUoW_FluentSetters_And_Reset(t *testing.T) {
	m := New()
	if m.WithinTxFn != nil || m.WithinRecordTxFn != nil {
		t.Fatalf("New should start with nil funcs")
	}

	m.WithWithinTx(func(context.Context, func(uow.Repos) error) error { return nil }).
		WithWithinRecordTx(func(context.Context, string, func(uow.Repos, *loan.Record) error) error { return nil })
	if m.WithinTxFn == nil || m.WithinRecordTxFn == nil {
		t.Fatalf("fluent setters didn't assign funcs")
	}

	m.Reset()
	if m.WithinTxFn != nil || m.WithinRecordTxFn != nil {
		t.Fatalf("Reset should clear function fields")
	}
}
