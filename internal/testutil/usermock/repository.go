package usermock

import (
	"context"

	"loan-ledger/internal/domain/user"
)

var _ user.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies user.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, u *user.User) error
	GetByEmailFn     func(ctx context.Context, email string) (*user.User, error)
	GetByUserIDFn    func(ctx context.Context, userID string) (*user.User, error)
	UpdatePasswordFn func(ctx context.Context, userID, hash string) error
}

func (m *Repo) Create(ctx context.Context, u *user.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, user.ErrNotFound
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*user.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, user.ErrNotFound
}

func (m *Repo) UpdatePassword(ctx context.Context, userID, hash string) error {
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, userID, hash)
	}
	return nil
}
