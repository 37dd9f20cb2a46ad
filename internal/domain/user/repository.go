package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUserID(ctx context.Context, userID string) (*User, error)
	UpdatePassword(ctx context.Context, userID, hash string) error
}
