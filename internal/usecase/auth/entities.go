package auth

import (
	"context"
	"errors"
	"log"

	"loan-ledger/internal/domain/user"
)

var ErrWeakPassword = errors.New("password must have at least 8 characters")

const minPasswordLen = 8

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

func toDTO(u *user.User) UserDTO { return UserDTO{ID: u.UserID, Name: u.Name, Email: u.Email} }

// ResetTokens stores one-shot reset tokens.
type ResetTokens interface {
	Put(ctx context.Context, token, userID string) error
	// Take fails with user.ErrInvalidResetToken for unknown or used tokens.
	Take(ctx context.Context, token string) (string, error)
}

// Mailer delivers a reset token to the operator.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, token string) error
}

// LogMailer writes reset tokens to the process log. There is no outbound mail.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(_ context.Context, to, token string) error {
	log.Printf("auth: password reset for %s token=%s", to, token)
	return nil
}
