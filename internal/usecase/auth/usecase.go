package auth

import (
	"context"
	"errors"
	"strings"

	"loan-ledger/internal/domain/user"
	"loan-ledger/internal/metrics"
	"loan-ledger/pkg/id"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Usecase struct {
	users   user.Repository
	tokens  *Tokens
	resets  ResetTokens
	mailer  Mailer
	metrics *metrics.Metrics
}

func NewUsecase(users user.Repository, tokens *Tokens, resets ResetTokens, mailer Mailer, m *metrics.Metrics) *Usecase {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &Usecase{users: users, tokens: tokens, resets: resets, mailer: mailer, metrics: m}
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	if len(in.Password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	nu := &user.User{
		UserID:       id.NewID32(),
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := u.users.Create(ctx, nu); err != nil {
		return nil, err
	}
	dto := toDTO(nu)
	return &dto, nil
}

// Login answers ErrInvalidCredentials for an unknown e-mail and a wrong password alike.
func (u *Usecase) Login(ctx context.Context, email, password string) (*LoginDTO, error) {
	found, err := u.users.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		u.metrics.IncrementLogin(false)
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)) != nil {
		u.metrics.IncrementLogin(false)
		return nil, user.ErrInvalidCredentials
	}
	tok, err := u.tokens.Issue(found.UserID, found.Email)
	if err != nil {
		return nil, err
	}
	u.metrics.IncrementLogin(true)
	return &LoginDTO{Token: tok, User: toDTO(found)}, nil
}

// ForgotPassword never reveals whether the e-mail exists.
func (u *Usecase) ForgotPassword(ctx context.Context, email string) error {
	found, err := u.users.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	token := uuid.NewString()
	if err := u.resets.Put(ctx, token, found.UserID); err != nil {
		return err
	}
	u.metrics.IncrementResetRequests()
	return u.mailer.SendPasswordReset(ctx, found.Email, token)
}

func (u *Usecase) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < minPasswordLen {
		return ErrWeakPassword
	}
	userID, err := u.resets.Take(ctx, token)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := u.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrInvalidResetToken
		}
		return err
	}
	return nil
}

// Authenticate validates a bearer token.
func (u *Usecase) Authenticate(raw string) (*Claims, error) { return u.tokens.Validate(raw) }

// OperatorID validates a bearer token and returns the operator it was issued to.
func (u *Usecase) OperatorID(raw string) (string, error) {
	c, err := u.Authenticate(raw)
	if err != nil {
		return "", err
	}
	return c.UserID, nil
}
