package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loan-ledger/internal/domain/user"
	"loan-ledger/internal/testutil/usermock"
	"loan-ledger/internal/usecase/auth"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type memResets map[string]string

func (m memResets) Put(_ context.Context, token, userID string) error {
	m[token] = userID
	return nil
}

func (m memResets) Take(_ context.Context, token string) (string, error) {
	v, ok := m[token]
	if !ok {
		return "", user.ErrInvalidResetToken
	}
	delete(m, token)
	return v, nil
}

func newAuthHandler(t *testing.T, repo *usermock.Repo, resets memResets) *AuthHandler {
	t.Helper()
	return NewAuthHandler(auth.NewUsecase(repo, auth.NewTokens(testSecret, time.Hour), resets, nil, nil))
}

func postJSON(t *testing.T, e *echo.Echo, fn echo.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodPost, "/", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := fn(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func existingUser(t *testing.T) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return &user.User{UserID: "u1", Name: "Op", Email: "op@ledger.io", PasswordHash: string(hash)}
}

func TestLogin(t *testing.T) {
	e := newEchoWithValidator()
	u := existingUser(t)
	h := newAuthHandler(t, &usermock.Repo{
		GetByEmailFn: func(_ context.Context, email string) (*user.User, error) {
			if email == u.Email {
				return u, nil
			}
			return nil, user.ErrNotFound
		},
	}, nil)

	rec := postJSON(t, e, h.Login, map[string]string{"email": "op@ledger.io", "password": "s3cret-pass"})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var out auth.LoginDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || out.Token == "" || out.User.ID != "u1" {
		t.Fatalf("unexpected body %s (%v)", rec.Body.String(), err)
	}

	rec = postJSON(t, e, h.Login, map[string]string{"email": "op@ledger.io", "password": "wrong"})
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("wrong password => %d, want 401", rec.Code)
	}
	rec = postJSON(t, e, h.Login, map[string]string{"email": "not-an-email"})
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("invalid body => %d, want 422", rec.Code)
	}
}

func TestRegister(t *testing.T) {
	e := newEchoWithValidator()
	h := newAuthHandler(t, &usermock.Repo{
		CreateFn: func(_ context.Context, u *user.User) error {
			if u.Email == "taken@ledger.io" {
				return user.ErrEmailTaken
			}
			return nil
		},
	}, nil)

	rec := postJSON(t, e, h.Register, map[string]string{"name": "Op", "email": "new@ledger.io", "password": "s3cret-pass"})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	rec = postJSON(t, e, h.Register, map[string]string{"name": "Op", "email": "taken@ledger.io", "password": "s3cret-pass"})
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("duplicate => %d, want 409", rec.Code)
	}
	rec = postJSON(t, e, h.Register, map[string]string{"name": "Op", "email": "x@ledger.io", "password": "short"})
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("short password => %d, want 422", rec.Code)
	}
}

func TestForgotAndReset(t *testing.T) {
	e := newEchoWithValidator()
	u := existingUser(t)
	updated := ""
	resets := memResets{}
	h := newAuthHandler(t, &usermock.Repo{
		GetByEmailFn: func(_ context.Context, email string) (*user.User, error) {
			if email == u.Email {
				return u, nil
			}
			return nil, user.ErrNotFound
		},
		UpdatePasswordFn: func(_ context.Context, userID, hash string) error {
			updated = userID
			return nil
		},
	}, resets)

	// unknown and known e-mails look the same
	for _, email := range []string{"ghost@ledger.io", "op@ledger.io"} {
		if rec := postJSON(t, e, h.ForgotPassword, map[string]string{"email": email}); rec.Code != stdhttp.StatusAccepted {
			t.Fatalf("forgot %s => %d, want 202", email, rec.Code)
		}
	}
	if len(resets) != 1 {
		t.Fatalf("expected exactly one reset token, got %d", len(resets))
	}
	var token string
	for k := range resets {
		token = k
	}

	rec := postJSON(t, e, h.ResetPassword, map[string]string{"token": token, "password": "new-password"})
	if rec.Code != stdhttp.StatusNoContent || updated != "u1" {
		t.Fatalf("reset => %d (updated %q), want 204", rec.Code, updated)
	}
	rec = postJSON(t, e, h.ResetPassword, map[string]string{"token": token, "password": "new-password"})
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("reused token => %d, want 400", rec.Code)
	}
}
