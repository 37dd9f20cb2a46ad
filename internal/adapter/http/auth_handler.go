package http

import (
	"errors"
	"log"
	"net/http"

	"loan-ledger/internal/domain/user"
	"loan-ledger/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct{ uc *auth.Usecase }

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerReq struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type forgotReq struct {
	Email string `json:"email" validate:"required,email"`
}

type resetReq struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if !bindValid(c, &req) {
		return nil
	}
	out, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if !bindValid(c, &req) {
		return nil
	}
	out, err := h.uc.Register(c.Request().Context(), auth.RegisterInput(req))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotReq
	if !bindValid(c, &req) {
		return nil
	}
	if err := h.uc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetReq
	if !bindValid(c, &req) {
		return nil
	}
	if err := h.uc.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid e-mail or password"})
	case errors.Is(err, user.ErrEmailTaken):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "e-mail already in use"})
	case errors.Is(err, user.ErrInvalidResetToken):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid or expired reset token"})
	case errors.Is(err, auth.ErrWeakPassword):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	}
	log.Printf("auth: %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// bindValid binds and validates dst, writing the 400/422 response itself.
func bindValid(c echo.Context, dst any) bool {
	if err := c.Bind(dst); err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		return false
	}
	if err := c.Validate(dst); err != nil {
		_ = c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
		return false
	}
	return true
}
