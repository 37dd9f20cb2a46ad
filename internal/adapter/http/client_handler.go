package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	domain "loan-ledger/internal/domain/loan"
	"loan-ledger/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ClientHandler struct{ uc *loan.Usecase }

func NewClientHandler(uc *loan.Usecase) *ClientHandler { return &ClientHandler{uc: uc} }

// recordReq is the body of POST /clients and PUT /clients/:id. An "id" in the
// body is ignored.
type recordReq struct {
	Name             string          `json:"name"             validate:"required"`
	Email            string          `json:"email"            validate:"omitempty,email"`
	CPF              string          `json:"cpf"              validate:"required,cpf"`
	Phone            string          `json:"phone"            validate:"omitempty,phone"`
	Address          string          `json:"address"`
	Value            decimal.Decimal `json:"value"            validate:"gte=0,dec2"`
	LoanInterest     decimal.Decimal `json:"loanInterest"     validate:"gte=0"`
	MonthlyPaid      decimal.Decimal `json:"monthlyPaid"      validate:"gte=0,dec2"`
	Installments     int             `json:"installments"     validate:"gte=0"`
	InstallmentsPaid int             `json:"installmentsPaid" validate:"gte=0"`
	LateInstallments int             `json:"lateInstallments" validate:"gte=0"`
	ValuePaid        decimal.Decimal `json:"valuePaid"        validate:"gte=0,dec2"`
	LoanDate         time.Time       `json:"loanDate"`
	NextPaymentDate  *time.Time      `json:"nextPaymentDate"`
	LastPaymentDate  *time.Time      `json:"lastPaymentDate"`
	MonthlyFeePaid   bool            `json:"monthlyFeePaid"`
	TotalDebtPaid    bool            `json:"totalDebtPaid"`
	Observations     string          `json:"observations"`
}

func (r recordReq) input() loan.RecordInput { return loan.RecordInput(r) }

type idParam struct {
	ID string `json:"id" validate:"required,hex32"`
}

// clientID reads the :id path param and answers 400 itself when it is not
// a record id.
func clientID(c echo.Context) (string, bool) {
	p := idParam{ID: c.Param("id")}
	if err := c.Validate(&p); err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid client id", Details: ToFieldErrors(err)})
		return "", false
	}
	return p.ID, true
}

func (h *ClientHandler) List(c echo.Context) error {
	var q domain.Criteria
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	status, err := domain.ParseFilterStatus(string(q.Status))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	q.Status = status

	out, err := h.uc.List(c.Request().Context(), q)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ClientHandler) Get(c echo.Context) error {
	id, ok := clientID(c)
	if !ok {
		return nil
	}
	rec, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *ClientHandler) Create(c echo.Context) error {
	var req recordReq
	if !bindValid(c, &req) {
		return nil
	}
	rec, err := h.uc.Create(c.Request().Context(), req.input())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *ClientHandler) Update(c echo.Context) error {
	id, ok := clientID(c)
	if !ok {
		return nil
	}
	var req recordReq
	if !bindValid(c, &req) {
		return nil
	}
	rec, err := h.uc.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *ClientHandler) Delete(c echo.Context) error {
	id, ok := clientID(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Map domain errors → HTTP codes
func (h *ClientHandler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "client not found"})
	case errors.Is(err, domain.ErrDuplicateCPF):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "cpf already registered"})
	case errors.Is(err, loan.ErrInvalidInput):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	}
	log.Printf("clients: %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
