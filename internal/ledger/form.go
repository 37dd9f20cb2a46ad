package ledger

import (
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/pkg/mask"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var check = validator.New()

const (
	FieldName             = "name"
	FieldEmail            = "email"
	FieldCPF              = "cpf"
	FieldPhone            = "phone"
	FieldAddress          = "address"
	FieldValue            = "value"
	FieldLoanInterest     = "loanInterest"
	FieldMonthlyPaid      = "monthlyPaid"
	FieldInstallments     = "installments"
	FieldInstallmentsPaid = "installmentsPaid"
	FieldLateInstallments = "lateInstallments"
	FieldValuePaid        = "valuePaid"
	FieldLoanDate         = "loanDate"
	FieldNextPaymentDate  = "nextPaymentDate"
	FieldLastPaymentDate  = "lastPaymentDate"
	FieldMonthlyFeePaid   = "monthlyFeePaid"
	FieldTotalDebtPaid    = "totalDebtPaid"
	FieldObservations     = "observations"
)

// Fields lists every form field in display order.
var Fields = []string{
	FieldName, FieldEmail, FieldCPF, FieldPhone, FieldAddress,
	FieldValue, FieldLoanInterest, FieldMonthlyPaid,
	FieldInstallments, FieldInstallmentsPaid, FieldLateInstallments, FieldValuePaid,
	FieldLoanDate, FieldNextPaymentDate, FieldLastPaymentDate,
	FieldMonthlyFeePaid, FieldTotalDebtPaid, FieldObservations,
}

// dateLayouts are the date texts a form accepts, the input-date form first.
var dateLayouts = []string{"2006-01-02", "02/01/2006", time.RFC3339}

// normalizers canonicalize a field after every edit.
var normalizers = map[string]func(string) string{
	FieldValue:        mask.Money,
	FieldValuePaid:    mask.Money,
	FieldMonthlyPaid:  mask.Money,
	FieldCPF:          mask.CPF,
	FieldPhone:        mask.Phone,
	FieldLoanInterest: rate,
}

func rate(raw string) string { return strings.ReplaceAll(strings.TrimSpace(raw), ",", ".") }

// Form holds the display text of one record being created or edited.
// Set runs the field's normalizer, writes the result back and then notifies
// the field's subscribers in registration order.
type Form struct {
	mu     sync.Mutex
	values map[string]string
	subs   map[string][]func(*Form)
	now    func() time.Time
}

// NewForm returns an empty form with the interest derivation subscribed to
// value and loanInterest.
func NewForm() *Form {
	f := &Form{
		values: make(map[string]string, len(Fields)),
		subs:   make(map[string][]func(*Form)),
		now:    time.Now,
	}
	f.Subscribe(FieldValue, deriveMonthlyPaid)
	f.Subscribe(FieldLoanInterest, deriveMonthlyPaid)
	return f
}

// FormFromRecord loads a stored record for editing. Values are written
// without notifying subscribers, so the stored monthlyPaid is shown as is.
func FormFromRecord(r loan.Record) *Form {
	f := NewForm()
	v := f.values
	v[FieldName] = r.Name
	v[FieldEmail] = r.Email
	v[FieldCPF] = mask.FormatCPF(r.CPF)
	v[FieldPhone] = mask.FormatPhone(r.Phone)
	v[FieldAddress] = r.Address
	v[FieldValue] = mask.FixedMoney(r.Value)
	v[FieldLoanInterest] = r.LoanInterest.String()
	v[FieldMonthlyPaid] = mask.FixedMoney(r.MonthlyPaid)
	v[FieldInstallments] = strconv.Itoa(r.Installments)
	v[FieldInstallmentsPaid] = strconv.Itoa(r.InstallmentsPaid)
	v[FieldLateInstallments] = strconv.Itoa(r.LateInstallments)
	v[FieldValuePaid] = mask.FixedMoney(r.ValuePaid)
	v[FieldLoanDate] = dateText(&r.LoanDate)
	v[FieldNextPaymentDate] = dateText(r.NextPaymentDate)
	v[FieldLastPaymentDate] = dateText(r.LastPaymentDate)
	v[FieldMonthlyFeePaid] = strconv.FormatBool(r.MonthlyFeePaid)
	v[FieldTotalDebtPaid] = strconv.FormatBool(r.TotalDebtPaid)
	v[FieldObservations] = r.Observations
	return f
}

func dateText(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayouts[0])
}

func known(field string) bool {
	for _, f := range Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Subscribe registers fn to run after every Set of field.
func (f *Form) Subscribe(field string, fn func(*Form)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs[field] = append(f.subs[field], fn)
}

// Set stores raw for field and returns the canonical text that was kept.
func (f *Form) Set(field, raw string) (string, error) {
	if !known(field) {
		return "", ErrUnknownField
	}
	if norm, ok := normalizers[field]; ok {
		raw = norm(raw)
	}
	f.mu.Lock()
	f.values[field] = raw
	subs := slices.Clone(f.subs[field])
	f.mu.Unlock()

	for _, fn := range subs {
		fn(f)
	}
	return raw, nil
}

// Get returns the current display text of field.
func (f *Form) Get(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Values returns a copy of every non-empty field.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// deriveMonthlyPaid overwrites monthlyPaid whenever value and loanInterest
// both hold numbers.
func deriveMonthlyPaid(f *Form) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, errV := decimal.NewFromString(f.values[FieldValue])
	r, errR := decimal.NewFromString(f.values[FieldLoanInterest])
	if errV != nil || errR != nil {
		return
	}
	f.values[FieldMonthlyPaid] = loan.MonthlyInterest(v, r).StringFixed(2)
}

// Validate checks every field locally. A non-nil result blocks submission.
func (f *Form) Validate() ValidationErrors {
	v := f.Values()
	errs := ValidationErrors{}

	if strings.TrimSpace(v[FieldName]) == "" {
		errs[FieldName] = "is required"
	}
	if e := v[FieldEmail]; e != "" {
		if err := check.Var(e, "email"); err != nil {
			errs[FieldEmail] = "must be a valid e-mail"
		}
	}
	if n := len(mask.Digits(v[FieldCPF])); n != 11 {
		errs[FieldCPF] = "must have 11 digits"
	}
	if p := v[FieldPhone]; p != "" {
		if n := len(mask.Digits(p)); n != 10 && n != 11 {
			errs[FieldPhone] = "must have 10 or 11 digits"
		}
	}

	if v[FieldValue] == "" {
		errs[FieldValue] = "is required"
	}
	for _, field := range []string{FieldValue, FieldLoanInterest, FieldMonthlyPaid, FieldValuePaid} {
		if s := v[field]; s != "" {
			if d, err := decimal.NewFromString(s); err != nil || d.IsNegative() {
				errs[field] = "must be a number greater than or equal to 0"
			}
		}
	}

	ints := map[string]int{}
	for _, field := range []string{FieldInstallments, FieldInstallmentsPaid, FieldLateInstallments} {
		n, err := atoi(v[field])
		if err != nil || n < 0 {
			errs[field] = "must be a whole number greater than or equal to 0"
			continue
		}
		ints[field] = n
	}
	total, okTotal := ints[FieldInstallments]
	paid, okPaid := ints[FieldInstallmentsPaid]
	if okTotal && okPaid {
		if paid > total {
			errs[FieldInstallmentsPaid] = "cannot exceed installments"
		} else if late, ok := ints[FieldLateInstallments]; ok && late > total-paid {
			errs[FieldLateInstallments] = "cannot exceed the installments still open"
		}
	}

	for _, field := range []string{FieldLoanDate, FieldNextPaymentDate, FieldLastPaymentDate} {
		if _, err := parseDate(v[field]); err != nil {
			errs[field] = "must be a date (YYYY-MM-DD)"
		}
	}
	for _, field := range []string{FieldMonthlyFeePaid, FieldTotalDebtPaid} {
		switch v[field] {
		case "", "true", "false":
		default:
			errs[field] = "must be true or false"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Record validates the form and builds the payload sent to the gateway:
// cpf and phone as digits, numbers as numbers (integers default to 0),
// loanDate defaulting to now and the other dates null when empty.
func (f *Form) Record() (loan.Record, error) {
	if errs := f.Validate(); errs != nil {
		return loan.Record{}, errs
	}
	v := f.Values()

	r := loan.Record{
		Name:             strings.TrimSpace(v[FieldName]),
		Email:            strings.TrimSpace(v[FieldEmail]),
		CPF:              mask.Digits(v[FieldCPF]),
		Phone:            mask.Digits(v[FieldPhone]),
		Address:          strings.TrimSpace(v[FieldAddress]),
		Value:            dec(v[FieldValue]),
		LoanInterest:     dec(v[FieldLoanInterest]),
		MonthlyPaid:      dec(v[FieldMonthlyPaid]),
		ValuePaid:        dec(v[FieldValuePaid]),
		MonthlyFeePaid:   v[FieldMonthlyFeePaid] == "true",
		TotalDebtPaid:    v[FieldTotalDebtPaid] == "true",
		Observations:     v[FieldObservations],
		Installments:     mustAtoi(v[FieldInstallments]),
		InstallmentsPaid: mustAtoi(v[FieldInstallmentsPaid]),
		LateInstallments: mustAtoi(v[FieldLateInstallments]),
	}
	if d, _ := parseDate(v[FieldLoanDate]); d != nil {
		r.LoanDate = *d
	} else {
		r.LoanDate = f.now().UTC()
	}
	r.NextPaymentDate, _ = parseDate(v[FieldNextPaymentDate])
	r.LastPaymentDate, _ = parseDate(v[FieldLastPaymentDate])
	return r, nil
}

// parseDate returns nil for empty text.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, err
}

func atoi(s string) (int, error) {
	if s = strings.TrimSpace(s); s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func mustAtoi(s string) int {
	n, _ := atoi(s)
	return n
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
