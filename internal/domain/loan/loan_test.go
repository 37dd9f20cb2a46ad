package loan

import (
	"encoding/json"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleRecords() []Record {
	return []Record{
		{ClientID: "a", Name: "Daiane Souza", LateInstallments: 2, NextPaymentDate: dayPtr(2025, 3, 10)},
		{ClientID: "b", Name: "Carlos", LateInstallments: 0, NextPaymentDate: dayPtr(2025, 4, 10)},
		{ClientID: "c", Name: "daniela", LateInstallments: 0},
		{ClientID: "d", Name: "Marcos Dantas", LateInstallments: 1, NextPaymentDate: dayPtr(2025, 3, 15)},
	}
}

func ids(rs []Record) string {
	var b strings.Builder
	for _, r := range rs {
		b.WriteString(r.ClientID)
	}
	return b.String()
}

func TestStatusOf(t *testing.T) {
	if got := StatusOf(0); got != StatusOnTime {
		t.Fatalf("StatusOf(0) = %s", got)
	}
	for _, n := range []int{1, 2, 37, 1 << 20} {
		if got := StatusOf(n); got != StatusLate {
			t.Fatalf("StatusOf(%d) = %s, want late", n, got)
		}
	}
	r := Record{LateInstallments: 3}
	if r.Status() != StatusLate || r.Status().Label() != "Late" {
		t.Fatalf("record status = %s (%s)", r.Status(), r.Status().Label())
	}
	if StatusOnTime.Label() != "On time" {
		t.Fatalf("label = %q", StatusOnTime.Label())
	}
}

func TestMonthlyInterest_Examples(t *testing.T) {
	cases := []struct{ value, rate, want string }{
		{"1000.00", "5", "50"},
		{"0", "7", "0"},
		{"1234.56", "0", "0"},
		{"1234.56", "3.5", "43.21"},
		{"999.99", "1.25", "12.5"},
		{"0.10", "5", "0.01"},
	}
	for _, c := range cases {
		got := MonthlyInterest(decimal.RequireFromString(c.value), decimal.RequireFromString(c.rate))
		if !got.Equal(decimal.RequireFromString(c.want)) {
			t.Fatalf("MonthlyInterest(%s, %s) = %s, want %s", c.value, c.rate, got, c.want)
		}
	}
}

func TestMonthlyInterest_MatchesRoundedProduct(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		p := decimal.New(rng.Int63n(10_000_000), -2) // up to 100k with cents
		r := decimal.New(rng.Int63n(10_000), -2)     // up to 100%
		want := p.Mul(r).Div(decimal.NewFromInt(100)).Round(2)
		got := MonthlyInterest(p, r)
		if !got.Equal(want) {
			t.Fatalf("MonthlyInterest(%s, %s) = %s, want %s", p, r, got, want)
		}
		if got.Exponent() < -2 {
			t.Fatalf("more than two decimals: %s", got)
		}
	}
}

func TestParseFilterStatus(t *testing.T) {
	for in, want := range map[string]FilterStatus{"": FilterAll, "all": FilterAll, " Debtor ": FilterDebtor, "PAID": FilterPaid} {
		got, err := ParseFilterStatus(in)
		if err != nil || got != want {
			t.Fatalf("ParseFilterStatus(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFilterStatus("late"); err != ErrInvalidFilterStatus {
		t.Fatalf("want ErrInvalidFilterStatus, got %v", err)
	}
}

func TestFilterRecords_IdentityLaw(t *testing.T) {
	rs := sampleRecords()
	if got := FilterRecords(rs, NoFilter()); !reflect.DeepEqual(got, rs) {
		t.Fatalf("identity filter changed the collection: %s", ids(got))
	}
	if got := FilterRecords(rs, Criteria{}); !reflect.DeepEqual(got, rs) {
		t.Fatalf("zero criteria changed the collection: %s", ids(got))
	}
	if !NoFilter().IsZero() || (Criteria{Name: "x"}).IsZero() {
		t.Fatal("IsZero mismatch")
	}
}

func TestFilterRecords_Predicates(t *testing.T) {
	rs := sampleRecords()
	cases := []struct {
		name string
		c    Criteria
		want string
	}{
		{"name case-insensitive", Criteria{Name: "DAN", Status: FilterAll}, "cd"},
		{"debtor", Criteria{Status: FilterDebtor}, "ad"},
		{"paid", Criteria{Status: FilterPaid}, "bc"},
		{"date", Criteria{Status: FilterAll, Date: "2025-03"}, "ad"},
		{"date exact day", Criteria{Date: "2025-04-10"}, "b"},
		{"date never matches nil", Criteria{Name: "daniela", Date: "2025"}, ""},
		{"conjunction", Criteria{Name: "da", Status: FilterDebtor, Date: "2025-03-15"}, "d"},
		{"unknown status behaves as paid", Criteria{Status: "whatever"}, "bc"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ids(FilterRecords(rs, c.c)); got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestFilterRecords_Idempotent(t *testing.T) {
	rs := sampleRecords()
	for _, c := range []Criteria{{Name: "a"}, {Status: FilterDebtor}, {Date: "2025-03"}, {Name: "mar", Status: FilterDebtor}} {
		once := FilterRecords(rs, c)
		twice := FilterRecords(once, c)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("not idempotent for %+v: %s vs %s", c, ids(once), ids(twice))
		}
	}
}

func TestRecordJSON_WireShape(t *testing.T) {
	r := Record{
		ID:           9,
		ClientID:     "abc",
		Name:         "Ana",
		Value:        decimal.RequireFromString("1000.00"),
		LoanInterest: decimal.NewFromInt(5),
		MonthlyPaid:  decimal.RequireFromString("50.00"),
		LoanDate:     time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["value"].(float64); !ok {
		t.Fatalf("value must be a JSON number: %s", b)
	}
	if m["id"] != "abc" || m["loanDate"] != "2025-01-02T00:00:00Z" || m["nextPaymentDate"] != nil {
		t.Fatalf("unexpected wire shape: %s", b)
	}
	if _, ok := m["status"]; ok {
		t.Fatalf("status must not be serialized: %s", b)
	}
}
