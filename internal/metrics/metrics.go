package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ledger service counters. A nil *Metrics is a no-op.
type Metrics struct {
	RecordsWritten *prometheus.CounterVec
	Logins         *prometheus.CounterVec
	ResetRequests  prometheus.Counter
}

// New registers the counters on reg (prometheus.DefaultRegisterer when nil).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		RecordsWritten: f.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_ledger_records_written_total",
			Help: "Loan records written, by operation",
		}, []string{"op"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_ledger_logins_total",
			Help: "Operator login attempts, by outcome",
		}, []string{"outcome"}),
		ResetRequests: f.NewCounter(prometheus.CounterOpts{
			Name: "loan_ledger_password_reset_requests_total",
			Help: "Password reset requests accepted",
		}),
	}
}

func (m *Metrics) IncrementRecord(op string) {
	if m == nil {
		return
	}
	m.RecordsWritten.WithLabelValues(op).Inc()
}

func (m *Metrics) IncrementLogin(ok bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementResetRequests() {
	if m == nil {
		return
	}
	m.ResetRequests.Inc()
}
