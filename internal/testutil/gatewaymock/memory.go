package gatewaymock

import (
	"context"
	"fmt"
	"sync"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/ledger"
)

// Memory is an in-memory ledger.Gateway that keeps insertion order and
// rejects duplicate CPFs with ledger.ErrConflict.
type Memory struct {
	mu      sync.Mutex
	seq     int
	records []loan.Record
}

var _ ledger.Gateway = (*Memory)(nil)

func (m *Memory) List(context.Context) ([]loan.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]loan.Record(nil), m.records...), nil
}

func (m *Memory) Create(_ context.Context, r loan.Record) (loan.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.records {
		if x.CPF == r.CPF {
			return loan.Record{}, &ledger.RemoteError{Kind: ledger.ErrConflict, Status: 409}
		}
	}
	m.seq++
	r.ClientID = fmt.Sprintf("c%d", m.seq)
	m.records = append(m.records, r)
	return r, nil
}

func (m *Memory) Update(_ context.Context, id string, r loan.Record) (loan.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ClientID == id {
			r.ClientID = id
			m.records[i] = r
			return r, nil
		}
	}
	return loan.Record{}, &ledger.RemoteError{Kind: ledger.ErrNotFound, Status: 404}
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ClientID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return &ledger.RemoteError{Kind: ledger.ErrNotFound, Status: 404}
}
