package ledger

import (
	"context"
	"fmt"
	"sync"

	"loan-ledger/internal/domain/loan"
)

// ClientsView owns the record list of one screen: the last fetched
// collection, the active criteria and the filtered rows derived from them.
//
// Refresh calls may overlap. Each one takes a generation number and its
// response is applied only if no newer refresh was issued in the meantime.
type ClientsView struct {
	gw Gateway

	mu         sync.Mutex
	records    []loan.Record
	criteria   loan.Criteria
	filter     Filter
	visible    []loan.Record
	generation uint64
	submitting bool
}

func NewClientsView(gw Gateway) *ClientsView {
	return &ClientsView{gw: gw, criteria: loan.NoFilter()}
}

// Refresh refetches the collection. A response overtaken by a newer refresh
// is dropped and Refresh returns nil.
func (v *ClientsView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	v.mu.Unlock()

	records, err := v.gw.List(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		return nil
	}
	if err != nil {
		return err
	}
	v.records = records
	v.visible = v.filter.Apply(v.records, v.criteria)
	return nil
}

// SetCriteria changes the filter and recomputes the visible rows.
func (v *ClientsView) SetCriteria(c loan.Criteria) []loan.Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.criteria = c
	v.visible = v.filter.Apply(v.records, c)
	return v.visible
}

func (v *ClientsView) Criteria() loan.Criteria {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria
}

// Visible returns the filtered rows in fetch order.
func (v *ClientsView) Visible() []loan.Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

// Records returns the unfiltered collection.
func (v *ClientsView) Records() []loan.Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.records
}

func (v *ClientsView) Find(id string) (loan.Record, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, r := range v.records {
		if r.ClientID == id {
			return r, true
		}
	}
	return loan.Record{}, false
}

// Create submits f as a new record and refetches the list.
func (v *ClientsView) Create(ctx context.Context, f *Form) (loan.Record, error) {
	return v.submit(ctx, f, func(r loan.Record) (loan.Record, error) {
		return v.gw.Create(ctx, r)
	})
}

// Update replaces record id wholesale with f and refetches the list.
func (v *ClientsView) Update(ctx context.Context, id string, f *Form) (loan.Record, error) {
	return v.submit(ctx, f, func(r loan.Record) (loan.Record, error) {
		return v.gw.Update(ctx, id, r)
	})
}

// submit validates before anything goes out. A failed refetch after a
// successful write is returned together with the saved record.
func (v *ClientsView) submit(ctx context.Context, f *Form, send func(loan.Record) (loan.Record, error)) (loan.Record, error) {
	payload, err := f.Record()
	if err != nil {
		return loan.Record{}, err
	}
	if err := v.begin(); err != nil {
		return loan.Record{}, err
	}
	saved, err := send(payload)
	v.end()
	if err != nil {
		return loan.Record{}, err
	}
	if err := v.Refresh(ctx); err != nil {
		return saved, fmt.Errorf("saved, but refreshing the list failed: %w", err)
	}
	return saved, nil
}

// Delete removes record id. Nothing is sent unless confirmed is true.
func (v *ClientsView) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := v.begin(); err != nil {
		return err
	}
	err := v.gw.Delete(ctx, id)
	v.end()
	if err != nil {
		return err
	}
	if err := v.Refresh(ctx); err != nil {
		return fmt.Errorf("deleted, but refreshing the list failed: %w", err)
	}
	return nil
}

// Submitting reports whether a write is outstanding.
func (v *ClientsView) Submitting() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.submitting
}

func (v *ClientsView) begin() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.submitting {
		return ErrSubmitting
	}
	v.submitting = true
	return nil
}

func (v *ClientsView) end() {
	v.mu.Lock()
	v.submitting = false
	v.mu.Unlock()
}
