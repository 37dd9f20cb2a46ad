package ledger_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/ledger"
	"loan-ledger/internal/testutil/gatewaymock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listReply struct {
	records []loan.Record
	err     error
}

func TestClientsView_StaleRefreshDiscarded(t *testing.T) {
	ctx := context.Background()
	replies := []chan listReply{make(chan listReply), make(chan listReply)}
	started := make(chan int, 2)
	var calls int32

	gw := &gatewaymock.Gateway{ListFn: func(context.Context) ([]loan.Record, error) {
		n := int(atomic.AddInt32(&calls, 1)) - 1
		started <- n
		r := <-replies[n]
		return r.records, r.err
	}}
	v := ledger.NewClientsView(gw)

	errOld := make(chan error, 1)
	go func() { errOld <- v.Refresh(ctx) }()
	require.Equal(t, 0, <-started)

	errNew := make(chan error, 1)
	go func() { errNew <- v.Refresh(ctx) }()
	require.Equal(t, 1, <-started)

	fresh := []loan.Record{{ClientID: "new", Name: "Fresh"}}
	replies[1] <- listReply{records: fresh}
	require.NoError(t, <-errNew)

	replies[0] <- listReply{records: []loan.Record{{ClientID: "old", Name: "Stale"}}}
	require.NoError(t, <-errOld)

	assert.Equal(t, fresh, v.Records())
	assert.Equal(t, fresh, v.Visible())
}

func TestClientsView_RefreshErrorKeepsState(t *testing.T) {
	ctx := context.Background()
	fail := false
	gw := &gatewaymock.Gateway{ListFn: func(context.Context) ([]loan.Record, error) {
		if fail {
			return nil, ledger.ErrTransport
		}
		return []loan.Record{{ClientID: "a"}}, nil
	}}
	v := ledger.NewClientsView(gw)
	require.NoError(t, v.Refresh(ctx))

	fail = true
	assert.ErrorIs(t, v.Refresh(ctx), ledger.ErrTransport)
	assert.Len(t, v.Records(), 1)
}

func TestClientsView_CriteriaSurviveRefresh(t *testing.T) {
	ctx := context.Background()
	mem := &gatewaymock.Memory{}
	v := ledger.NewClientsView(mem)

	for name, cpf := range map[string]string{"Ana": "11111111111", "Bruno": "22222222222", "Anabela": "33333333333"} {
		f := validForm(t)
		_, _ = f.Set(ledger.FieldName, name)
		_, _ = f.Set(ledger.FieldCPF, cpf)
		_, err := v.Create(ctx, f)
		require.NoError(t, err)
	}

	v.SetCriteria(loan.Criteria{Name: "ana", Status: loan.FilterAll})
	assert.Len(t, v.Visible(), 2)

	require.NoError(t, v.Refresh(ctx))
	assert.Equal(t, "ana", v.Criteria().Name)
	assert.Len(t, v.Visible(), 2)
	assert.Len(t, v.Records(), 3)
}

func TestClientsView_CreateSubmitsDerivedInterest(t *testing.T) {
	ctx := context.Background()
	var sent loan.Record
	gw := &gatewaymock.Gateway{
		CreateFn: func(_ context.Context, r loan.Record) (loan.Record, error) {
			sent = r
			r.ClientID = "c1"
			return r, nil
		},
		ListFn: func(context.Context) ([]loan.Record, error) { return []loan.Record{sent}, nil },
	}
	v := ledger.NewClientsView(gw)

	f := ledger.NewForm()
	_, _ = f.Set(ledger.FieldName, "Maria")
	_, _ = f.Set(ledger.FieldCPF, "12345678900")
	typeKeys(t, f, ledger.FieldValue, "100000")
	typeKeys(t, f, ledger.FieldLoanInterest, "5")

	saved, err := v.Create(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, "c1", saved.ClientID)
	assert.Equal(t, "50.00", sent.MonthlyPaid.StringFixed(2))
	assert.Len(t, v.Records(), 1)
}

func TestClientsView_InvalidFormNeverReachesGateway(t *testing.T) {
	gw := &gatewaymock.Gateway{CreateFn: func(context.Context, loan.Record) (loan.Record, error) {
		t.Fatal("gateway must not be called")
		return loan.Record{}, nil
	}}
	_, err := ledger.NewClientsView(gw).Create(context.Background(), ledger.NewForm())

	var ve ledger.ValidationErrors
	assert.ErrorAs(t, err, &ve)
}

func TestClientsView_DuplicateSubmissionRefused(t *testing.T) {
	ctx := context.Background()
	entered := make(chan struct{})
	release := make(chan struct{})
	gw := &gatewaymock.Gateway{
		CreateFn: func(_ context.Context, r loan.Record) (loan.Record, error) {
			close(entered)
			<-release
			return r, nil
		},
		ListFn: func(context.Context) ([]loan.Record, error) { return nil, nil },
	}
	v := ledger.NewClientsView(gw)

	done := make(chan error, 1)
	go func() {
		_, err := v.Create(ctx, validForm(t))
		done <- err
	}()
	<-entered
	assert.True(t, v.Submitting())

	_, err := v.Create(ctx, validForm(t))
	assert.ErrorIs(t, err, ledger.ErrSubmitting)
	assert.ErrorIs(t, v.Delete(ctx, "x", true), ledger.ErrSubmitting)

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never finished")
	}
	assert.False(t, v.Submitting())
}

func TestClientsView_FailedWriteLeavesStateAndUnlocks(t *testing.T) {
	ctx := context.Background()
	gw := &gatewaymock.Gateway{
		UpdateFn: func(context.Context, string, loan.Record) (loan.Record, error) {
			return loan.Record{}, &ledger.RemoteError{Kind: ledger.ErrConflict, Status: 409}
		},
	}
	v := ledger.NewClientsView(gw)

	_, err := v.Update(ctx, "c1", validForm(t))
	assert.ErrorIs(t, err, ledger.ErrConflict)
	assert.False(t, v.Submitting())
	assert.Empty(t, v.Records())
}

func TestClientsView_DeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	mem := &gatewaymock.Memory{}
	v := ledger.NewClientsView(mem)

	saved, err := v.Create(ctx, validForm(t))
	require.NoError(t, err)

	assert.ErrorIs(t, v.Delete(ctx, saved.ClientID, false), ledger.ErrNotConfirmed)
	_, ok := v.Find(saved.ClientID)
	assert.True(t, ok)

	require.NoError(t, v.Delete(ctx, saved.ClientID, true))
	_, ok = v.Find(saved.ClientID)
	assert.False(t, ok)

	listed, err := mem.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestClientsView_RefetchFailureAfterWrite(t *testing.T) {
	ctx := context.Background()
	gw := &gatewaymock.Gateway{
		CreateFn: func(_ context.Context, r loan.Record) (loan.Record, error) {
			r.ClientID = "c9"
			return r, nil
		},
	}
	saved, err := ledger.NewClientsView(gw).Create(ctx, validForm(t))
	assert.Equal(t, "c9", saved.ClientID)
	assert.ErrorIs(t, err, ledger.ErrTransport)
}
