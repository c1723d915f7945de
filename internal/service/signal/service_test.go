package signal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/KNICEX/signal-tracker/internal/entity"
	"github.com/KNICEX/signal-tracker/internal/service/monitor"
	"github.com/KNICEX/signal-tracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishNotifier struct {
	ref       string
	published []entity.Signal
}

func (n *publishNotifier) SignalPublished(ctx context.Context, signal entity.Signal) (string, error) {
	n.published = append(n.published, signal)
	return n.ref, nil
}

func (n *publishNotifier) TargetHit(ctx context.Context, event monitor.TargetHitEvent) error {
	return nil
}

func (n *publishNotifier) StopHit(ctx context.Context, event monitor.StopHitEvent) error {
	return nil
}

func newTestService(t *testing.T, notifier monitor.Notifier) (Service, store.SignalStore) {
	t.Helper()
	st, err := store.NewSignalStore(filepath.Join(t.TempDir(), "signals.json"))
	require.NoError(t, err)
	opts := []Option{}
	if notifier != nil {
		opts = append(opts, WithNotifier(notifier))
	}
	return NewService(st, opts...), st
}

func validReq() AddSignalReq {
	return AddSignalReq{
		Symbol:  "eur/usd",
		Side:    "long",
		Entry:   "1.105",
		Targets: []string{"1.11", "1.115"},
		Stop:    "1.1",
		Note:    "breakout",
	}
}

func TestService_AddSignal(t *testing.T) {
	notifier := &publishNotifier{ref: "9001"}
	svc, st := newTestService(t, notifier)
	ctx := context.Background()

	created, err := svc.AddSignal(ctx, validReq())
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.Id)
	assert.Equal(t, "EUR/USD", created.Symbol)
	assert.Equal(t, entity.SideLong, created.Side)
	assert.True(t, created.Active)
	assert.Empty(t, created.HitTargets)
	require.NotNil(t, created.Stop)
	assert.Equal(t, "1.1", created.Stop.String())
	assert.Equal(t, "9001", created.ExternalRef)

	require.Len(t, notifier.published, 1)

	stored, ok := st.Get(ctx, created.Id)
	require.True(t, ok)
	assert.Equal(t, "9001", stored.ExternalRef)
}

func TestService_AddSignalValidation(t *testing.T) {
	svc, st := newTestService(t, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(req *AddSignalReq)
	}{
		{"missing symbol", func(req *AddSignalReq) { req.Symbol = " " }},
		{"bad side", func(req *AddSignalReq) { req.Side = "SIDEWAYS" }},
		{"no targets", func(req *AddSignalReq) { req.Targets = nil }},
		{"bad target", func(req *AddSignalReq) { req.Targets = []string{"1.11", "oops"} }},
		{"bad entry", func(req *AddSignalReq) { req.Entry = "abc" }},
		{"bad stop", func(req *AddSignalReq) { req.Stop = "abc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validReq()
			tt.mutate(&req)
			_, err := svc.AddSignal(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidSignal)
		})
	}

	// rejected requests never touch the store
	assert.Empty(t, st.List(ctx))
}

func TestService_AddSignalOptionalFields(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	req := validReq()
	req.Entry = ""
	req.Stop = ""
	req.Note = ""

	created, err := svc.AddSignal(ctx, req)
	require.NoError(t, err)
	assert.True(t, created.Entry.IsZero())
	assert.Nil(t, created.Stop)
}

func TestService_DeleteSignal(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	created, err := svc.AddSignal(ctx, validReq())
	require.NoError(t, err)

	ok, err := svc.DeleteSignal(ctx, created.Id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.DeleteSignal(ctx, created.Id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_ListSignals(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.AddSignal(ctx, validReq())
	require.NoError(t, err)

	second := validReq()
	second.Symbol = "GBP/USD"
	_, err = svc.AddSignal(ctx, second)
	require.NoError(t, err)

	signals, err := svc.ListSignals(ctx)
	require.NoError(t, err)
	require.Len(t, signals, 2)
	assert.Equal(t, "EUR/USD", signals[0].Symbol)
	assert.Equal(t, "GBP/USD", signals[1].Symbol)
}
