package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KNICEX/signal-tracker/internal/entity"
	"github.com/KNICEX/signal-tracker/internal/metrics"
	"github.com/KNICEX/signal-tracker/internal/repo"
	"github.com/KNICEX/signal-tracker/internal/service/pricing"
	"github.com/KNICEX/signal-tracker/internal/store"
	"github.com/shopspring/decimal"
)

const defaultFetchTimeout = 10 * time.Second

type PriceMonitor struct {
	store    store.SignalStore
	priceSvc pricing.PriceService
	alerts   repo.AlertRepo

	notifier     Notifier
	fetchTimeout time.Duration
}

type consoleNotifier struct {
}

func (c consoleNotifier) SignalPublished(ctx context.Context, signal entity.Signal) (string, error) {
	fmt.Println("signal published", signal.Id, signal.Symbol)
	return "", nil
}

func (c consoleNotifier) TargetHit(ctx context.Context, event TargetHitEvent) error {
	fmt.Println("target hit", event.Signal.Symbol, event.TargetIndex+1, event.TargetPrice, event.ObservedPrice)
	return nil
}

func (c consoleNotifier) StopHit(ctx context.Context, event StopHitEvent) error {
	fmt.Println("stop hit", event.Signal.Symbol, event.StopPrice, event.ObservedPrice)
	return nil
}

type Option func(m *PriceMonitor)

func WithNotifier(notifier Notifier) Option {
	return func(m *PriceMonitor) {
		m.notifier = notifier
	}
}

func WithFetchTimeout(timeout time.Duration) Option {
	return func(m *PriceMonitor) {
		m.fetchTimeout = timeout
	}
}

func NewPriceMonitor(st store.SignalStore, priceSvc pricing.PriceService, alerts repo.AlertRepo, opts ...Option) Service {
	monitor := &PriceMonitor{
		store:        st,
		priceSvc:     priceSvc,
		alerts:       alerts,
		notifier:     consoleNotifier{},
		fetchTimeout: defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(monitor)
	}
	return monitor
}

// Scan runs one evaluation cycle over every active signal. A fetch failure
// skips only that signal; a persistence failure aborts the cycle and is
// returned to the runner.
func (m *PriceMonitor) Scan(ctx context.Context) error {
	for _, signal := range m.store.List(ctx) {
		if !signal.Active {
			continue
		}

		price, err := m.fetchPrice(ctx, signal.Symbol)
		if err != nil {
			metrics.FetchErrorsTotal.WithLabelValues(signal.Symbol).Inc()
			slog.Error("failed to fetch price", "signal", signal.Id, "symbol", signal.Symbol, "error", err)
			continue
		}

		if err = m.evaluate(ctx, signal, price); err != nil {
			return err
		}
	}
	metrics.CyclesTotal.Inc()
	return nil
}

func (m *PriceMonitor) fetchPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, m.fetchTimeout)
	defer cancel()
	return m.priceSvc.GetPrice(ctx, symbol)
}

// evaluate applies the crossing rules for one signal. Targets are checked
// independently, each hit is persisted before its alert goes out, and the
// stop check runs against the already-updated record.
func (m *PriceMonitor) evaluate(ctx context.Context, signal entity.Signal, price decimal.Decimal) error {
	for idx, target := range signal.Targets {
		if signal.TargetHit(idx) || !crossedTarget(signal.Side, price, target) {
			continue
		}

		signal.HitTargets = append(signal.HitTargets, idx)
		if err := m.store.Update(ctx, signal); err != nil {
			return fmt.Errorf("persist target hit: %w", err)
		}
		m.emitTargetHit(ctx, signal, idx, target, price)
	}

	if signal.Stop == nil || !signal.Active || !crossedStop(signal.Side, price, *signal.Stop) {
		return nil
	}

	signal.Active = false
	if err := m.store.Update(ctx, signal); err != nil {
		return fmt.Errorf("persist stop hit: %w", err)
	}
	m.emitStopHit(ctx, signal, price)
	return nil
}

func (m *PriceMonitor) emitTargetHit(ctx context.Context, signal entity.Signal, idx int, target, price decimal.Decimal) {
	metrics.AlertsTotal.WithLabelValues(entity.AlertKindTarget).Inc()

	if err := m.notifier.TargetHit(ctx, TargetHitEvent{
		Signal:        signal,
		TargetIndex:   idx,
		TargetPrice:   target,
		ObservedPrice: price,
	}); err != nil {
		slog.Error("failed to notify target hit", "signal", signal.Id, "symbol", signal.Symbol, "error", err)
	}

	m.audit(ctx, entity.Alert{
		SignalId:    signal.Id,
		Symbol:      signal.Symbol,
		Kind:        entity.AlertKindTarget,
		TargetIndex: idx,
		Level:       target.String(),
		Observed:    price.String(),
		CreatedAt:   time.Now(),
	})
}

func (m *PriceMonitor) emitStopHit(ctx context.Context, signal entity.Signal, price decimal.Decimal) {
	metrics.AlertsTotal.WithLabelValues(entity.AlertKindStop).Inc()

	if err := m.notifier.StopHit(ctx, StopHitEvent{
		Signal:        signal,
		StopPrice:     *signal.Stop,
		ObservedPrice: price,
	}); err != nil {
		slog.Error("failed to notify stop hit", "signal", signal.Id, "symbol", signal.Symbol, "error", err)
	}

	m.audit(ctx, entity.Alert{
		SignalId:  signal.Id,
		Symbol:    signal.Symbol,
		Kind:      entity.AlertKindStop,
		Level:     signal.Stop.String(),
		Observed:  price.String(),
		CreatedAt: time.Now(),
	})
}

// audit failures never affect monitoring, the log is advisory.
func (m *PriceMonitor) audit(ctx context.Context, alert entity.Alert) {
	if m.alerts == nil {
		return
	}
	if _, err := m.alerts.Create(ctx, alert); err != nil {
		slog.Error("failed to record alert", "signal", alert.SignalId, "kind", alert.Kind, "error", err)
	}
}

func crossedTarget(side entity.Side, price, target decimal.Decimal) bool {
	if side == entity.SideLong {
		return price.GreaterThanOrEqual(target)
	}
	return price.LessThanOrEqual(target)
}

func crossedStop(side entity.Side, price, stop decimal.Decimal) bool {
	if side == entity.SideLong {
		return price.LessThanOrEqual(stop)
	}
	return price.GreaterThanOrEqual(stop)
}
