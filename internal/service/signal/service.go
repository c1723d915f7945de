package signal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KNICEX/signal-tracker/internal/entity"
	"github.com/KNICEX/signal-tracker/internal/service/monitor"
	"github.com/KNICEX/signal-tracker/internal/store"
	"github.com/shopspring/decimal"
)

// ErrInvalidSignal marks rejected creation parameters, the store is untouched.
var ErrInvalidSignal = errors.New("invalid signal")

// AddSignalReq carries the raw creation arguments. Numeric fields arrive as
// strings so that parse failures surface as validation errors here rather
// than in every presentation layer.
type AddSignalReq struct {
	Symbol  string
	Side    string
	Entry   string
	Targets []string
	Stop    string
	Note    string
}

type Service interface {
	AddSignal(ctx context.Context, req AddSignalReq) (entity.Signal, error)
	ListSignals(ctx context.Context) ([]entity.Signal, error)
	DeleteSignal(ctx context.Context, id int64) (bool, error)
}

type signalService struct {
	store    store.SignalStore
	notifier monitor.Notifier
}

type Option func(svc *signalService)

func WithNotifier(notifier monitor.Notifier) Option {
	return func(svc *signalService) {
		svc.notifier = notifier
	}
}

func NewService(st store.SignalStore, opts ...Option) Service {
	svc := &signalService{
		store: st,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (svc *signalService) AddSignal(ctx context.Context, req AddSignalReq) (entity.Signal, error) {
	signal, err := buildSignal(req)
	if err != nil {
		return entity.Signal{}, err
	}

	created, err := svc.store.Add(ctx, signal)
	if err != nil {
		return entity.Signal{}, fmt.Errorf("add signal: %w", err)
	}

	if svc.notifier == nil {
		return created, nil
	}

	ref, err := svc.notifier.SignalPublished(ctx, created)
	if err != nil {
		slog.Error("failed to publish signal card", "signal", created.Id, "error", err)
		return created, nil
	}
	if ref == "" {
		return created, nil
	}

	created.ExternalRef = ref
	if err = svc.store.Update(ctx, created); err != nil {
		return created, fmt.Errorf("store external ref: %w", err)
	}
	return created, nil
}

func (svc *signalService) ListSignals(ctx context.Context) ([]entity.Signal, error) {
	return svc.store.List(ctx), nil
}

func (svc *signalService) DeleteSignal(ctx context.Context, id int64) (bool, error) {
	return svc.store.Delete(ctx, id)
}

func buildSignal(req AddSignalReq) (entity.Signal, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return entity.Signal{}, fmt.Errorf("%w: symbol is required", ErrInvalidSignal)
	}

	side := entity.Side(strings.ToUpper(strings.TrimSpace(req.Side)))
	if !side.Valid() {
		return entity.Signal{}, fmt.Errorf("%w: side must be LONG or SHORT", ErrInvalidSignal)
	}

	entry := decimal.Zero
	if req.Entry != "" {
		var err error
		if entry, err = decimal.NewFromString(req.Entry); err != nil {
			return entity.Signal{}, fmt.Errorf("%w: bad entry %q", ErrInvalidSignal, req.Entry)
		}
	}

	if len(req.Targets) == 0 {
		return entity.Signal{}, fmt.Errorf("%w: at least one target is required", ErrInvalidSignal)
	}
	targets := make([]decimal.Decimal, 0, len(req.Targets))
	for _, raw := range req.Targets {
		target, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return entity.Signal{}, fmt.Errorf("%w: bad target %q", ErrInvalidSignal, raw)
		}
		targets = append(targets, target)
	}

	var stop *decimal.Decimal
	if req.Stop != "" {
		parsed, err := decimal.NewFromString(req.Stop)
		if err != nil {
			return entity.Signal{}, fmt.Errorf("%w: bad stop %q", ErrInvalidSignal, req.Stop)
		}
		stop = &parsed
	}

	return entity.Signal{
		Symbol:     symbol,
		Side:       side,
		Entry:      entry,
		Targets:    targets,
		Stop:       stop,
		Note:       req.Note,
		CreatedAt:  time.Now().UTC(),
		Active:     true,
		HitTargets: []int{},
	}, nil
}
