package monitor

import (
	"context"

	"github.com/KNICEX/signal-tracker/internal/entity"
	"github.com/shopspring/decimal"
)

type TargetHitEvent struct {
	Signal        entity.Signal
	TargetIndex   int // 0-based, rendered 1-based
	TargetPrice   decimal.Decimal
	ObservedPrice decimal.Decimal
}

type StopHitEvent struct {
	Signal        entity.Signal
	StopPrice     decimal.Decimal
	ObservedPrice decimal.Decimal
}

// Notifier delivers rendered alerts to the destination channel.
// SignalPublished returns an external reference for the posted card so that
// follow-up alerts can be threaded onto it.
type Notifier interface {
	SignalPublished(ctx context.Context, signal entity.Signal) (string, error)
	TargetHit(ctx context.Context, event TargetHitEvent) error
	StopHit(ctx context.Context, event StopHitEvent) error
}

// Service 价格监控服务接口
type Service interface {
	Scan(ctx context.Context) error
}
