package monitor

import (
	"context"

	"github.com/KNICEX/signal-tracker/internal/schedule"
)

type PriceMonitorTask struct {
	monitorSvc Service
}

func NewPriceMonitorTask(monitorSvc Service) schedule.Task {
	return &PriceMonitorTask{
		monitorSvc: monitorSvc,
	}
}

func (t *PriceMonitorTask) Run(ctx context.Context) error {
	return t.monitorSvc.Scan(ctx)
}

func (t *PriceMonitorTask) Name() string {
	return "price monitor task"
}
