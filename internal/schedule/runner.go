package schedule

import (
	"context"
	"log/slog"
	"time"
)

// Runner executes a task once immediately and then on every interval tick.
// Task errors are logged and never stop the loop; only ctx cancellation does.
type Runner struct {
	task     Task
	interval time.Duration
}

func NewRunner(task Task, interval time.Duration) *Runner {
	return &Runner{
		task:     task,
		interval: interval,
	}
}

func (r *Runner) Start(ctx context.Context) {
	slog.Info("task runner started", "task", r.task.Name(), "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.task.Run(ctx); err != nil {
			slog.Error("task run failed", "task", r.task.Name(), "error", err)
		}
		select {
		case <-ctx.Done():
			slog.Info("task runner stopped", "task", r.task.Name())
			return
		case <-ticker.C:
		}
	}
}
