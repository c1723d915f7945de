package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingTask struct {
	runs   atomic.Int64
	err    error
	cancel context.CancelFunc
	stopAt int64
}

func (t *countingTask) Run(ctx context.Context) error {
	if t.runs.Add(1) >= t.stopAt {
		t.cancel()
	}
	return t.err
}

func (t *countingTask) Name() string {
	return "counting task"
}

func TestRunner_RepeatsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := &countingTask{cancel: cancel, stopAt: 3}

	NewRunner(task, time.Millisecond).Start(ctx)

	assert.GreaterOrEqual(t, task.runs.Load(), int64(3))
}

func TestRunner_SurvivesTaskErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := &countingTask{cancel: cancel, stopAt: 3, err: errors.New("boom")}

	done := make(chan struct{})
	go func() {
		NewRunner(task, time.Millisecond).Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop after cancellation")
	}
	assert.GreaterOrEqual(t, task.runs.Load(), int64(3))
}
