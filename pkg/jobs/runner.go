package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is invoked on every tick. Errors are logged, never fatal; the next
// tick runs regardless.
type Task func(context.Context) error

// RunnerConfig configures the interval loop.
type RunnerConfig struct {
	Interval   time.Duration
	RunAtStart bool
	Logger     *zap.Logger
}

// Runner fires a task on a fixed interval. Whether a given pass actually
// does work is up to the task itself (the reminder pass carries its own
// already-sent-today guard), so overlapping effective runs are prevented by
// the task, not by the runner.
type Runner struct {
	name     string
	task     Task
	interval time.Duration
	atStart  bool
	logger   *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewRunner builds a runner for the named task.
func NewRunner(name string, task Task, cfg RunnerConfig) *Runner {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Runner{
		name:     name,
		task:     task,
		interval: cfg.Interval,
		atStart:  cfg.RunAtStart,
		logger:   cfg.Logger,
	}
}

// Start launches the loop. Safe to call once.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.wg.Add(1)
	go r.loop()
	r.started = true
	r.logger.Sugar().Infow("runner started", "runner", r.name, "interval", r.interval)
}

// Stop cancels the loop and waits for the current pass to finish.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.cancel()
	r.mu.Unlock()
	r.wg.Wait()
	r.logger.Sugar().Infow("runner stopped", "runner", r.name)
}

func (r *Runner) loop() {
	defer r.wg.Done()

	if r.atStart {
		r.runOnce()
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.runOnce()
		}
	}
}

func (r *Runner) runOnce() {
	if err := r.task(r.ctx); err != nil {
		r.logger.Sugar().Errorw("runner pass failed", "runner", r.name, "error", err)
	}
}
