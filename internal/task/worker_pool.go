package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// ErrTaskPanicked wraps a panic recovered from Task.Execute.
var ErrTaskPanicked = errors.New("task panicked")

// WorkerPoolConfig configures a WorkerPool. A non-positive WorkerCount
// means one worker.
type WorkerPoolConfig struct {
	WorkerCount int
}

// DefaultWorkerPoolConfig is a single worker, which keeps snapshot saves
// strictly ordered.
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{WorkerCount: 1}
}

// PoolStats counts finished tasks.
type PoolStats struct {
	Succeeded int64
	Failed    int64
}

// WorkerPool runs tasks from a Source on a fixed number of goroutines.
type WorkerPool struct {
	source      Source
	workerCount int
	logger      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	errorHandler func(task Task, err error)

	succeeded atomic.Int64
	failed    atomic.Int64
}

// NewWorkerPool returns a pool reading from source. Call Start to run it.
func NewWorkerPool(source Source, config WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	if logger == nil {
		logger = slog.Default()
	}
	n := config.WorkerCount
	if n <= 0 {
		logger.Warn("worker count must be positive, using 1", slog.Int("configured", config.WorkerCount))
		n = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		source:      source,
		workerCount: n,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// SetErrorHandler is called for every failed or panicking task. Call it
// before Start.
func (p *WorkerPool) SetErrorHandler(handler func(task Task, err error)) {
	p.errorHandler = handler
}

// Start launches the workers. They exit once the source channel is closed
// and drained, or when Stop is called.
func (p *WorkerPool) Start() {
	p.logger.Info("worker pool starting", slog.Int("workers", p.workerCount))
	for i := range p.workerCount {
		p.wg.Add(1)
		go p.run(i)
	}
}

// Wait blocks until every worker has exited.
func (p *WorkerPool) Wait() { p.wg.Wait() }

// Stop cancels in-flight tasks and waits for the workers.
func (p *WorkerPool) Stop() {
	p.cancel()
	p.wg.Wait()
	s := p.Stats()
	p.logger.Info("worker pool stopped",
		slog.Int64("succeeded", s.Succeeded),
		slog.Int64("failed", s.Failed))
}

// Stats returns the counts so far.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{Succeeded: p.succeeded.Load(), Failed: p.failed.Load()}
}

func (p *WorkerPool) run(worker int) {
	defer p.wg.Done()

	tasks := p.source.Tasks()
	for {
		select {
		case <-p.ctx.Done():
			return
		case t, ok := <-tasks:
			if !ok {
				return
			}
			if err := p.execute(t); err != nil {
				p.failed.Add(1)
				p.logger.Error("task failed",
					slog.String("task_id", t.ID().String()),
					slog.String("task_kind", string(t.Kind())),
					slog.Int("worker", worker),
					slog.String("error", err.Error()))
				if p.errorHandler != nil {
					p.errorHandler(t, err)
				}
				continue
			}
			p.succeeded.Add(1)
		}
	}
}

func (p *WorkerPool) execute(t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	return t.Execute(p.ctx)
}
