package task

import (
	"context"
	"log/slog"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 1,
		QueueSize:   16,
	}
}

// TaskRunner wires a TaskQueue to a WorkerPool.
type TaskRunner struct {
	queue  *TaskQueue
	pool   *WorkerPool
	logger *slog.Logger
}

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "task_runner")

	queue := NewTaskQueue(config.QueueSize, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger)

	return &TaskRunner{queue: queue, pool: pool, logger: logger}
}

// SetErrorHandler adds a callback for failed tasks on top of the pool's
// own logging. Call it before Start.
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Submit adds a task to the queue. It never blocks.
func (r *TaskRunner) Submit(task Task) error {
	return r.queue.Enqueue(task)
}

// Start begins processing tasks.
func (r *TaskRunner) Start() {
	r.pool.Start()
}

// Stop closes the queue and lets the workers drain what is buffered. If
// ctx ends first, in-flight tasks are cancelled.
func (r *TaskRunner) Stop(ctx context.Context) {
	r.queue.Close()

	done := make(chan struct{})
	go func() {
		r.pool.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("task runner drained")
	case <-ctx.Done():
		r.logger.Warn("task runner stop deadline reached, cancelling tasks")
		r.pool.Stop()
	}
}
