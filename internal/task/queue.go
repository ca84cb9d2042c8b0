package task

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	ErrQueueClosed = errors.New("task queue is closed")
	ErrQueueFull   = errors.New("task queue is full")
)

// TaskQueue is a bounded, non-blocking task buffer. Enqueue fails fast
// when the buffer is full so callers on the request path never wait on
// background work.
type TaskQueue struct {
	mu     sync.RWMutex
	ch     chan Task
	closed bool
	logger *slog.Logger
}

var _ Source = (*TaskQueue)(nil)

// NewTaskQueue returns a queue holding up to size tasks (at least one).
func NewTaskQueue(size int, logger *slog.Logger) *TaskQueue {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskQueue{ch: make(chan Task, max(size, 1)), logger: logger}
}

// Enqueue buffers t or reports ErrQueueFull / ErrQueueClosed.
func (q *TaskQueue) Enqueue(t Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return fmt.Errorf("%w: dropping %s task", ErrQueueClosed, t.Kind())
	}
	select {
	case q.ch <- t:
		q.logger.Debug("task queued",
			slog.String("task_kind", string(t.Kind())),
			slog.Int("depth", len(q.ch)))
		return nil
	default:
		return fmt.Errorf("%w (%d buffered)", ErrQueueFull, cap(q.ch))
	}
}

// Len is the number of buffered tasks.
func (q *TaskQueue) Len() int { return len(q.ch) }

// Close stops new submissions; buffered tasks stay readable. Safe to call
// more than once.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
	q.logger.Info("task queue closed", slog.Int("buffered", len(q.ch)))
}

// Tasks implements Source.
func (q *TaskQueue) Tasks() <-chan Task { return q.ch }
