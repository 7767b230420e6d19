package cascade

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MemoryQueue is an in-process Queue used in tests and when Redis is not
// configured. Delivery guarantees hold only for the lifetime of the process.
type MemoryQueue struct {
	mu      sync.Mutex
	pending chan Intent
	timers  []*time.Timer
	closed  bool
	logger  *zap.Logger
}

// NewMemoryQueue builds a queue with a bounded buffer.
func NewMemoryQueue(size int, logger *zap.Logger) *MemoryQueue {
	if size <= 0 {
		size = 128
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryQueue{pending: make(chan Intent, size), logger: logger}
}

// Enqueue appends an intent for delivery.
func (q *MemoryQueue) Enqueue(_ context.Context, intent Intent) error {
	q.pending <- intent
	return nil
}

// Dequeue blocks up to wait for the next intent.
func (q *MemoryQueue) Dequeue(ctx context.Context, wait time.Duration) (Intent, bool, error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case intent := <-q.pending:
		return intent, true, nil
	case <-timer.C:
		return Intent{}, false, nil
	case <-ctx.Done():
		return Intent{}, false, ctx.Err()
	}
}

// Requeue re-delivers the intent after the delay elapses. If the buffer is
// full when the delay fires, the intent is dropped and logged rather than
// leaking a blocked goroutine.
func (q *MemoryQueue) Requeue(_ context.Context, intent Intent, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	timer := time.AfterFunc(delay, func() {
		q.mu.Lock()
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return
		}
		select {
		case q.pending <- intent:
		default:
			q.logger.Error("cascade intent dropped, queue full",
				zap.String("book_id", intent.BookID),
				zap.Int("attempts", intent.Attempts))
		}
	})
	q.timers = append(q.timers, timer)
	return nil
}

// Close cancels any scheduled redeliveries.
func (q *MemoryQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	for _, timer := range q.timers {
		timer.Stop()
	}
}
