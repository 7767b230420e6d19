package cascade

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/junalkadhav/library-management/internal/observability"
)

// maxBackoffShift bounds the exponential backoff at baseBackoff * 2^10.
const maxBackoffShift = 10

// Remover delivers a cascade to the service owning favourites. Satisfied by
// upstream.UserClient.
type Remover interface {
	CascadeRemove(ctx context.Context, bookID string) error
}

// Worker drains the queue and delivers each intent, retrying with
// exponential backoff up to a bounded attempt count. Together with the
// idempotence of the remote removal this gives at-least-once cleanup without
// blocking the request that deleted the book.
type Worker struct {
	queue       Queue
	remover     Remover
	logger      *zap.Logger
	metrics     *observability.Metrics
	maxAttempts int
	baseBackoff time.Duration
}

// NewWorker constructs a worker.
func NewWorker(queue Queue, remover Remover, logger *zap.Logger, metrics *observability.Metrics, maxAttempts int, baseBackoff time.Duration) *Worker {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if baseBackoff <= 0 {
		baseBackoff = 2 * time.Second
	}
	return &Worker{
		queue:       queue,
		remover:     remover,
		logger:      logger,
		metrics:     metrics,
		maxAttempts: maxAttempts,
		baseBackoff: baseBackoff,
	}
}

// Run consumes the queue until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		intent, ok, err := w.queue.Dequeue(ctx, 2*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Warn("cascade dequeue failed", zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		w.Deliver(ctx, intent)
	}
}

// Deliver attempts one delivery, requeueing on failure until attempts are
// exhausted.
func (w *Worker) Deliver(ctx context.Context, intent Intent) {
	w.metrics.RecordCascadeAttempt()

	err := w.remover.CascadeRemove(ctx, intent.BookID)
	if err == nil {
		w.logger.Info("cascade delivered", zap.String("book_id", intent.BookID))
		return
	}

	intent.Attempts++
	if intent.Attempts >= w.maxAttempts {
		w.metrics.RecordCascadeDropped()
		w.logger.Error("cascade dropped after max attempts",
			zap.String("book_id", intent.BookID),
			zap.Int("attempts", intent.Attempts),
			zap.Error(err))
		return
	}

	// Cap the shift so a large attempt limit cannot overflow the delay.
	shift := intent.Attempts - 1
	if shift > maxBackoffShift {
		shift = maxBackoffShift
	}
	delay := w.baseBackoff << shift
	w.logger.Warn("cascade delivery failed, requeueing",
		zap.String("book_id", intent.BookID),
		zap.Int("attempts", intent.Attempts),
		zap.Duration("retry_in", delay),
		zap.Error(err))

	if err := w.queue.Requeue(ctx, intent, delay); err != nil {
		w.logger.Error("cascade requeue failed", zap.String("book_id", intent.BookID), zap.Error(err))
	}
}
