package cascade

import (
	"context"
	"time"
)

// Intent is a queued cleanup obligation: the referenced book was deleted and
// its favourite entries must eventually be removed. Delivery is at least
// once; the receiving operation is idempotent.
type Intent struct {
	BookID   string `json:"bookId"`
	Attempts int    `json:"attempts"`
}

// Queue is a durable store of pending cascade intents. Enqueue is called on
// the book-deletion path and must be cheap; the deleting request never waits
// for delivery.
type Queue interface {
	// Enqueue appends an intent for delivery.
	Enqueue(ctx context.Context, intent Intent) error
	// Dequeue blocks up to wait for the next deliverable intent. The second
	// return is false when the wait elapsed with nothing available.
	Dequeue(ctx context.Context, wait time.Duration) (Intent, bool, error)
	// Requeue schedules an intent for redelivery after the given delay.
	Requeue(ctx context.Context, intent Intent, delay time.Duration) error
}
