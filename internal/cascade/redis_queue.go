package cascade

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pendingKey = "cascade:pending"
	retryKey   = "cascade:retry"
)

// RedisQueue persists cascade intents in a Redis list, with a sorted set
// holding intents scheduled for retry. Intents survive process restarts, so
// a crash between book deletion and favourite cleanup loses nothing.
type RedisQueue struct {
	client *redis.Client
}

// NewRedisQueue wraps the given client.
func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

// Enqueue pushes the intent onto the pending list.
func (q *RedisQueue) Enqueue(ctx context.Context, intent Intent) error {
	payload, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, pendingKey, payload).Err()
}

// Dequeue promotes any due retries onto the pending list, then blocks for the
// next intent.
func (q *RedisQueue) Dequeue(ctx context.Context, wait time.Duration) (Intent, bool, error) {
	if err := q.promoteDue(ctx); err != nil {
		return Intent{}, false, err
	}

	result, err := q.client.BRPop(ctx, wait, pendingKey).Result()
	if err == redis.Nil {
		return Intent{}, false, nil
	}
	if err != nil {
		return Intent{}, false, err
	}

	// BRPop returns [key, value].
	var intent Intent
	if err := json.Unmarshal([]byte(result[1]), &intent); err != nil {
		return Intent{}, false, err
	}
	return intent, true, nil
}

// Requeue parks the intent in the retry set, scored by its next delivery time.
func (q *RedisQueue) Requeue(ctx context.Context, intent Intent, delay time.Duration) error {
	payload, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	score := float64(time.Now().Add(delay).UnixMilli())
	return q.client.ZAdd(ctx, retryKey, redis.Z{Score: score, Member: payload}).Err()
}

func (q *RedisQueue) promoteDue(ctx context.Context) error {
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	due, err := q.client.ZRangeByScore(ctx, retryKey, &redis.ZRangeBy{Min: "-inf", Max: now}).Result()
	if err != nil {
		return err
	}
	for _, member := range due {
		pipe := q.client.TxPipeline()
		pipe.ZRem(ctx, retryKey, member)
		pipe.LPush(ctx, pendingKey, member)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
