package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sivaprasad1108/event-sync-api/internal/domain/model"
)

const popTimeout = time.Second

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// RedisQueue keeps notifications as JSON on a Redis list: LPUSH on enqueue,
// BRPOP on dequeue.
type RedisQueue struct {
	rdb *redis.Client
	key string
}

func ConnectRedis(ctx context.Context, opts RedisOptions) (*RedisQueue, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", opts.Addr, err)
	}
	return NewRedisQueue(rdb, opts.Key), nil
}

func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	return &RedisQueue{rdb: rdb, key: key}
}

func (q *RedisQueue) Enqueue(ctx context.Context, n model.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := q.rdb.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("push notification to %s: %w", q.key, err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (model.Notification, error) {
	for {
		// A bounded timeout keeps the loop responsive to ctx cancellation.
		res, err := q.rdb.BRPop(ctx, popTimeout, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				if ctx.Err() != nil {
					return model.Notification{}, ctx.Err()
				}
				continue
			}
			if errors.Is(err, redis.ErrClosed) {
				return model.Notification{}, ErrQueueClosed
			}
			if ctx.Err() != nil {
				return model.Notification{}, ctx.Err()
			}
			return model.Notification{}, fmt.Errorf("pop notification from %s: %w", q.key, err)
		}

		// res is [key, value]
		if len(res) < 2 {
			continue
		}
		var n model.Notification
		if err := json.Unmarshal([]byte(res[1]), &n); err != nil {
			return model.Notification{}, fmt.Errorf("decode notification: %w", err)
		}
		return n, nil
	}
}

func (q *RedisQueue) Close() error {
	return q.rdb.Close()
}
