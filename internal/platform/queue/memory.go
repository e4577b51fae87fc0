package queue

import (
	"context"
	"sync"

	"github.com/sivaprasad1108/event-sync-api/internal/domain/model"
)

type MemoryQueue struct {
	ch        chan model.Notification
	done      chan struct{}
	closeOnce sync.Once
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 1
	}
	return &MemoryQueue{
		ch:   make(chan model.Notification, size),
		done: make(chan struct{}),
	}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, n model.Notification) error {
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}
	select {
	case q.ch <- n:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (model.Notification, error) {
	select {
	case n := <-q.ch:
		return n, nil
	case <-q.done:
		return model.Notification{}, ErrQueueClosed
	case <-ctx.Done():
		return model.Notification{}, ctx.Err()
	}
}

// Close stops further enqueues and wakes blocked consumers. Jobs still
// buffered are dropped.
func (q *MemoryQueue) Close() error {
	q.closeOnce.Do(func() { close(q.done) })
	return nil
}

// Len returns the number of buffered notifications.
func (q *MemoryQueue) Len() int {
	return len(q.ch)
}
