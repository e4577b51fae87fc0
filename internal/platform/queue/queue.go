// Package queue carries notification jobs from request handlers to the
// notification worker.
package queue

import (
	"context"
	"errors"

	"github.com/sivaprasad1108/event-sync-api/internal/domain/model"
)

var (
	ErrQueueFull   = errors.New("notification queue is full")
	ErrQueueClosed = errors.New("notification queue is closed")
)

// NotificationQueue is a FIFO of pending notifications. Enqueue must not block
// the caller on delivery.
type NotificationQueue interface {
	Enqueue(ctx context.Context, n model.Notification) error
	// Dequeue blocks until a notification is available, the queue is closed
	// or ctx is done.
	Dequeue(ctx context.Context) (model.Notification, error)
	Close() error
}
