package notify

import (
	"sync"
	"time"
)

// RetryItem is a notification whose delivery failed and should be retried.
type RetryItem struct {
	Event    Event
	RetryAt  time.Time
	Attempts int
}

// RetryQueue is a mutex-guarded queue of delayed redeliveries.
type RetryQueue struct {
	items []*RetryItem
	mu    sync.Mutex
}

func NewRetryQueue() *RetryQueue {
	return &RetryQueue{items: make([]*RetryItem, 0)}
}

func (q *RetryQueue) Enqueue(item *RetryItem) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
}

// Dequeue pops the first item whose RetryAt has passed, or nil.
func (q *RetryQueue) Dequeue() *RetryItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now()
	for i, item := range q.items {
		if !item.RetryAt.After(now) {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return item
		}
	}
	return nil
}

func (q *RetryQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
