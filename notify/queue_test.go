package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryQueueDequeueOnlyDue(t *testing.T) {
	q := NewRetryQueue()

	q.Enqueue(&RetryItem{Event: Event{Title: "later"}, RetryAt: time.Now().Add(time.Hour)})
	q.Enqueue(&RetryItem{Event: Event{Title: "now"}, RetryAt: time.Now().Add(-time.Second)})
	assert.Equal(t, 2, q.Size())

	item := q.Dequeue()
	if assert.NotNil(t, item) {
		assert.Equal(t, "now", item.Event.Title)
	}

	// the future one stays queued
	assert.Nil(t, q.Dequeue())
	assert.Equal(t, 1, q.Size())
}

func TestRetryQueueEmpty(t *testing.T) {
	q := NewRetryQueue()
	assert.Nil(t, q.Dequeue())
	assert.Equal(t, 0, q.Size())
}
