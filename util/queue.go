package util

import (
	"sync"

	"github.com/gammazero/deque"
)

// Queue is an unbounded FIFO safe for many producers and one consumer.
// The consumer takes everything at once with Drain.
type Queue[T any] struct {
	mu    sync.Mutex
	items deque.Deque[T]
}

func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	q.items.PushBack(item)
	q.mu.Unlock()
}

// Drain removes and returns all queued items in arrival order.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.items.Len() == 0 {
		return nil
	}
	out := make([]T, 0, q.items.Len())
	for q.items.Len() > 0 {
		out = append(out, q.items.PopFront())
	}
	return out
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}
