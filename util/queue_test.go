package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_DrainInOrder(t *testing.T) {
	var q Queue[int]
	assert.Nil(t, q.Drain(), "an empty queue drains to nil")

	for i := 0; i < 5; i++ {
		q.Push(i)
	}
	assert.Equal(t, 5, q.Len())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, q.Drain(), "items come out in arrival order")
	assert.Equal(t, 0, q.Len(), "drain empties the queue")
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	var q Queue[int]
	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(i)
			}
		}()
	}

	got := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		got += len(q.Drain())
	}
	assert.Equal(t, 1000, got, "every pushed item is drained exactly once")
}
