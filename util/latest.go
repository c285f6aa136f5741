package util

import "sync"

// Latest is a single slot mailbox. Writers never block and readers only
// ever see the most recent value; intermediate values may be skipped.
type Latest[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
	notify  chan struct{}
}

func NewLatest[T any]() *Latest[T] {
	return &Latest[T]{notify: make(chan struct{}, 1)}
}

// Put replaces the value and flags a pending notification.
func (l *Latest[T]) Put(v T) {
	l.mu.Lock()
	l.value = v
	l.version++
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// Get returns the current value and how many times Put has been called.
func (l *Latest[T]) Get() (T, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.version
}

// Value returns the current value.
func (l *Latest[T]) Value() T {
	v, _ := l.Get()
	return v
}

// Updated fires once after any number of Puts.
func (l *Latest[T]) Updated() <-chan struct{} {
	return l.notify
}
