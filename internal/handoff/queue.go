// Package handoff moves values from a background goroutine to a foreground
// consumer without blocking the producer.
package handoff

import "sync"

// Queue is an unbounded FIFO between one or more producers and a consumer
// reading Out. Push never blocks and never drops while the queue is open.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool

	wake chan struct{}
	out  chan T
	done chan struct{}
}

// New returns an open queue with its delivery goroutine running.
func New[T any]() *Queue[T] {
	q := &Queue[T]{
		wake: make(chan struct{}, 1),
		out:  make(chan T),
		done: make(chan struct{}),
	}
	go q.pump()
	return q
}

// Push appends v. It returns false if the queue is closed.
func (q *Queue[T]) Push(v T) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// Out delivers pushed values in order. It is closed after Close.
func (q *Queue[T]) Out() <-chan T {
	return q.out
}

// Close stops delivery. Values still pending are discarded and Out is
// closed once the delivery goroutine exits.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.items = nil
	q.mu.Unlock()
	close(q.done)
}

func (q *Queue[T]) pump() {
	defer close(q.out)
	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.mu.Unlock()
			select {
			case <-q.wake:
				continue
			case <-q.done:
				return
			}
		}
		v := q.items[0]
		var zero T
		q.items[0] = zero
		q.items = q.items[1:]
		q.mu.Unlock()

		select {
		case q.out <- v:
		case <-q.done:
			return
		}
	}
}
