// Package task runs a function on a background goroutine that can be
// cancelled and joined.
package task

import (
	"context"
	"sync"
)

// Task is a handle to a running background function. The function observes
// cancellation through its context; Stop cancels it and waits for it to
// return.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Go starts fn on a new goroutine with a context derived from parent.
func Go(parent context.Context, fn func(ctx context.Context)) *Task {
	ctx, cancel := context.WithCancel(parent)
	t := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		defer cancel()
		fn(ctx)
	}()
	return t
}

// Stop cancels the task and waits for it to return. Safe to call more than
// once and from several goroutines.
func (t *Task) Stop() {
	t.once.Do(t.cancel)
	<-t.done
}
