// Package monitor polls the connectivity classifier in the background and
// reports category transitions.
package monitor

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/task"
)

// Monitor owns one poll loop at a time. The loop is the only writer of the
// last published category while it runs.
type Monitor struct {
	classifier netstate.Classifier
	interval   time.Duration

	mu   sync.Mutex // serialises Start and Stop; never taken by the loop
	task *task.Task

	running  atomic.Bool
	observed atomic.Bool // set once the first category has been published
	last     atomic.Int32
	loops   atomic.Int32 // live poll loops

	newTicker func(time.Duration) (<-chan time.Time, func())
}

func NewMonitor(classifier netstate.Classifier, interval time.Duration) *Monitor {
	return &Monitor{
		classifier: netstate.Safe(classifier),
		interval:   interval,
		newTicker:  realTicker,
	}
}

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Start classifies once, reports the result to onChange as the current state
// and launches the poll loop. Later transitions are reported to onChange from
// the loop goroutine. If the monitor is already running Start does nothing
// and returns false.
//
// onChange must not call Start or Stop.
func (m *Monitor) Start(onChange func(netstate.Category)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.task != nil {
		return false
	}

	initial := m.classifier.Classify()
	m.last.Store(int32(initial))
	m.observed.Store(true)
	m.running.Store(true)
	onChange(initial)

	m.task = task.Go(context.Background(), func(ctx context.Context) {
		m.run(ctx, initial, onChange)
	})
	log.Printf("Monitor started (interval=%v, network=%s)", m.interval, initial)
	return true
}

// Stop ends the poll loop and waits for it to exit. No onChange call happens
// after Stop returns. Calling Stop on a stopped monitor is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.task == nil {
		return
	}
	m.task.Stop()
	m.task = nil
	m.running.Store(false)
	log.Println("Monitor stopped")
}

// Running reports whether a poll loop is active.
func (m *Monitor) Running() bool {
	return m.running.Load()
}

// Last returns the most recently published category. ok is false until the
// monitor has been started at least once.
func (m *Monitor) Last() (c netstate.Category, ok bool) {
	if !m.observed.Load() {
		return netstate.Offline, false
	}
	return netstate.Category(m.last.Load()), true
}

// Interval returns the poll period.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

func (m *Monitor) run(ctx context.Context, last netstate.Category, onChange func(netstate.Category)) {
	m.loops.Add(1)
	defer m.loops.Add(-1)

	ticks, stop := m.newTicker(m.interval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
		}
		// Both cases may be ready at once; a stop request always wins.
		if ctx.Err() != nil {
			return
		}

		current := m.classifier.Classify()
		if current == last {
			continue
		}
		log.Printf("Network changed: %s -> %s", last, current)
		last = current
		m.last.Store(int32(current))
		onChange(current)
	}
}
