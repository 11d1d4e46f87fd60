// Package mock provides scripted connectivity classifiers for mock mode and
// tests.
package mock

import (
	"math/rand"
	"sync"
	"time"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
)

// Script is a classifier that returns a fixed sequence of categories, one per
// call. Once the script is exhausted it keeps returning the last entry. An
// empty script always returns offline.
type Script struct {
	mu    sync.Mutex
	steps []netstate.Category
	calls int
}

// NewScript returns a classifier that replays steps.
func NewScript(steps ...netstate.Category) *Script {
	return &Script{steps: steps}
}

func (s *Script) Classify() netstate.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if len(s.steps) == 0 {
		return netstate.Offline
	}
	if i >= len(s.steps) {
		i = len(s.steps) - 1
	}
	return s.steps[i]
}

// Calls returns how many times Classify has been called.
func (s *Script) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Generator simulates a roaming host for mock mode: it holds each category
// for a random wall-clock dwell before moving to another one. The dwell does
// not depend on how often Classify is called, so a one-shot query and the
// poll loop observe the same host.
type Generator struct {
	mu       sync.Mutex
	rng      *rand.Rand
	now      func() time.Time
	current  netstate.Category
	changeAt time.Time
	minHold  time.Duration
	maxHold  time.Duration
}

// NewGenerator returns a generator that dwells on each category for between
// minHold and maxHold.
func NewGenerator(seed int64, minHold, maxHold time.Duration) *Generator {
	return newGenerator(seed, minHold, maxHold, time.Now)
}

func newGenerator(seed int64, minHold, maxHold time.Duration, now func() time.Time) *Generator {
	if minHold <= 0 {
		minHold = time.Second
	}
	if maxHold < minHold {
		maxHold = minHold
	}
	g := &Generator{
		rng:     rand.New(rand.NewSource(seed)),
		now:     now,
		current: netstate.Wifi,
		minHold: minHold,
		maxHold: maxHold,
	}
	g.changeAt = now().Add(g.nextHold())
	return g
}

func (g *Generator) Classify() netstate.Category {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := g.now()
	if t.Before(g.changeAt) {
		return g.current
	}
	all := netstate.Categories()
	next := all[g.rng.Intn(len(all))]
	for next == g.current {
		next = all[g.rng.Intn(len(all))]
	}
	g.current = next
	g.changeAt = t.Add(g.nextHold())
	return g.current
}

func (g *Generator) nextHold() time.Duration {
	return g.minHold + time.Duration(g.rng.Int63n(int64(g.maxHold-g.minHold)+1))
}
