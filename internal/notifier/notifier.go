// Package notifier exposes the two connectivity operations to callers: a
// one-shot query and a listen/cancel subscription backed by the monitor.
package notifier

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/handoff"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/monitor"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
)

// MethodGetNetworkType is the only method served on the method channel.
const MethodGetNetworkType = "getNetworkType"

var (
	ErrNotImplemented   = errors.New("not implemented")
	ErrAlreadyListening = errors.New("already listening")
)

// Subscription is the handle of the single active listener.
type Subscription struct {
	ID      uuid.UUID
	Owner   string
	Started time.Time

	queue *handoff.Queue[netstate.Category]
	once  sync.Once
}

// Events delivers the initial category followed by every change, in order.
// It is closed when the subscription is cancelled.
func (s *Subscription) Events() <-chan netstate.Category {
	return s.queue.Out()
}

func (s *Subscription) close() {
	s.once.Do(s.queue.Close)
}

// Status is a point-in-time view of the notifier.
type Status struct {
	Listening  bool   `json:"listening"`
	Subscriber string `json:"subscriber,omitempty"`
	// LastNetworkType is nil until the monitor has published a category.
	LastNetworkType *netstate.Category `json:"lastNetworkType,omitempty"`
	PollInterval    string             `json:"pollInterval"`
}

type Notifier struct {
	classifier netstate.Classifier
	monitor    *monitor.Monitor

	mu     sync.Mutex
	active *Subscription
}

func New(classifier netstate.Classifier, mon *monitor.Monitor) *Notifier {
	return &Notifier{classifier: netstate.Safe(classifier), monitor: mon}
}

// Query classifies the current connectivity once. It does not need an active
// subscription. A failing classifier reads as Offline, exactly as it does for
// the monitor.
func (n *Notifier) Query() netstate.Category {
	return n.classifier.Classify()
}

// HandleMethod dispatches a method-channel call.
func (n *Notifier) HandleMethod(method string) (netstate.Category, error) {
	if method == MethodGetNetworkType {
		return n.Query(), nil
	}
	return netstate.Offline, fmt.Errorf("%w: %q", ErrNotImplemented, method)
}

// Listen starts the monitor on behalf of owner. The current category is the
// first value on the returned subscription's Events channel. Only one
// subscription can be active; a second Listen fails with ErrAlreadyListening.
func (n *Notifier) Listen(owner string) (*Subscription, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.active != nil {
		return nil, fmt.Errorf("%w: held by %s", ErrAlreadyListening, n.active.Owner)
	}

	sub := &Subscription{
		ID:      uuid.New(),
		Owner:   owner,
		Started: time.Now(),
		queue:   handoff.New[netstate.Category](),
	}
	if !n.monitor.Start(func(c netstate.Category) { sub.queue.Push(c) }) {
		sub.close()
		return nil, fmt.Errorf("%w: monitor already running", ErrAlreadyListening)
	}
	n.active = sub
	log.Printf("[notifier] %s listening (subscription %s)", owner, sub.ID)
	return sub, nil
}

// Cancel stops the monitor, waits for it to exit and closes sub. Cancelling
// a nil or stale subscription does nothing.
func (n *Notifier) Cancel(sub *Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if sub == nil || sub != n.active {
		return
	}
	n.monitor.Stop()
	sub.close()
	n.active = nil
	log.Printf("[notifier] %s cancelled (subscription %s, active %v)",
		sub.Owner, sub.ID, time.Since(sub.Started).Round(time.Millisecond))
}

// Active returns the current subscription, or nil.
func (n *Notifier) Active() *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

// Shutdown cancels any active subscription.
func (n *Notifier) Shutdown() {
	n.Cancel(n.Active())
}

func (n *Notifier) Status() Status {
	st := Status{PollInterval: n.monitor.Interval().String()}
	if last, ok := n.monitor.Last(); ok {
		st.LastNetworkType = &last
	}
	if sub := n.Active(); sub != nil {
		st.Listening = true
		st.Subscriber = sub.ID.String()
	}
	return st
}
