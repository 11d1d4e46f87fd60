package notifier

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/mock"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/monitor"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
)

func newTestNotifier(c netstate.Classifier, interval time.Duration) (*Notifier, *monitor.Monitor) {
	mon := monitor.NewMonitor(c, interval)
	return New(c, mon), mon
}

func next(t *testing.T, sub *Subscription) netstate.Category {
	t.Helper()
	select {
	case c, ok := <-sub.Events():
		if !ok {
			t.Fatal("events closed")
		}
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an event")
	}
	return netstate.Offline
}

func TestQuery(t *testing.T) {
	n, mon := newTestNotifier(mock.NewScript(netstate.Mobile), time.Hour)
	if got := n.Query(); got != netstate.Mobile {
		t.Errorf("Query() = %s, want mobile", got)
	}
	if mon.Running() {
		t.Error("Query started the monitor")
	}
}

func TestQueryMatchesFirstEvent(t *testing.T) {
	tests := []struct {
		name string
		c    netstate.Classifier
		want netstate.Category
	}{
		{"steady", netstate.ClassifierFunc(func() netstate.Category { return netstate.Ethernet }), netstate.Ethernet},
		{"out of range", netstate.ClassifierFunc(func() netstate.Category { return netstate.Category(9) }), netstate.Offline},
		{"panics", netstate.ClassifierFunc(func() netstate.Category { panic("no interfaces") }), netstate.Offline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _ := newTestNotifier(tt.c, time.Hour)

			queried := n.Query()
			if queried != tt.want {
				t.Errorf("Query() = %s, want %s", queried, tt.want)
			}

			sub, err := n.Listen("test")
			if err != nil {
				t.Fatal(err)
			}
			defer n.Cancel(sub)
			if first := next(t, sub); first != queried {
				t.Errorf("first event = %s, Query() = %s", first, queried)
			}
		})
	}
}

func TestHandleMethod(t *testing.T) {
	n, _ := newTestNotifier(mock.NewScript(netstate.Ethernet), time.Hour)

	tests := []struct {
		method  string
		want    netstate.Category
		wantErr error
	}{
		{"getNetworkType", netstate.Ethernet, nil},
		{"getBatteryLevel", netstate.Offline, ErrNotImplemented},
		{"", netstate.Offline, ErrNotImplemented},
		{"GetNetworkType", netstate.Offline, ErrNotImplemented},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got, err := n.HandleMethod(tt.method)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("HandleMethod(%q) error = %v, want %v", tt.method, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("HandleMethod(%q) = %s, want %s", tt.method, got, tt.want)
			}
		})
	}
}

func TestListenDeliversInitialThenChanges(t *testing.T) {
	script := mock.NewScript(
		netstate.Wifi, // initial
		netstate.Wifi,
		netstate.Wifi,
		netstate.Mobile,
		netstate.Mobile,
	)
	n, _ := newTestNotifier(script, time.Millisecond)

	sub, err := n.Listen("test")
	if err != nil {
		t.Fatalf("Listen() error: %v", err)
	}
	defer n.Cancel(sub)

	got := []netstate.Category{next(t, sub), next(t, sub)}
	want := []netstate.Category{netstate.Wifi, netstate.Mobile}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}

	// The script holds on mobile; nothing else may arrive.
	select {
	case c := <-sub.Events():
		t.Errorf("unexpected event %s", c)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestSecondListenerRejected(t *testing.T) {
	n, _ := newTestNotifier(mock.NewScript(netstate.Wifi), time.Hour)

	first, err := n.Listen("a")
	if err != nil {
		t.Fatal(err)
	}
	defer n.Cancel(first)

	if _, err := n.Listen("b"); !errors.Is(err, ErrAlreadyListening) {
		t.Errorf("second Listen() error = %v, want ErrAlreadyListening", err)
	}
	if n.Active() != first {
		t.Error("active subscription changed after rejected Listen")
	}
}

func TestCancelStopsMonitorAndClosesEvents(t *testing.T) {
	n, mon := newTestNotifier(mock.NewScript(netstate.Ethernet), time.Millisecond)

	sub, err := n.Listen("test")
	if err != nil {
		t.Fatal(err)
	}
	next(t, sub)
	n.Cancel(sub)

	if mon.Running() {
		t.Error("monitor still running after Cancel")
	}
	if n.Active() != nil {
		t.Error("Active() != nil after Cancel")
	}
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-sub.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("events not closed after Cancel")
		}
	}
}

func TestCancelStaleOrNil(t *testing.T) {
	n, mon := newTestNotifier(mock.NewScript(netstate.Wifi), time.Hour)

	n.Cancel(nil)

	old, err := n.Listen("old")
	if err != nil {
		t.Fatal(err)
	}
	n.Cancel(old)

	cur, err := n.Listen("current")
	if err != nil {
		t.Fatalf("Listen() after Cancel error: %v", err)
	}
	n.Cancel(old)
	if n.Active() != cur || !mon.Running() {
		t.Error("cancelling a stale subscription affected the active one")
	}
	n.Shutdown()
	if n.Active() != nil || mon.Running() {
		t.Error("Shutdown left a subscription active")
	}
	n.Shutdown()
}

func TestStatus(t *testing.T) {
	n, _ := newTestNotifier(mock.NewScript(netstate.Wifi), 2*time.Second)

	st := n.Status()
	if st.Listening || st.Subscriber != "" || st.LastNetworkType != nil {
		t.Errorf("idle Status() = %+v", st)
	}
	idle, err := json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}
	var idleRaw map[string]any
	if err := json.Unmarshal(idle, &idleRaw); err != nil {
		t.Fatal(err)
	}
	if _, ok := idleRaw["lastNetworkType"]; ok {
		t.Errorf("never-started Status JSON reports a network type: %s", idle)
	}

	sub, err := n.Listen("test")
	if err != nil {
		t.Fatal(err)
	}
	defer n.Cancel(sub)

	st = n.Status()
	if !st.Listening || st.Subscriber != sub.ID.String() {
		t.Errorf("active Status() = %+v", st)
	}

	data, err := json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["lastNetworkType"] != "wifi" || raw["pollInterval"] != "2s" {
		t.Errorf("Status JSON = %s", data)
	}
}
