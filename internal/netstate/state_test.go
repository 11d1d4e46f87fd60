package netstate

import (
	"errors"
	"testing"
)

func TestClassifyState(t *testing.T) {
	tests := []struct {
		name  string
		state ConnState
		want  Category
	}{
		{"disconnected", ConnState{}, Offline},
		{"disconnected ignores flags", ConnState{Flags: FlagLAN}, Offline},
		{"lan", ConnState{Connected: true, Flags: FlagLAN}, Ethernet},
		{"modem", ConnState{Connected: true, Flags: FlagModem}, Mobile},
		{"proxy", ConnState{Connected: true, Flags: FlagProxy}, Wifi},
		{"connected no flags", ConnState{Connected: true}, Wifi},
		{"lan beats proxy", ConnState{Connected: true, Flags: FlagLAN | FlagProxy}, Ethernet},
		{"lan beats modem", ConnState{Connected: true, Flags: FlagLAN | FlagModem}, Ethernet},
		{"modem beats proxy", ConnState{Connected: true, Flags: FlagModem | FlagProxy}, Mobile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyState(tt.state); got != tt.want {
				t.Errorf("ClassifyState(%+v) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestStateClassifierQueryError(t *testing.T) {
	c := &StateClassifier{Query: func() (ConnState, error) {
		return ConnState{Connected: true, Flags: FlagLAN}, errors.New("wininet missing")
	}}
	if got := c.Classify(); got != Offline {
		t.Errorf("Classify() on query error = %v, want offline", got)
	}
}

func TestStateFromInterfaces(t *testing.T) {
	s := stateFromInterfaces([]Interface{up("lo"), up("wlan0"), up("eth1"), up("wwan0")})
	if !s.Connected {
		t.Fatal("expected connected")
	}
	if s.Flags&FlagLAN == 0 || s.Flags&FlagModem == 0 {
		t.Errorf("Flags = %b, want LAN and modem", s.Flags)
	}
	if got := ClassifyState(s); got != Ethernet {
		t.Errorf("ClassifyState() = %v, want ethernet", got)
	}

	if s := stateFromInterfaces([]Interface{up("lo")}); s.Connected {
		t.Error("loopback alone must not count as connected")
	}
}

func TestNewModes(t *testing.T) {
	if _, ok := mustNew(t, ModeInterfaces).(*InterfaceClassifier); !ok {
		t.Error("interfaces mode should build an InterfaceClassifier")
	}
	if _, ok := mustNew(t, ModeFlags).(*StateClassifier); !ok {
		t.Error("flags mode should build a StateClassifier")
	}
	if ResolveMode(ModeAuto) != autoMode || ResolveMode("") != autoMode {
		t.Error("auto should resolve to the platform default")
	}

	_, err := New("magic")
	if !errors.Is(err, ErrUnknownMode) {
		t.Errorf("New(magic) error = %v, want ErrUnknownMode", err)
	}
}

func mustNew(t *testing.T, mode string) Classifier {
	t.Helper()
	c, err := New(mode)
	if err != nil {
		t.Fatalf("New(%q) error: %v", mode, err)
	}
	return c
}
