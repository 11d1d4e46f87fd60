package netstate

// ConnFlags are the capability bits reported by a connection-state query.
type ConnFlags uint32

const (
	FlagLAN ConnFlags = 1 << iota
	FlagModem
	FlagProxy
)

// ConnState is a global connection state as reported by a richer OS
// connectivity API than plain interface enumeration.
type ConnState struct {
	Connected bool
	Flags     ConnFlags
}

// ClassifyState maps a connection state to a category. Specific signals win
// over the generic fallback: LAN, then modem, then proxy.
func ClassifyState(s ConnState) Category {
	if !s.Connected {
		return Offline
	}
	switch {
	case s.Flags&FlagLAN != 0:
		return Ethernet
	case s.Flags&FlagModem != 0:
		return Mobile
	case s.Flags&FlagProxy != 0:
		return Wifi
	}
	// Connected, type undetermined.
	return Wifi
}

// StateClassifier classifies connectivity from a connection-state query.
type StateClassifier struct {
	// Query reads the connection state. Nil uses the platform query.
	Query func() (ConnState, error)
}

// NewStateClassifier returns a classifier backed by the platform connection query.
func NewStateClassifier() *StateClassifier {
	return &StateClassifier{Query: queryConnState}
}

func (c *StateClassifier) Classify() Category {
	query := c.Query
	if query == nil {
		query = queryConnState
	}
	s, err := query()
	if err != nil {
		return Offline
	}
	return ClassifyState(s)
}

// stateFromInterfaces derives a connection state from an interface list for
// platforms without a dedicated connectivity API.
func stateFromInterfaces(ifaces []Interface) ConnState {
	var s ConnState
	for _, ifc := range ifaces {
		if !qualifies(ifc) {
			continue
		}
		s.Connected = true
		c, ok := categoryForName(ifc.Name)
		if !ok {
			continue
		}
		switch c {
		case Ethernet:
			s.Flags |= FlagLAN
		case Mobile:
			s.Flags |= FlagModem
		}
	}
	return s
}
