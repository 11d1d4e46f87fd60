package netstate

import (
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// Classifier maps the live OS network state to a Category. Implementations
// never fail: an inconclusive or failed OS query yields Offline or a best
// guess.
type Classifier interface {
	Classify() Category
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func() Category

func (f ClassifierFunc) Classify() Category { return f() }

// Interface is the subset of an OS network interface the classifier looks at.
type Interface struct {
	Name     string
	Up       bool
	Loopback bool
	Addrs    []string
}

// InterfaceClassifier classifies connectivity by enumerating network
// interfaces and matching their names against well known prefixes.
type InterfaceClassifier struct {
	// List enumerates interfaces. Nil uses the gopsutil interface list.
	List func() ([]Interface, error)
}

// NewInterfaceClassifier returns a classifier backed by the OS interface list.
func NewInterfaceClassifier() *InterfaceClassifier {
	return &InterfaceClassifier{List: ListInterfaces}
}

func (c *InterfaceClassifier) Classify() Category {
	list := c.List
	if list == nil {
		list = ListInterfaces
	}
	ifaces, err := list()
	if err != nil {
		return Offline
	}
	return ClassifyInterfaces(ifaces)
}

// ClassifyInterfaces applies the name-prefix rules to ifaces in order. The
// first interface with a specific prefix wins; an unrecognised interface only
// counts as wifi until something more specific turns up.
func ClassifyInterfaces(ifaces []Interface) Category {
	result := Offline
	for _, ifc := range ifaces {
		if !qualifies(ifc) {
			continue
		}
		if c, ok := categoryForName(ifc.Name); ok {
			return c
		}
		result = Wifi
	}
	return result
}

func qualifies(ifc Interface) bool {
	if !ifc.Up || ifc.Loopback || ifc.Name == "lo" {
		return false
	}
	return len(ifc.Addrs) > 0
}

// categoryForName matches the interface name prefixes. Wireless names are
// checked first so "wlan0" never falls through to a shorter prefix.
func categoryForName(name string) (Category, bool) {
	switch {
	case strings.HasPrefix(name, "wlan"), strings.HasPrefix(name, "wifi"):
		return Wifi, true
	case strings.HasPrefix(name, "eth"), strings.HasPrefix(name, "en"):
		return Ethernet, true
	case strings.HasPrefix(name, "wwan"), strings.HasPrefix(name, "usb"):
		return Mobile, true
	}
	return Offline, false
}

// ListInterfaces returns the host interfaces reported by gopsutil.
func ListInterfaces() ([]Interface, error) {
	stats, err := psnet.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]Interface, 0, len(stats))
	for _, st := range stats {
		out = append(out, fromStat(st))
	}
	return out, nil
}

func fromStat(st psnet.InterfaceStat) Interface {
	ifc := Interface{Name: st.Name}
	for _, f := range st.Flags {
		switch f {
		case "up":
			ifc.Up = true
		case "loopback":
			ifc.Loopback = true
		}
	}
	for _, a := range st.Addrs {
		if a.Addr != "" {
			ifc.Addrs = append(ifc.Addrs, a.Addr)
		}
	}
	return ifc
}
