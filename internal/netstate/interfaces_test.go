package netstate

import (
	"errors"
	"math/rand"
	"testing"

	psnet "github.com/shirou/gopsutil/v3/net"
)

func up(name string) Interface {
	return Interface{Name: name, Up: true, Addrs: []string{"192.0.2.10/24"}}
}

func TestClassifyInterfaces(t *testing.T) {
	tests := []struct {
		name   string
		ifaces []Interface
		want   Category
	}{
		{"none", nil, Offline},
		{"loopback only", []Interface{{Name: "lo", Up: true, Loopback: true, Addrs: []string{"127.0.0.1/8"}}}, Offline},
		{"loopback by name", []Interface{up("lo")}, Offline},
		{"wlan", []Interface{up("wlan0")}, Wifi},
		{"wifi prefix", []Interface{up("wifi0")}, Wifi},
		{"eth", []Interface{up("eth0")}, Ethernet},
		{"predictable en name", []Interface{up("enp3s0")}, Ethernet},
		{"wwan", []Interface{up("wwan0")}, Mobile},
		{"usb tether", []Interface{up("usb0")}, Mobile},
		{"unknown name falls back to wifi", []Interface{up("tun0")}, Wifi},
		{"unknown then specific", []Interface{up("tun0"), up("eth0")}, Ethernet},
		{"first specific wins", []Interface{up("wwan0"), up("eth0")}, Mobile},
		{"down interface skipped", []Interface{{Name: "eth0", Addrs: []string{"192.0.2.1/24"}}}, Offline},
		{"no address skipped", []Interface{{Name: "eth0", Up: true}}, Offline},
		{"skipped then wifi", []Interface{{Name: "eth0", Up: true}, up("wlan0")}, Wifi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyInterfaces(tt.ifaces); got != tt.want {
				t.Errorf("ClassifyInterfaces() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInterfaceClassifierListError(t *testing.T) {
	c := &InterfaceClassifier{List: func() ([]Interface, error) {
		return []Interface{up("eth0")}, errors.New("netlink unavailable")
	}}
	if got := c.Classify(); got != Offline {
		t.Errorf("Classify() on list error = %v, want offline", got)
	}
}

func TestInterfaceClassifierUsesList(t *testing.T) {
	c := &InterfaceClassifier{List: func() ([]Interface, error) {
		return []Interface{up("lo"), up("usb0")}, nil
	}}
	if got := c.Classify(); got != Mobile {
		t.Errorf("Classify() = %v, want mobile", got)
	}
}

// Random interface tables always classify into exactly one declared category.
func TestClassifyInterfacesTotal(t *testing.T) {
	names := []string{"lo", "eth0", "enp0s3", "wlan0", "wifi1", "wwan0", "usb0", "tun0", "docker0", "br-1", ""}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		n := rng.Intn(6)
		ifaces := make([]Interface, n)
		for j := range ifaces {
			ifaces[j] = Interface{
				Name:     names[rng.Intn(len(names))],
				Up:       rng.Intn(3) > 0,
				Loopback: rng.Intn(5) == 0,
			}
			if rng.Intn(4) > 0 {
				ifaces[j].Addrs = []string{"10.0.0.1/8"}
			}
		}
		got := ClassifyInterfaces(ifaces)
		if !got.Valid() {
			t.Fatalf("ClassifyInterfaces(%+v) = %d, not a declared category", ifaces, int(got))
		}
	}
}

func TestFromStat(t *testing.T) {
	st := psnet.InterfaceStat{
		Name:  "wlp2s0",
		Flags: []string{"up", "broadcast", "multicast"},
		Addrs: psnet.InterfaceAddrList{{Addr: "192.168.1.20/24"}, {Addr: ""}},
	}
	ifc := fromStat(st)
	if ifc.Name != "wlp2s0" || !ifc.Up || ifc.Loopback {
		t.Errorf("fromStat() = %+v", ifc)
	}
	if len(ifc.Addrs) != 1 {
		t.Errorf("Addrs = %v, want one address", ifc.Addrs)
	}

	lo := fromStat(psnet.InterfaceStat{Name: "lo", Flags: []string{"up", "loopback"}})
	if !lo.Loopback {
		t.Error("loopback flag not mapped")
	}
}
