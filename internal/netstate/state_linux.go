//go:build linux

package netstate

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const autoMode = ModeInterfaces

const sysClassNet = "/sys/class/net"

// ARPHRD_* link types from if_arp.h.
const (
	arphrdEther    = 1
	arphrdPPP      = 512
	arphrdRawIP    = 519
	arphrdLoopback = 772
)

func queryConnState() (ConnState, error) {
	return readSysfsState(sysClassNet)
}

// readSysfsState builds a connection state from the per-interface
// attributes under root (normally /sys/class/net). Virtual devices such as
// bridges and veth pairs are ignored.
func readSysfsState(root string) (ConnState, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return ConnState{}, err
	}

	var s ConnState
	for _, e := range entries {
		name := e.Name()
		if name == "lo" || isVirtualDevice(root, name) {
			continue
		}
		dir := filepath.Join(root, name)
		if !linkUp(dir) {
			continue
		}
		linkType, _ := strconv.Atoi(readAttr(dir, "type"))
		if linkType == arphrdLoopback {
			continue
		}
		s.Connected = true

		switch {
		case exists(filepath.Join(dir, "wireless")), exists(filepath.Join(dir, "phy80211")):
			// Wireless links carry no flag and classify as wifi.
		case linkType == arphrdPPP, linkType == arphrdRawIP, ueventDevType(dir) == "wwan":
			s.Flags |= FlagModem
		case linkType == arphrdEther:
			s.Flags |= FlagLAN
		}
	}
	return s, nil
}

func linkUp(dir string) bool {
	switch readAttr(dir, "operstate") {
	case "up":
		return true
	case "unknown":
		// PPP and raw-IP modems report unknown; trust the carrier.
		return readAttr(dir, "carrier") == "1"
	}
	return false
}

func isVirtualDevice(root, name string) bool {
	target, err := os.Readlink(filepath.Join(root, name))
	if err != nil {
		return false
	}
	return strings.Contains(target, "/devices/virtual/")
}

func ueventDevType(dir string) string {
	for _, line := range strings.Split(readAttr(dir, "uevent"), "\n") {
		if v, ok := strings.CutPrefix(line, "DEVTYPE="); ok {
			return v
		}
	}
	return ""
}

func readAttr(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
