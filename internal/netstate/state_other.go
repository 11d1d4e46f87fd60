//go:build !linux && !windows

package netstate

const autoMode = ModeInterfaces

// queryConnState falls back to the interface list where no connectivity API
// is wired up.
func queryConnState() (ConnState, error) {
	ifaces, err := ListInterfaces()
	if err != nil {
		return ConnState{}, err
	}
	return stateFromInterfaces(ifaces), nil
}
