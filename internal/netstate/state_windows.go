//go:build windows

package netstate

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// autoMode prefers the WinInet connection flags on Windows.
const autoMode = ModeFlags

// WinInet INTERNET_CONNECTION_* flags.
const (
	internetConnectionModem = 0x01
	internetConnectionLAN   = 0x02
	internetConnectionProxy = 0x04
)

var (
	modWininet                    = windows.NewLazySystemDLL("wininet.dll")
	procInternetGetConnectedState = modWininet.NewProc("InternetGetConnectedState")
)

// queryConnState calls InternetGetConnectedState.
func queryConnState() (ConnState, error) {
	if err := procInternetGetConnectedState.Find(); err != nil {
		return ConnState{}, err
	}
	var flags uint32
	r1, _, _ := procInternetGetConnectedState.Call(uintptr(unsafe.Pointer(&flags)), 0)
	s := ConnState{Connected: r1 != 0}
	if flags&internetConnectionLAN != 0 {
		s.Flags |= FlagLAN
	}
	if flags&internetConnectionModem != 0 {
		s.Flags |= FlagModem
	}
	if flags&internetConnectionProxy != 0 {
		s.Flags |= FlagProxy
	}
	return s, nil
}
