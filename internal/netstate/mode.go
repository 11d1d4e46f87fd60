package netstate

import (
	"errors"
	"fmt"
)

// Classifier modes accepted by New.
const (
	ModeAuto       = "auto"
	ModeInterfaces = "interfaces"
	ModeFlags      = "flags"
)

var ErrUnknownMode = errors.New("unknown classifier mode")

// New returns the classifier for mode. ModeAuto picks the richest backend
// available on this platform.
func New(mode string) (Classifier, error) {
	switch ResolveMode(mode) {
	case ModeInterfaces:
		return NewInterfaceClassifier(), nil
	case ModeFlags:
		return NewStateClassifier(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

// ResolveMode maps ModeAuto (or the empty string) to the platform default.
func ResolveMode(mode string) string {
	if mode == "" || mode == ModeAuto {
		return autoMode
	}
	return mode
}
