// Package client provides WebSocket and HTTP clients for the netmon host.
package client

import (
	"encoding/json"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/config"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
)

// MessageType identifies the kind of WebSocket message.
type MessageType string

const (
	MsgCall           MessageType = "call"
	MsgResult         MessageType = "result"
	MsgNotImplemented MessageType = "not_implemented"
	MsgError          MessageType = "error"
	MsgEvent          MessageType = "event"
)

// Channels names the host's method and event channels. They must match the
// host's channels config.
type Channels struct {
	Method string
	Events string
}

// DefaultChannels returns the names a host uses when its config leaves the
// channels section empty.
func DefaultChannels() Channels {
	return Channels{Method: config.DefaultMethodChannel, Events: config.DefaultEventChannel}
}

// WSMessage is the envelope for all WebSocket messages.
type WSMessage struct {
	Type    MessageType     `json:"type"`
	ID      int64           `json:"id,omitempty"`
	Channel string          `json:"channel,omitempty"`
	Method  string          `json:"method,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Status mirrors GET /api/network/status.
type Status struct {
	Listening  bool   `json:"listening"`
	Subscriber string `json:"subscriber"`
	// LastNetworkType is nil while the host has never started its monitor.
	LastNetworkType *netstate.Category `json:"lastNetworkType"`
	PollInterval    string             `json:"pollInterval"`
}
