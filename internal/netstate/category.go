// Package netstate classifies the host's current network connectivity into
// one of a fixed set of categories.
package netstate

import (
	"encoding/json"
	"fmt"
)

// Category is the connectivity class of the host. The zero value is Offline.
type Category int

const (
	Offline Category = iota
	Wifi
	Ethernet
	Mobile
)

var categoryNames = map[Category]string{
	Offline:  "offline",
	Wifi:     "wifi",
	Ethernet: "ethernet",
	Mobile:   "mobile",
}

var categoryFromName = map[string]Category{
	"offline":  Offline,
	"wifi":     Wifi,
	"ethernet": Ethernet,
	"mobile":   Mobile,
}

// Categories lists every category in declaration order.
func Categories() []Category {
	return []Category{Offline, Wifi, Ethernet, Mobile}
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "unknown"
}

// ParseCategory returns the category for its wire name.
func ParseCategory(name string) (Category, error) {
	if c, ok := categoryFromName[name]; ok {
		return c, nil
	}
	return Offline, fmt.Errorf("unknown network type %q", name)
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
