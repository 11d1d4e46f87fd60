// Package theme provides the Lip Gloss color palette and reusable styles
// for the netmon TUI. It is a leaf package apart from netstate.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
)

// Category colors.
var (
	ColorOffline  = lipgloss.Color("#dc2626")
	ColorWifi     = lipgloss.Color("#3b82f6")
	ColorEthernet = lipgloss.Color("#22c55e")
	ColorMobile   = lipgloss.Color("#d97706")
	ColorDefault  = lipgloss.Color("#9ca3af")
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorBg      = lipgloss.Color("#111827")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
	ColorInfo    = lipgloss.Color("#2563eb")
	ColorAccent  = lipgloss.Color("#7c3aed")
)

// CategoryColor returns the Lip Gloss color for a connectivity category.
func CategoryColor(c netstate.Category) lipgloss.Color {
	switch c {
	case netstate.Offline:
		return ColorOffline
	case netstate.Wifi:
		return ColorWifi
	case netstate.Ethernet:
		return ColorEthernet
	case netstate.Mobile:
		return ColorMobile
	default:
		return ColorDefault
	}
}

// CategoryGlyph returns a short Unicode marker for a category.
func CategoryGlyph(c netstate.Category) string {
	switch c {
	case netstate.Offline:
		return "✗"
	case netstate.Wifi:
		return "◠"
	case netstate.Ethernet:
		return "⇄"
	case netstate.Mobile:
		return "▲"
	default:
		return "·"
	}
}

// CategoryBadge renders the glyph and name of c in its color.
func CategoryBadge(c netstate.Category) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(CategoryColor(c)).
		Render(CategoryGlyph(c) + " " + c.String())
}

// Reusable styles.
var (
	StyleBorder = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	StyleHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
		Foreground(ColorDimmed)
)
