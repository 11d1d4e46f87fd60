package status

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	Connected bool
	Listening bool
	Known     bool // Current has been reported at least once
	Current   netstate.Category
	Width     int
}

// New creates a status bar model.
func New() Model {
	return Model{}
}

// SetCurrent records the latest reported category.
func (m *Model) SetCurrent(c netstate.Category) {
	m.Current = c
	m.Known = true
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var connStr string
	if m.Connected {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● Connected")
	} else {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("○ Connecting...")
	}

	var listenStr string
	if m.Listening {
		listenStr = lipgloss.NewStyle().Foreground(theme.ColorInfo).Render("listening")
	} else {
		listenStr = theme.StyleDimmed.Render("not listening")
	}

	netStr := theme.StyleDimmed.Render("network: ?")
	if m.Known {
		netStr = "network: " + theme.CategoryBadge(m.Current)
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := connStr + sep + listenStr + sep + netStr

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
