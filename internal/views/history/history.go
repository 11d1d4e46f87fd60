// Package history provides the scrollable log of connectivity changes and
// channel traffic.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/theme"
)

const maxEntries = 200

// Entry kinds.
const (
	KindNet  = "net"
	KindWS   = "ws"
	KindCall = "call"
	KindErr  = "err"
)

// Entry is a single log line. Category is set for KindNet entries only.
type Entry struct {
	Time     time.Time
	Kind     string
	Message  string
	Category netstate.Category
}

// Model holds history state.
type Model struct {
	Entries []Entry
	Offset  int // scroll offset (from bottom)
	Changes int
}

// New creates an empty history.
func New() Model {
	return Model{}
}

// Add appends a log entry and caps the buffer.
func (m *Model) Add(kind, message string) {
	m.append(Entry{Time: time.Now(), Kind: kind, Message: message})
}

// AddCategory records a category reported on the event channel.
func (m *Model) AddCategory(c netstate.Category) {
	m.Changes++
	m.append(Entry{Time: time.Now(), Kind: KindNet, Message: c.String(), Category: c})
}

func (m *Model) append(e Entry) {
	m.Entries = append(m.Entries, e)
	if len(m.Entries) > maxEntries {
		m.Entries = m.Entries[len(m.Entries)-maxEntries:]
	}
	// Reset scroll to bottom on new entry.
	m.Offset = 0
}

// ScrollUp moves the viewport up.
func (m *Model) ScrollUp(n int) {
	m.Offset += n
	max := len(m.Entries) - 1
	if max < 0 {
		max = 0
	}
	if m.Offset > max {
		m.Offset = max
	}
}

// ScrollDown moves the viewport down.
func (m *Model) ScrollDown(n int) {
	m.Offset -= n
	if m.Offset < 0 {
		m.Offset = 0
	}
}

func panelStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder)
}

// View renders the log inside a panel of the given size.
func (m Model) View(width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}
	visibleLines := height - 4
	if visibleLines < 3 {
		visibleLines = 3
	}

	title := theme.StyleHeader.Render(fmt.Sprintf(" HISTORY  %d changes ", m.Changes))

	if len(m.Entries) == 0 {
		body := theme.StyleDimmed.Render("  No events recorded yet.")
		return panelStyle(innerW).Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
	}

	// Build visible lines from bottom (minus offset).
	end := len(m.Entries) - m.Offset
	start := end - visibleLines
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}

	var lines []string
	for i := start; i < end; i++ {
		e := m.Entries[i]
		tsStr := theme.StyleDimmed.Render(e.Time.Format("15:04:05.000"))
		kindStr := lipgloss.NewStyle().Foreground(kindToColor(e.Kind)).Width(4).Render(e.Kind)
		var msgStr string
		if e.Kind == KindNet {
			msgStr = theme.CategoryBadge(e.Category)
		} else {
			msgStr = e.Message
			if len(msgStr) > innerW-20 && innerW > 20 {
				msgStr = msgStr[:innerW-23] + "..."
			}
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", tsStr, kindStr, msgStr))
	}

	body := strings.Join(lines, "\n")
	parts := []string{title, body}
	if m.Offset > 0 {
		parts = append(parts, theme.StyleDimmed.Render(fmt.Sprintf(" ↓ %d more", m.Offset)))
	}
	return panelStyle(innerW).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func kindToColor(kind string) lipgloss.Color {
	switch kind {
	case KindNet:
		return theme.ColorHealthy
	case KindWS:
		return theme.ColorInfo
	case KindErr:
		return theme.ColorDanger
	case KindCall:
		return theme.ColorAccent
	default:
		return theme.ColorDimmed
	}
}
