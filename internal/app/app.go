package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/client"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/theme"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/views/history"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/views/status"
)

// hostStatusMsg carries the result of an /api/network/status fetch.
type hostStatusMsg struct {
	status *client.Status
	err    error
}

// Model is the root Bubble Tea model. All connectivity updates reach it as
// messages, so rendering state is only touched on the update loop.
type Model struct {
	ws     *client.WSClient
	http   *client.HTTPClient
	ctx    context.Context
	cancel context.CancelFunc

	keys   KeyMap
	width  int
	height int

	statusBar status.Model
	history   history.Model
	host      *client.Status

	// Connection state.
	connected bool
	listening bool
	// wantListen survives reconnects; the host drops a subscription when
	// its connection goes away.
	wantListen    bool
	pendingListen int64
	pendingCancel int64
}

// New creates the root model.
func New(ws *client.WSClient, http *client.HTTPClient) Model {
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		ws:        ws,
		http:      http,
		ctx:       ctx,
		cancel:    cancel,
		keys:      DefaultKeyMap(),
		statusBar: status.New(),
		history:   history.New(),
	}
}

// Init starts the WebSocket connection.
func (m Model) Init() tea.Cmd {
	return m.ws.Connect(m.ctx)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case client.WSConnectedMsg:
		m.connected = true
		m.statusBar.Connected = true
		m.history.Add(history.KindWS, "connected")
		m.query()
		if m.wantListen {
			m.listen()
		}
		return m, m.ws.ReadLoop(m.ctx)

	case client.WSDisconnectedMsg:
		m.connected = false
		m.listening = false
		m.statusBar.Connected = false
		m.statusBar.Listening = false
		m.history.Add(history.KindWS, fmt.Sprintf("disconnected: %v", msg.Err))
		return m, m.ws.Connect(m.ctx)

	case client.NetworkTypeMsg:
		m.statusBar.SetCurrent(msg.Category)
		m.history.Add(history.KindCall, "getNetworkType → "+msg.Category.String())
		return m, m.ws.ReadLoop(m.ctx)

	case client.AckMsg:
		switch {
		case msg.ID == 0:
		case msg.ID == m.pendingListen:
			m.pendingListen = 0
			m.setListening(true)
			m.history.Add(history.KindCall, "listen acknowledged")
		case msg.ID == m.pendingCancel:
			m.pendingCancel = 0
			m.setListening(false)
			m.history.Add(history.KindCall, "cancel acknowledged")
		}
		return m, m.ws.ReadLoop(m.ctx)

	case client.NetworkEventMsg:
		m.statusBar.SetCurrent(msg.Category)
		m.history.AddCategory(msg.Category)
		return m, m.ws.ReadLoop(m.ctx)

	case client.NotImplementedMsg:
		m.history.Add(history.KindErr, fmt.Sprintf("call %d on %s not implemented", msg.ID, msg.Channel))
		return m, m.ws.ReadLoop(m.ctx)

	case client.WSErrorMsg:
		if msg.ID != 0 && msg.ID == m.pendingListen {
			m.pendingListen = 0
			m.wantListen = false
		}
		m.history.Add(history.KindErr, fmt.Sprintf("%s: %s", msg.Payload.Code, msg.Payload.Message))
		return m, m.ws.ReadLoop(m.ctx)

	case hostStatusMsg:
		if msg.err != nil {
			m.history.Add(history.KindErr, fmt.Sprintf("status: %v", msg.err))
			return m, nil
		}
		m.host = msg.status
		last := "none"
		if msg.status.LastNetworkType != nil {
			last = msg.status.LastNetworkType.String()
		}
		m.history.Add(history.KindCall, fmt.Sprintf("host listening=%v last=%s interval=%s",
			msg.status.Listening, last, msg.status.PollInterval))
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.history.ScrollUp(1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.history.ScrollDown(1)
		return m, nil

	case key.Matches(msg, m.keys.Query):
		m.query()
		return m, nil

	case key.Matches(msg, m.keys.Listen):
		if m.wantListen {
			m.wantListen = false
			m.unlisten()
		} else {
			m.wantListen = true
			m.listen()
		}
		return m, nil

	case key.Matches(msg, m.keys.Status):
		return m, m.fetchStatus()
	}

	return m, nil
}

func (m *Model) query() {
	if _, err := m.ws.GetNetworkType(); err != nil {
		m.history.Add(history.KindErr, fmt.Sprintf("getNetworkType: %v", err))
	}
}

func (m *Model) listen() {
	id, err := m.ws.Subscribe()
	if err != nil {
		m.history.Add(history.KindErr, fmt.Sprintf("listen: %v", err))
		return
	}
	m.pendingListen = id
}

func (m *Model) unlisten() {
	id, err := m.ws.Unsubscribe()
	if err != nil {
		m.history.Add(history.KindErr, fmt.Sprintf("cancel: %v", err))
		m.setListening(false)
		return
	}
	m.pendingCancel = id
}

func (m *Model) setListening(on bool) {
	m.listening = on
	m.statusBar.Listening = on
}

func (m Model) fetchStatus() tea.Cmd {
	hc := m.http
	return func() tea.Msg {
		st, err := hc.GetStatus()
		return hostStatusMsg{status: st, err: err}
	}
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var main string
	if !m.connected {
		main = m.renderDisconnected()
	} else {
		main = m.renderCurrent()
	}

	used := lipgloss.Height(m.statusBar.View()) + lipgloss.Height(main) + 1
	sections := []string{
		m.statusBar.View(),
		main,
		m.history.View(m.width, m.height-used),
		theme.StyleDimmed.Render(m.keys.helpLine()),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderCurrent() string {
	body := theme.StyleDimmed.Render("waiting for the first report")
	if m.statusBar.Known {
		body = theme.CategoryBadge(m.statusBar.Current)
	}
	hint := "press l to listen for changes"
	if m.listening {
		hint = fmt.Sprintf("listening, %d reports", m.history.Changes)
	}
	return theme.StyleBorder.
		Width(max(m.width-4, 20)).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			theme.StyleHeader.Render("NETWORK"),
			body,
			theme.StyleDimmed.Render(hint),
		))
}

func (m Model) renderDisconnected() string {
	return lipgloss.NewStyle().
		Width(max(m.width-4, 20)).
		Padding(1, 2).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorDanger).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Foreground(theme.ColorDanger).Render("DISCONNECTED"),
			theme.StyleDimmed.Render("Reconnecting to the netmon host..."),
		))
}
