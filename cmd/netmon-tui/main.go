package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/app"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/client"
)

func main() {
	wsURL := flag.String("url", "ws://127.0.0.1:8787/ws", "WebSocket URL of the netmon host")
	token := flag.String("token", "", "Auth token (if the host requires it)")
	logFile := flag.String("log", "", "Write client logs to this file")
	defaults := client.DefaultChannels()
	methodChannel := flag.String("method-channel", defaults.Method, "Method channel name configured on the host")
	eventChannel := flag.String("event-channel", defaults.Events, "Event channel name configured on the host")
	flag.Parse()

	// The alt screen owns the terminal; client logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "netmon-tui")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	ws := client.NewWSClient(*wsURL, *token, client.Channels{Method: *methodChannel, Events: *eventChannel})
	defer ws.Close()
	httpClient := client.NewHTTPClient(deriveHTTPBase(*wsURL), *token)

	p := tea.NewProgram(app.New(ws, httpClient), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// deriveHTTPBase converts ws://host:port/ws → http://host:port
func deriveHTTPBase(wsURL string) string {
	u, err := url.Parse(wsURL)
	if err != nil {
		return "http://127.0.0.1:8787"
	}
	scheme := "http"
	if strings.HasPrefix(u.Scheme, "wss") {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, u.Host)
}
