package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/config"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/notifier"
)

const maxFrameSize = 4096

type Server struct {
	notifier       *notifier.Notifier
	hub            *Hub
	channels       config.ChannelsConfig
	allowedOrigins map[string]bool
	allowedHosts   map[string]bool
	authToken      string
	frontend       http.Handler
}

func NewServer(cfg *config.Config, n *notifier.Notifier, hub *Hub) *Server {
	s := &Server{
		notifier:       n,
		hub:            hub,
		channels:       cfg.Channels,
		allowedOrigins: make(map[string]bool),
		allowedHosts:   make(map[string]bool),
		authToken:      cfg.Server.AuthToken,
	}

	for _, origin := range cfg.Server.AllowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		s.allowedOrigins[trimmed] = true
		if parsed, err := url.Parse(trimmed); err == nil && parsed.Host != "" {
			s.allowedHosts[parsed.Host] = true
		}
	}

	return s
}

// SetFrontend configures the handler for the browser status page.
// Must be called before SetupRoutes.
func (s *Server) SetFrontend(h http.Handler) {
	s.frontend = h
}

func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/network", s.handleNetwork)
	mux.HandleFunc("/api/network/status", s.handleStatus)

	if s.frontend != nil {
		log.Println("Serving embedded status page")
		mux.Handle("/", s.frontend)
	}
}

// Handler returns the routed mux wrapped with the security headers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.SetupRoutes(mux)
	return securityHeaders(mux)
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Content-Security-Policy", "default-src 'self'")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	c, err := s.hub.AddClient(conn, r.RemoteAddr)
	if err != nil {
		log.Printf("ws rejecting %s: %v", r.RemoteAddr, err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()))
		conn.Close()
		return
	}
	log.Printf("WebSocket client connected: %s", r.RemoteAddr)

	sess := &channelSession{
		c:        c,
		notifier: s.notifier,
		method:   s.channels.Method,
		events:   s.channels.Events,
	}

	go func() {
		defer func() {
			sess.cancel()
			s.hub.RemoveClient(c)
			log.Printf("WebSocket client disconnected: %s", r.RemoteAddr)
		}()
		conn.SetReadLimit(maxFrameSize)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			sess.handleFrame(data)
		}
	}()
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		NetworkType netstate.Category `json:"networkType"`
	}{s.notifier.Query()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.notifier.Status())
}

func (s *Server) authorize(r *http.Request) bool {
	if s.authToken == "" {
		return true
	}

	if r.URL.Query().Get("token") == s.authToken {
		return true
	}

	if r.Header.Get("X-Netmon-Token") == s.authToken {
		return true
	}

	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.authToken {
		return true
	}

	return false
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}

	if len(s.allowedOrigins) > 0 {
		return s.allowedOrigins[origin] || s.allowedHosts[parsed.Host]
	}

	host := parsed.Host
	if host == r.Host {
		return true
	}
	switch parsed.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
