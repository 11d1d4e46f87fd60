package controller

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/config"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/mock"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
)

func TestServeAndShutdown(t *testing.T) {
	cfg := config.Default()
	cfg.Monitor.PollInterval = time.Millisecond
	c := New(cfg, mock.NewScript(netstate.Wifi))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/network")
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	resp.Body.Close()
	if body["networkType"] != "wifi" {
		t.Errorf("body = %v", body)
	}

	page, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatal(err)
	}
	page.Body.Close()
	if page.StatusCode != http.StatusOK {
		t.Errorf("GET / status = %d", page.StatusCode)
	}

	if _, err := c.Notifier().Listen("test"); err != nil {
		t.Fatal(err)
	}
	if !c.monitor.Running() {
		t.Fatal("monitor not running after Listen")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	if c.monitor.Running() {
		t.Error("monitor still running after shutdown")
	}
	if c.Notifier().Active() != nil {
		t.Error("subscription still active after shutdown")
	}
}

func TestRunBadAddress(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Host = "256.0.0.1"
	c := New(cfg, mock.NewScript())
	if err := c.Run(context.Background()); err == nil {
		t.Fatal("Run() on an invalid address should fail")
	}
}
