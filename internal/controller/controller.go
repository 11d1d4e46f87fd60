// Package controller wires the monitor, notifier and transport together and
// owns their shutdown order.
package controller

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/config"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/frontend"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/monitor"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/notifier"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/ws"
)

const shutdownTimeout = 5 * time.Second

type Controller struct {
	cfg      *config.Config
	monitor  *monitor.Monitor
	notifier *notifier.Notifier
	hub      *ws.Hub
	httpSrv  *http.Server
}

func New(cfg *config.Config, classifier netstate.Classifier) *Controller {
	mon := monitor.NewMonitor(classifier, cfg.Monitor.PollInterval)
	n := notifier.New(classifier, mon)
	hub := ws.NewHub(cfg.Server.MaxConnections)
	server := ws.NewServer(cfg, n, hub)
	server.SetFrontend(frontend.Handler())

	return &Controller{
		cfg:      cfg,
		monitor:  mon,
		notifier: n,
		hub:      hub,
		httpSrv: &http.Server{
			Handler:           server.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (c *Controller) Notifier() *notifier.Notifier { return c.notifier }

// Run listens on the configured address and serves until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", c.cfg.Addr())
	if err != nil {
		return err
	}
	return c.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done or the server fails, then shuts
// everything down. A clean shutdown returns nil.
func (c *Controller) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.httpSrv.Serve(ln)
	}()
	log.Printf("Server listening on %s", ln.Addr())

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		log.Println("Shutting down...")
	}
	c.shutdown()
	if err == nil {
		err = <-errCh
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// shutdown stops accepting requests, drops WebSocket clients and finally
// joins the poll loop, so no event is produced for a closed connection.
func (c *Controller) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := c.httpSrv.Shutdown(ctx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	c.hub.CloseAll()
	c.notifier.Shutdown()
	log.Println("Shutdown complete")
}
