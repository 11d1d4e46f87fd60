package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/config"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/controller"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/mock"
	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
)

func main() {
	mockMode := flag.Bool("mock", false, "Use a simulated roaming network instead of the OS")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "Override server port")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}

	var classifier netstate.Classifier
	if *mockMode {
		log.Println("Starting in mock mode")
		classifier = mock.NewGenerator(time.Now().UnixNano(), 4*time.Second, 12*time.Second)
	} else {
		classifier, err = netstate.New(cfg.Monitor.Classifier)
		if err != nil {
			log.Fatalf("Failed to create classifier: %v", err)
		}
		log.Printf("Starting in real mode (classifier=%s)", netstate.ResolveMode(cfg.Monitor.Classifier))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := controller.New(cfg, classifier).Run(ctx); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}
