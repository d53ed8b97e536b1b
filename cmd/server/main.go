package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tyrowin/gochess/internal/events"
	"github.com/Tyrowin/gochess/internal/match"
	"github.com/Tyrowin/gochess/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.Println("Starting GoChess server...")

	loaded, err := server.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	server.SetConfig(loaded)

	// The active copy has invalid origins dropped.
	config := server.CurrentConfig()
	log.Printf("Allowed origins: %v; heartbeat every %s", config.AllowedOrigins, config.HeartbeatInterval)

	var opts []match.Option
	if config.NATS.URL != "" {
		publisher, err := events.Connect(config.NATS.URL, config.NATS.SubjectPrefix)
		if err != nil {
			log.Printf("Match events disabled: %v", err)
		} else {
			defer publisher.Close()
			opts = append(opts, match.WithObserver(publisher))
			log.Printf("Publishing match events to %s under %q", config.NATS.URL, config.NATS.SubjectPrefix)
		}
	}

	hub := server.NewHub(opts...)
	go hub.Run()

	mux := server.SetupRoutes(hub)
	httpServer := server.CreateServer(config.Port, mux)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.StartServer(httpServer)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("HTTP server failed: %v", err)
		}
	case sig := <-stop:
		log.Printf("Received %s, shutting down", sig)
	}

	if err := server.ShutdownServer(httpServer, shutdownTimeout); err != nil {
		log.Printf("HTTP server did not shut down cleanly: %v", err)
	}
	if err := hub.Shutdown(shutdownTimeout); err != nil {
		log.Printf("Hub did not shut down cleanly: %v", err)
	}
}
