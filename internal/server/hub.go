// Package server coordinates client registration, lobby events, liveness
// probing and connection cleanup for GoChess via the Hub type.
package server

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Tyrowin/gochess/internal/match"
)

// Hub owns the lobby and serializes every event that touches it. Client
// pumps talk to it over channels; nothing else may call into the lobby.
type Hub struct {
	lobby      *match.Lobby
	clients    map[match.ConnID]*Client
	register   chan *Client
	unregister chan *Client
	inbound    chan inboundFrame
	acks       chan match.ConnID
	stats      chan statsRequest
	heartbeat  time.Duration
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewHub creates a hub around a fresh lobby. The heartbeat interval is taken
// from the active configuration.
func NewHub(opts ...match.Option) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		lobby:      match.NewLobby(opts...),
		clients:    make(map[match.ConnID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundFrame),
		acks:       make(chan match.ConnID),
		stats:      make(chan statsRequest),
		heartbeat:  currentConfig().HeartbeatInterval,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

// Register hands a freshly upgraded client to the hub, which starts its
// pumps. It returns false if the hub has already shut down.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.ctx.Done():
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

func (h *Hub) deliver(frame inboundFrame) bool {
	select {
	case h.inbound <- frame:
		return true
	case <-h.ctx.Done():
		return false
	}
}

func (h *Hub) acknowledge(id match.ConnID) {
	select {
	case h.acks <- id:
	case <-h.ctx.Done():
	}
}

// Stats returns a lobby snapshot taken inside the hub loop. The second
// result is false once the hub has stopped.
func (h *Hub) Stats() (match.Stats, bool) {
	req := statsRequest{reply: make(chan match.Stats, 1)}
	select {
	case h.stats <- req:
	case <-h.ctx.Done():
		return match.Stats{}, false
	}
	select {
	case s := <-req.reply:
		return s, true
	case <-h.ctx.Done():
		return match.Stats{}, false
	}
}

// Run starts the hub's main event loop. It handles client registration and
// removal, inbound frames, probe acknowledgments and heartbeat ticks until
// Shutdown is called. It should be run in its own goroutine.
func (h *Hub) Run() {
	defer close(h.done)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			h.shutdownClients()
			return

		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case frame := <-h.inbound:
			if err := h.lobby.Handle(frame.client.id, frame.payload); err != nil {
				log.Printf("Invalid message from %s: %v", frame.client.addr, err)
			}

		case id := <-h.acks:
			h.lobby.Ack(id)

		case req := <-h.stats:
			req.reply <- h.lobby.Stats()

		case <-ticker.C:
			h.handleHeartbeat()
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	if client == nil {
		log.Printf("Received nil client registration; skipping")
		return
	}

	h.clients[client.id] = client
	h.lobby.Connect(client)
	log.Printf("Client %s registered from %s. Total clients: %d", client.id, client.addr, len(h.clients))

	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		client.writePump()
	}()
	go func() {
		defer h.wg.Done()
		client.readPump()
	}()
}

func (h *Hub) handleUnregister(client *Client) {
	if client == nil {
		return
	}
	if _, ok := h.clients[client.id]; !ok {
		return
	}

	delete(h.clients, client.id)
	h.lobby.Disconnect(client.id)
	client.markClosed()
	log.Printf("Client %s unregistered from %s. Total clients: %d", client.id, client.addr, len(h.clients))
}

func (h *Hub) handleHeartbeat() {
	for _, id := range h.lobby.Tick() {
		if client, ok := h.clients[id]; ok {
			log.Printf("Client %s from %s missed a heartbeat; connection terminated", id, client.addr)
		}
	}
}

// shutdownClients gracefully closes all active client connections
func (h *Hub) shutdownClients() {
	log.Println("Shutting down all client connections...")

	for id, client := range h.clients {
		client.Terminate()
		h.lobby.Disconnect(id)
		delete(h.clients, id)
	}

	log.Println("All client connections closed")
}

// Shutdown initiates graceful shutdown of the hub and waits for all goroutines to complete.
// It returns after all client connections are closed and goroutines have finished,
// or when the timeout is reached.
func (h *Hub) Shutdown(timeout time.Duration) error {
	log.Println("Initiating hub shutdown...")

	h.cancel()

	<-h.done

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Hub shutdown completed successfully")
		return nil
	case <-time.After(timeout):
		log.Println("Hub shutdown timeout reached, some goroutines may still be running")
		return context.DeadlineExceeded
	}
}
