// Package server manages individual WebSocket clients, handling read/write
// pumps, rate limiting, and lifecycle control for each connection.
package server

import (
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Tyrowin/gochess/internal/match"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 256
)

// Client represents one player's WebSocket connection. It implements
// match.Conn; those methods are only called from the hub loop, which also
// owns the closed flag.
type Client struct {
	id             match.ConnID
	conn           *websocket.Conn
	send           chan []byte
	ping           chan struct{}
	hub            *Hub
	addr           string
	closed         bool
	closeOnce      sync.Once
	maxMessageSize int64
	budget         *frameBudget
	rateLimit      RateLimitConfig
}

var _ match.Conn = (*Client)(nil)

// NewClient creates a new Client instance with the provided WebSocket connection,
// hub reference, and client address. The client's send channel is buffered
// to handle message queuing.
func NewClient(conn *websocket.Conn, hub *Hub, addr string) *Client {
	cfg := currentConfig()
	if conn != nil {
		conn.SetReadLimit(cfg.MaxMessageSize)
	}

	return &Client{
		id:             match.NewConnID(),
		conn:           conn,
		send:           make(chan []byte, sendBufferSize),
		ping:           make(chan struct{}, 1),
		hub:            hub,
		addr:           addr,
		maxMessageSize: cfg.MaxMessageSize,
		budget:         newFrameBudget(cfg.RateLimit, time.Now),
		rateLimit:      cfg.RateLimit,
	}
}

// ID returns the connection identifier used by the lobby.
func (c *Client) ID() match.ConnID {
	return c.id
}

// Send queues payload for the write pump. Frames for a closed client or a
// client with a full buffer are dropped.
func (c *Client) Send(payload []byte) {
	if c.closed || payload == nil {
		return
	}
	select {
	case c.send <- payload:
	default:
		log.Printf("Send buffer full for %s; dropping message", c.addr)
	}
}

// Ping asks the write pump to send a liveness probe. At most one probe is
// pending at a time.
func (c *Client) Ping() {
	if c.closed {
		return
	}
	select {
	case c.ping <- struct{}{}:
	default:
	}
}

// Close starts a graceful close: the write pump sends a close frame and
// shuts the socket, which ends the read pump.
func (c *Client) Close() {
	c.markClosed()
}

// Terminate drops the socket immediately without a close handshake.
func (c *Client) Terminate() {
	c.markClosed()
	if c.conn == nil {
		return
	}
	if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
		log.Printf("Error terminating connection from %s: %v", c.addr, err)
	}
}

// Open reports whether frames can still be queued for this client.
func (c *Client) Open() bool {
	return !c.closed
}

func (c *Client) markClosed() {
	c.closeOnce.Do(func() {
		c.closed = true
		close(c.send)
	})
}

// setupReadConnection installs the pong handler that feeds probe
// acknowledgments back into the hub loop.
func (c *Client) setupReadConnection() {
	c.conn.SetPongHandler(func(string) error {
		c.hub.acknowledge(c.id)
		return nil
	})
}

// handleReadError logs appropriate error messages based on the error type
// and returns true if the read loop should break
func (c *Client) handleReadError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, websocket.ErrReadLimit) {
		log.Printf("Message from %s exceeded maximum size of %d bytes", c.addr, c.maxMessageSize)
		return true
	}

	if websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure) {
		log.Printf("Client %s disconnected: %v", c.addr, err)
		return true
	}

	if errors.Is(err, io.EOF) || isExpectedCloseError(err) {
		log.Printf("Client %s connection closed: %v", c.addr, err)
		return true
	}

	if websocket.IsUnexpectedCloseError(err,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure,
		websocket.CloseMessageTooBig) {
		log.Printf("Unexpected WebSocket error from %s: %v", c.addr, err)
		return true
	}

	log.Printf("WebSocket read error from %s: %v", c.addr, err)
	return true
}

// withinBudget reports whether the next frame may reach the lobby. Frames
// over budget are dropped and the connection stays open.
func (c *Client) withinBudget() bool {
	if c.budget != nil && !c.budget.spend() {
		log.Printf("Player %s sent more than %d frames per %s; dropping frame", c.addr, c.rateLimit.Burst, c.rateLimit.RefillInterval)
		return false
	}
	return true
}

func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		if err := c.conn.Close(); err != nil {
			if !isExpectedCloseError(err) {
				log.Printf("Error closing connection in readPump: %v", err)
			}
		}
	}()

	c.setupReadConnection()

	for {
		_, rawMessage, err := c.conn.ReadMessage()
		if c.handleReadError(err) {
			return
		}

		if !c.withinBudget() {
			continue
		}

		if !c.hub.deliver(inboundFrame{client: c, payload: rawMessage}) {
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.closeConnection()

	for c.processWriteEvent() {
	}
}

// processWriteEvent waits for the next write event and returns false when the
// pump should stop processing.
func (c *Client) processWriteEvent() bool {
	select {
	case message, ok := <-c.send:
		if !ok {
			return c.writeCloseMessage()
		}
		return c.writeTextMessage(message)
	case <-c.ping:
		return c.handlePing()
	}
}

// closeConnection safely closes the WebSocket connection with proper error handling
func (c *Client) closeConnection() {
	if err := c.conn.Close(); err != nil {
		if !isExpectedCloseError(err) {
			log.Printf("Error closing connection in writePump: %v", err)
		}
	}
}

// writeCloseMessage sends a normal close frame to the client
func (c *Client) writeCloseMessage() bool {
	deadline := time.Now().Add(time.Second)
	err := c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	if err != nil && !isExpectedCloseError(err) {
		log.Printf("Error writing close message to %s: %v", c.addr, err)
	}
	return false
}

// writeTextMessage writes one JSON frame
func (c *Client) writeTextMessage(message []byte) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Error setting write deadline for %s: %v", c.addr, err)
		return false
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		if !isExpectedCloseError(err) {
			log.Printf("Error writing message to %s: %v", c.addr, err)
		}
		return false
	}
	return true
}

// handlePing sends a liveness probe; the pong comes back through the read pump
func (c *Client) handlePing() bool {
	if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
		if !isExpectedCloseError(err) {
			log.Printf("Error writing ping message to %s: %v", c.addr, err)
		}
		return false
	}
	return true
}
