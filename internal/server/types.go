// Package server defines the frames exchanged between client pumps and the
// hub loop, plus small helpers shared by both.
package server

import (
	"strings"

	"github.com/Tyrowin/gochess/internal/match"
)

// inboundFrame is a raw client frame waiting to be handled by the hub loop.
type inboundFrame struct {
	client  *Client
	payload []byte
}

// statsRequest asks the hub loop for a lobby snapshot.
type statsRequest struct {
	reply chan match.Stats
}

// isExpectedCloseError checks if an error is expected during connection closure.
func isExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "websocket: close sent") ||
		strings.Contains(errStr, "broken pipe")
}
