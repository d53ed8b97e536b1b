// Package server implements the HTTP and WebSocket transport for GoChess.
//
// A single Hub goroutine owns the match.Lobby: client pumps hand it
// registrations, frames, pong acknowledgments and close events over
// channels, and a heartbeat ticker in the same loop drives liveness. The
// rest of the package covers configuration, origin checks, routing and the
// built-in play page.
package server
