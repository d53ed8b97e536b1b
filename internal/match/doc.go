// Package match implements the pairing and relay engine for gochess.
//
// A Lobby owns the waiting pool, the match registry and the liveness state
// of every connected client. It is not safe for concurrent use: the server
// hub drives it from a single event loop, so every handler observes a fully
// updated pool and registry.
package match
