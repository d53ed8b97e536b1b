// Package events publishes match lifecycle notifications to NATS so other
// services can follow what happens in the lobby.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Tyrowin/gochess/internal/match"
)

// Subject suffixes appended to the configured prefix.
const (
	SubjectMatchStarted = "match.started"
	SubjectMatchEnded   = "match.ended"
)

// publisher is the subset of *nats.Conn used here.
type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher implements match.Observer on top of a core NATS connection.
// Publishing is fire-and-forget: failures are logged and dropped so a broken
// broker never affects pairing.
type NATSPublisher struct {
	conn   publisher
	prefix string
	closer func()
}

var _ match.Observer = (*NATSPublisher)(nil)

// Connect dials url and returns a publisher that prefixes every subject with
// prefix.
func Connect(url, prefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(
		url,
		nats.Name("gochess"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.PingInterval(20*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}

	p := newPublisher(conn, prefix)
	p.closer = func() {
		if err := conn.Drain(); err != nil {
			log.Printf("Error draining NATS connection: %v", err)
		}
	}
	return p, nil
}

func newPublisher(conn publisher, prefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix}
}

// Subject returns the full subject for suffix.
func (p *NATSPublisher) Subject(suffix string) string {
	if p.prefix == "" {
		return suffix
	}
	return p.prefix + "." + suffix
}

// MatchStarted publishes e on <prefix>.match.started.
func (p *NATSPublisher) MatchStarted(e match.MatchStarted) {
	p.publish(SubjectMatchStarted, e)
}

// MatchEnded publishes e on <prefix>.match.ended.
func (p *NATSPublisher) MatchEnded(e match.MatchEnded) {
	p.publish(SubjectMatchEnded, e)
}

func (p *NATSPublisher) publish(suffix string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error encoding %s event: %v", suffix, err)
		return
	}
	subject := p.Subject(suffix)
	if err := p.conn.Publish(subject, data); err != nil {
		log.Printf("Error publishing to %s: %v", subject, err)
	}
}

// Close flushes pending events and closes the connection.
func (p *NATSPublisher) Close() {
	if p.closer != nil {
		p.closer()
	}
}
