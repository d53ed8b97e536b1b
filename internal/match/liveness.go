package match

import "time"

// DefaultHeartbeat is the interval between liveness ticks.
const DefaultHeartbeat = 30 * time.Second

// Ack records a probe acknowledgment from id.
func (l *Lobby) Ack(id ConnID) {
	if p, ok := l.players[id]; ok {
		p.alive = true
	}
}

// Tick runs one liveness cycle. A connection that has not acknowledged the
// probe sent on the previous tick is terminated and cleaned up; every other
// open connection is marked pending and probed again.
func (l *Lobby) Tick() (evicted []ConnID) {
	ids := make([]ConnID, 0, len(l.players))
	for id := range l.players {
		ids = append(ids, id)
	}

	for _, id := range ids {
		p, ok := l.players[id]
		if !ok || !p.conn.Open() {
			continue
		}
		if !p.alive {
			p.conn.Terminate()
			l.disconnect(id, ReasonTimeout)
			evicted = append(evicted, id)
			continue
		}
		p.alive = false
		p.conn.Ping()
	}
	return evicted
}
