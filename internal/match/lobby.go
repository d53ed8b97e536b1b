package match

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ConnID identifies one client connection for its whole lifetime.
type ConnID string

// NewConnID returns a fresh random identifier.
func NewConnID() ConnID {
	return ConnID(uuid.NewString())
}

// Conn is the lobby's view of a client channel. Send, Ping, Close and
// Terminate must not block and must never fail loudly: a send to a dead
// peer is simply lost.
type Conn interface {
	ID() ConnID
	// Send queues a JSON frame for the client.
	Send(payload []byte)
	// Ping queues a liveness probe.
	Ping()
	// Close starts a graceful close, as requested by the client.
	Close()
	// Terminate drops the connection without a close handshake.
	Terminate()
	// Open reports whether frames can still be delivered.
	Open() bool
}

type player struct {
	conn      Conn
	preferred Preference
	alive     bool
}

// Stats is a point in time view of the lobby.
type Stats struct {
	Connections   int `json:"connections"`
	Waiting       int `json:"waiting"`
	ActiveMatches int `json:"active_matches"`
}

// Lobby pairs waiting players and relays moves between matched ones.
type Lobby struct {
	players  map[ConnID]*player
	pool     *Pool
	registry *Registry
	observer Observer
	coin     func() bool
	matchID  func() string
	now      func() time.Time
}

// Option customises a Lobby.
type Option func(*Lobby)

// WithObserver sets the receiver of match lifecycle notifications.
func WithObserver(o Observer) Option {
	return func(l *Lobby) {
		if o != nil {
			l.observer = o
		}
	}
}

// WithCoin replaces the fair coin used when preferences do not decide the
// colors. It returns true when the older player should take white.
func WithCoin(coin func() bool) Option {
	return func(l *Lobby) {
		if coin != nil {
			l.coin = coin
		}
	}
}

// WithMatchIDs replaces the match id generator.
func WithMatchIDs(next func() string) Option {
	return func(l *Lobby) {
		if next != nil {
			l.matchID = next
		}
	}
}

// WithClock replaces time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Lobby) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLobby returns an empty lobby.
func NewLobby(opts ...Option) *Lobby {
	l := &Lobby{
		players:  make(map[ConnID]*player),
		pool:     NewPool(),
		registry: NewRegistry(),
		observer: NopObserver{},
		coin:     func() bool { return rand.Intn(2) == 0 },
		matchID:  uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Connect registers a new connection as alive. Connecting an id twice
// replaces the stored connection.
func (l *Lobby) Connect(c Conn) {
	l.players[c.ID()] = &player{
		conn:      c,
		preferred: PreferRandom,
		alive:     true,
	}
}

// Handle decodes one client frame and dispatches it. It returns the decode
// error for malformed frames, which callers are expected to drop. Unknown
// message types are ignored.
func (l *Lobby) Handle(id ConnID, data []byte) error {
	msg, err := DecodeInbound(data)
	if err != nil {
		return err
	}

	switch msg.Type {
	case TypeJoin:
		l.Join(id, ParsePreference(msg.Preferred))
	case TypeMove:
		l.Move(id, msg)
	case TypeLeave:
		l.Leave(id)
	}
	return nil
}

// Join queues id for a match and pairs everyone who can be paired. A join
// from a connection that is already waiting or playing is ignored.
func (l *Lobby) Join(id ConnID, preferred Preference) {
	p, ok := l.players[id]
	if !ok {
		return
	}
	if l.pool.Contains(id) {
		return
	}
	if _, playing := l.registry.Lookup(id); playing {
		return
	}

	p.preferred = preferred
	l.pool.Enqueue(id)
	p.conn.Send(infoFrame(TextQueued))
	l.tryMatch()
}

// tryMatch drains the pool two at a time, oldest first.
func (l *Lobby) tryMatch() {
	for l.pool.Len() >= 2 {
		a, _ := l.pool.DequeueFront()
		b, _ := l.pool.DequeueFront()

		pa, pb := l.players[a], l.players[b]
		switch {
		case pa == nil && pb == nil:
			continue
		case pa == nil:
			l.pool.PushFront(b)
			continue
		case pb == nil:
			l.pool.PushFront(a)
			continue
		}

		colorA, colorB := AssignColors(pa.preferred, pb.preferred, l.coin)
		matchID := l.matchID()
		l.registry.Install(a, b, colorA, colorB, matchID)

		pa.conn.Send(pairedFrame(colorA))
		pb.conn.Send(pairedFrame(colorB))

		started := MatchStarted{MatchID: matchID, StartedAt: l.now()}
		if colorA == White {
			started.White, started.Black = a, b
		} else {
			started.White, started.Black = b, a
		}
		l.observer.MatchStarted(started)
	}
}

// Move relays a move from id to its opponent. Moves from unmatched
// connections are dropped.
func (l *Lobby) Move(id ConnID, msg Inbound) {
	s, ok := l.registry.Lookup(id)
	if !ok {
		return
	}
	opponent, ok := l.players[s.Opponent]
	if !ok || !opponent.conn.Open() {
		return
	}
	opponent.conn.Send(moveFrame(msg))
}

// Leave closes id's connection at the client's request and cleans up.
func (l *Lobby) Leave(id ConnID) {
	p, ok := l.players[id]
	if !ok {
		return
	}
	p.conn.Close()
	l.disconnect(id, ReasonLeave)
}

// Disconnect removes every trace of id. The opponent of a matched
// connection is told and unregistered. Calling it for an unknown id is a
// no-op, so transport close events that follow a Leave or a liveness
// eviction do nothing.
func (l *Lobby) Disconnect(id ConnID) {
	l.disconnect(id, ReasonDisconnect)
}

func (l *Lobby) disconnect(id ConnID, reason string) {
	if _, ok := l.players[id]; !ok {
		return
	}
	delete(l.players, id)
	l.pool.Remove(id)

	s, matched := l.registry.Lookup(id)
	if matched {
		if opponent, ok := l.players[s.Opponent]; ok && opponent.conn.Open() {
			opponent.conn.Send(infoFrame(TextOpponentDisconnected))
			l.registry.Remove(s.Opponent)
		}
	}
	l.registry.Remove(id)

	if matched {
		l.observer.MatchEnded(MatchEnded{
			MatchID: s.MatchID,
			Left:    id,
			Reason:  reason,
			EndedAt: l.now(),
		})
	}
}

// Session returns the match state of id, if any.
func (l *Lobby) Session(id ConnID) (Session, bool) {
	return l.registry.Lookup(id)
}

// Waiting reports whether id is in the pool.
func (l *Lobby) Waiting(id ConnID) bool {
	return l.pool.Contains(id)
}

// Connected reports whether id is known to the lobby.
func (l *Lobby) Connected(id ConnID) bool {
	_, ok := l.players[id]
	return ok
}

// Stats returns connection, queue and match counts.
func (l *Lobby) Stats() Stats {
	return Stats{
		Connections:   len(l.players),
		Waiting:       l.pool.Len(),
		ActiveMatches: l.registry.Matches(),
	}
}
