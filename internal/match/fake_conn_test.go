package match

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	id         ConnID
	open       bool
	frames     [][]byte
	pings      int
	closed     int
	terminated int
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: ConnID(id), open: true}
}

func (c *fakeConn) ID() ConnID { return c.id }

func (c *fakeConn) Send(payload []byte) {
	if !c.open {
		return
	}
	c.frames = append(c.frames, payload)
}

func (c *fakeConn) Ping() { c.pings++ }

func (c *fakeConn) Close() {
	c.closed++
	c.open = false
}

func (c *fakeConn) Terminate() {
	c.terminated++
	c.open = false
}

func (c *fakeConn) Open() bool { return c.open }

// messages decodes every frame received so far.
func (c *fakeConn) messages(t *testing.T) []map[string]any {
	t.Helper()
	out := make([]map[string]any, 0, len(c.frames))
	for _, f := range c.frames {
		var m map[string]any
		require.NoError(t, json.Unmarshal(f, &m))
		out = append(out, m)
	}
	return out
}

func (c *fakeConn) last(t *testing.T) map[string]any {
	t.Helper()
	msgs := c.messages(t)
	require.NotEmpty(t, msgs)
	return msgs[len(msgs)-1]
}

func (c *fakeConn) reset() {
	c.frames = nil
}

type recordingObserver struct {
	started []MatchStarted
	ended   []MatchEnded
}

func (o *recordingObserver) MatchStarted(e MatchStarted) { o.started = append(o.started, e) }

func (o *recordingObserver) MatchEnded(e MatchEnded) { o.ended = append(o.ended, e) }

// connect registers one fake connection per name.
func connect(l *Lobby, names ...string) map[string]*fakeConn {
	conns := make(map[string]*fakeConn, len(names))
	for _, name := range names {
		c := newFakeConn(name)
		l.Connect(c)
		conns[name] = c
	}
	return conns
}

func alwaysWhite() bool { return true }

func alwaysBlack() bool { return false }
