package match

// Session is one side of an active match.
type Session struct {
	MatchID  string
	Opponent ConnID
	Color    Color
}

// Registry maps each matched connection to its session. Entries are
// written in symmetric pairs by Install but removed one side at a time.
type Registry struct {
	sessions map[ConnID]Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[ConnID]Session)}
}

// Install records a match between a and b, overwriting any previous entry
// for either side.
func (r *Registry) Install(a, b ConnID, colorA, colorB Color, matchID string) {
	r.sessions[a] = Session{MatchID: matchID, Opponent: b, Color: colorA}
	r.sessions[b] = Session{MatchID: matchID, Opponent: a, Color: colorB}
}

// Lookup returns the session for id. A missing entry is normal, e.g. for a
// connection still waiting in the pool.
func (r *Registry) Lookup(id ConnID) (Session, bool) {
	s, ok := r.sessions[id]
	return s, ok
}

// Remove deletes the entry for id only. The opponent's entry is left to the
// caller.
func (r *Registry) Remove(id ConnID) {
	delete(r.sessions, id)
}

// Len returns the number of entries, which is twice the number of complete
// matches.
func (r *Registry) Len() int {
	return len(r.sessions)
}

// Matches returns the number of distinct matches that still have at least
// one side registered.
func (r *Registry) Matches() int {
	seen := make(map[string]struct{}, len(r.sessions)/2)
	for _, s := range r.sessions {
		seen[s.MatchID] = struct{}{}
	}
	return len(seen)
}
