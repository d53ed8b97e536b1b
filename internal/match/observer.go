package match

import "time"

// End reasons reported in MatchEnded.
const (
	ReasonDisconnect = "disconnect"
	ReasonLeave      = "leave"
	ReasonTimeout    = "timeout"
)

// MatchStarted describes a newly installed match.
type MatchStarted struct {
	MatchID   string    `json:"match_id"`
	White     ConnID    `json:"white"`
	Black     ConnID    `json:"black"`
	StartedAt time.Time `json:"started_at"`
}

// MatchEnded describes a match torn down because one side went away.
type MatchEnded struct {
	MatchID string    `json:"match_id"`
	Left    ConnID    `json:"left"`
	Reason  string    `json:"reason"`
	EndedAt time.Time `json:"ended_at"`
}

// Observer is notified of match lifecycle changes. Methods are called from
// the lobby's event loop and must not block.
type Observer interface {
	MatchStarted(MatchStarted)
	MatchEnded(MatchEnded)
}

// NopObserver discards every notification.
type NopObserver struct{}

func (NopObserver) MatchStarted(MatchStarted) {}

func (NopObserver) MatchEnded(MatchEnded) {}
