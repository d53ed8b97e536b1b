package match

import "encoding/json"

// Inbound message types.
const (
	TypeJoin  = "join"
	TypeMove  = "move"
	TypeLeave = "leave"
)

// Outbound message types.
const (
	TypeInfo   = "info"
	TypePaired = "paired"
)

// Status texts sent with info messages.
const (
	TextQueued               = "Joined queue. Waiting for opponent..."
	TextOpponentDisconnected = "Opponent disconnected."
)

// Inbound is a decoded client message. Move fields are kept as raw JSON so
// they can be relayed without interpretation.
type Inbound struct {
	Type      string
	Preferred string
	From      json.RawMessage
	To        json.RawMessage
	Promotion json.RawMessage
}

// DecodeInbound parses a client frame. Only a frame that is not a JSON
// object is an error. Keys match exactly, and type or preferred values that
// are not strings read as empty, so the frame is ignored or the preference
// falls back to random.
func DecodeInbound(data []byte) (Inbound, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Inbound{}, err
	}
	return Inbound{
		Type:      stringField(fields["type"]),
		Preferred: stringField(fields["preferred"]),
		From:      fields["from"],
		To:        fields["to"],
		Promotion: fields["promotion"],
	}, nil
}

func stringField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// InfoMessage carries a human readable status.
type InfoMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PairedMessage tells a client it has an opponent and which side it plays.
type PairedMessage struct {
	Type  string `json:"type"`
	Color Color  `json:"color"`
}

// MoveMessage is an opponent's move, relayed verbatim.
type MoveMessage struct {
	Type      string          `json:"type"`
	From      json.RawMessage `json:"from,omitempty"`
	To        json.RawMessage `json:"to,omitempty"`
	Promotion json.RawMessage `json:"promotion,omitempty"`
}

func encode(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

func infoFrame(text string) []byte {
	return encode(InfoMessage{Type: TypeInfo, Text: text})
}

func pairedFrame(color Color) []byte {
	return encode(PairedMessage{Type: TypePaired, Color: color})
}

func moveFrame(msg Inbound) []byte {
	return encode(MoveMessage{
		Type:      TypeMove,
		From:      msg.From,
		To:        msg.To,
		Promotion: msg.Promotion,
	})
}
