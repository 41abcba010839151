// Package netsync replicates snake snapshots between game clients through a
// websocket relay. The relay is dumb: it stamps each message with the
// sender's participant ID and forwards it to every other participant.
package netsync

import (
	"encoding/json"
	"errors"
	"fmt"

	"snakenet/internal/engine"
)

var (
	ErrClosed     = errors.New("netsync: connection closed")
	ErrBadMessage = errors.New("netsync: bad message")
	ErrQueueFull  = errors.New("netsync: send queue full")
)

type MsgType string

const (
	MsgWelcome  MsgType = "welcome"  // relay -> client: assigned participant ID and roster
	MsgHello    MsgType = "hello"    // client -> relay -> peers: snakes owned by a participant
	MsgBye      MsgType = "bye"      // relay -> peers: participant left
	MsgSnapshot MsgType = "snapshot" // client -> relay -> peers
)

// Message is the JSON envelope of every relay message.
type Message struct {
	Type     MsgType       `json:"type"`
	Client   string        `json:"client,omitempty"`
	Snakes   []string      `json:"snakes,omitempty"`
	Snake    string        `json:"snake,omitempty"`
	Snapshot *WireSnapshot `json:"snapshot,omitempty"`
}

// WireSnapshot is engine.Snapshot as sent on the wire.
type WireSnapshot struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
	Head    int     `json:"head"`
	Tail    int     `json:"tail"`
	State   int     `json:"state"`
	Tick    uint64  `json:"tick"`
}

func ToWire(s engine.Snapshot) *WireSnapshot {
	return &WireSnapshot{
		X:       s.Head.X,
		Y:       s.Head.Y,
		Heading: s.Head.Heading,
		Head:    s.HeadIndex,
		Tail:    s.TailIndex,
		State:   int(s.State),
		Tick:    s.Tick,
	}
}

func (w *WireSnapshot) Engine() engine.Snapshot {
	return engine.Snapshot{
		Head:      engine.Segment{X: w.X, Y: w.Y, Heading: w.Heading},
		HeadIndex: w.Head,
		TailIndex: w.Tail,
		State:     engine.State(w.State),
		Tick:      w.Tick,
	}
}

func Encode(m Message) ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses and checks a message. Range checks of snapshot indices are
// left to engine.Remote.
func Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	switch m.Type {
	case MsgWelcome, MsgHello, MsgBye:
	case MsgSnapshot:
		if m.Snake == "" || m.Snapshot == nil {
			return Message{}, fmt.Errorf("%w: snapshot without snake or payload", ErrBadMessage)
		}
	default:
		return Message{}, fmt.Errorf("%w: unknown type %q", ErrBadMessage, m.Type)
	}
	return m, nil
}

func mustEncode(m Message) []byte {
	data, err := Encode(m)
	if err != nil {
		panic(fmt.Sprintf("netsync: encode %s: %v", m.Type, err))
	}
	return data
}
