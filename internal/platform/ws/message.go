// Package ws serves the match-3 engine over a websocket: each connection
// plays its own board by sending JSON swap requests and receives the
// engine's effect log back.
package ws

import (
	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/match3"
)

// MessageType names a message on the socket.
type MessageType string

// Client requests. A hint request is answered with a hint message.
const (
	TypeNew  MessageType = "new"
	TypeSwap MessageType = "swap"
	TypeHint MessageType = "hint"
)

// Server responses.
const (
	TypeBoard  MessageType = "board"
	TypeResult MessageType = "result"
	TypeError  MessageType = "error"
)

// Message is the single envelope for both directions. Fields not used by
// a type are omitted.
type Message struct {
	Type MessageType `json:"type"`

	// new
	Seed   int64 `json:"seed,omitempty"`
	Width  int   `json:"width,omitempty"`
	Height int   `json:"height,omitempty"`
	Kinds  int   `json:"kinds,omitempty"`

	// swap
	A *match3.Position `json:"a,omitempty"`
	B *match3.Position `json:"b,omitempty"`

	// responses
	Legal   *bool                     `json:"legal,omitempty"`
	Effects []match3.Effect[gems.Gem] `json:"effects,omitempty"`
	Board   *gems.Board               `json:"board,omitempty"`
	Swap    *match3.Swap              `json:"swap,omitempty"`
	Points  int                       `json:"points,omitempty"`
	Score   int                       `json:"score,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

func errorMessage(err error) Message {
	return Message{Type: TypeError, Error: err.Error()}
}
