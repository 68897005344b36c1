package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-hotseat/transport/session"
)

const (
	actionConnect     = "connect"
	actionGameTurn    = "game:turn"
	actionGameRestart = "game:restart"

	actionGameState = "game:state"
	actionError     = "error"
)

// Message is a frame exchanged with a client.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Request is the payload a client sends.
type Request struct {
	Session string `json:"session,omitempty"`
	Cell    *int   `json:"cell,omitempty"`
}

// Response is the payload the server sends. Error is set only on "error"
// messages.
type Response struct {
	*session.View

	Error string `json:"error,omitempty"`
}

type reply struct {
	Action  string   `json:"action"`
	Payload Response `json:"payload"`
}
