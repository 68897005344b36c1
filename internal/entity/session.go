package entity

// Snapshot is the persisted form of an engine.
type Snapshot struct {
	Board  Board  `json:"board"`
	Turn   Mark   `json:"turn"`
	Status Status `json:"status"`
	Line   *Line  `json:"line,omitempty"`
	Tally  Tally  `json:"tally"`
}

// Session binds a game to the view that owns it. A session lives as long
// as its view: a browser cookie, a websocket client or a terminal.
//
// Version grows by one with every stored change, so views can tell a
// newer game from an older one.
type Session struct {
	ID      string   `json:"id"`
	Version int64    `json:"version"`
	Game    Snapshot `json:"game"`
}

// NewSession returns a session holding a fresh game.
func NewSession(id string) *Session {
	return &Session{
		ID: id,
		Game: Snapshot{
			Turn:   PlayerX,
			Status: InProgress(),
		},
	}
}
