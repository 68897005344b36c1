package entity

// Kind names what a notification reports.
type Kind string

const (
	KindMove    Kind = "move"
	KindWin     Kind = "win"
	KindDraw    Kind = "draw"
	KindRestart Kind = "restart"
)

// Cue is a named effect a view may play, such as a sound.
type Cue string

const (
	CueMove Cue = "move"
	CueWin  Cue = "win"
)

// NoCell marks notifications that are not about a single cell.
const NoCell = -1

// Notification describes the result of a single engine call.
type Notification struct {
	Kind   Kind   `json:"kind"`
	Cell   int    `json:"cell"`
	Mark   Mark   `json:"mark,omitempty"`
	Turn   Mark   `json:"turn"`
	Status Status `json:"status"`
	Line   *Line  `json:"line,omitempty"`
	Tally  Tally  `json:"tally"`
	Cues   []Cue  `json:"cues,omitempty"`
}

// HasCue reports whether the notification carries cue.
func (that Notification) HasCue(cue Cue) bool {
	for _, c := range that.Cues {
		if c == cue {
			return true
		}
	}

	return false
}
