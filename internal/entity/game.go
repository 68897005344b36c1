package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

// Mark is the content of a board cell and identifies a player.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""
)

// BoardSize is the number of cells on the board.
const BoardSize = 9

// State is the phase of a game.
type State string

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateDraw       State = "draw"
)

// Line is a triple of cell indices.
type Line [3]int

// WinCombos lists the winning lines in evaluation order.
var WinCombos = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board holds the cells in row-major order.
type Board [BoardSize]Mark

// Status is the outcome of a game so far. Winner is set only for StateWon.
type Status struct {
	State  State `json:"state"`
	Winner Mark  `json:"winner,omitempty"`
}

// Tally counts wins per player within a session.
type Tally struct {
	X int `json:"x"`
	O int `json:"o"`
}

func InProgress() Status {
	return Status{State: StateInProgress}
}

func Won(player Mark) Status {
	return Status{State: StateWon, Winner: player}
}

func Draw() Status {
	return Status{State: StateDraw}
}

func (that Status) IsInProgress() bool {
	return that.State == StateInProgress
}

func (that Status) IsWon() bool {
	return that.State == StateWon
}

func (that Status) IsDraw() bool {
	return that.State == StateDraw
}

// IsTerminal reports whether only a restart can change the game.
func (that Status) IsTerminal() bool {
	return that.IsWon() || that.IsDraw()
}

func (that Status) String() string {
	if that.IsWon() {
		return fmt.Sprintf("%s(%s)", that.State, that.Winner)
	}

	return string(that.State)
}

// Validate checks that the status is one the engine can produce.
func (that Status) Validate() error {
	switch that.State {
	case StateInProgress, StateDraw:
		if that.Winner != EmptyCell {
			return fmt.Errorf("%w: winner %q with state %s", apperror.ErrUnknownGameState, that.Winner, that.State)
		}
	case StateWon:
		if !that.Winner.IsPlayer() {
			return fmt.Errorf("%w: winner %q", apperror.ErrUnknownGameState, that.Winner)
		}
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownGameState, that.State)
	}

	return nil
}

// IsPlayer reports whether the mark belongs to one of the two players.
func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// IsValidCell reports whether cell addresses a board position.
func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Count returns how many cells hold the mark.
func (that Board) Count(mark Mark) int {
	n := 0
	for _, cell := range that {
		if cell == mark {
			n++
		}
	}

	return n
}

// DetermineGameResult evaluates the board. The first complete line in
// WinCombos order wins; a full board without one is a draw.
func (that Board) DetermineGameResult() (Status, *Line) {
	for i := range WinCombos {
		combo := WinCombos[i]
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a == EmptyCell || b == EmptyCell || c == EmptyCell {
			continue
		}

		if a == b && b == c {
			return Won(a), &combo
		}
	}

	if that.IsFull() {
		return Draw(), nil
	}

	return InProgress(), nil
}

// Increment adds a win for player.
func (that *Tally) Increment(player Mark) {
	switch player {
	case PlayerX:
		that.X++
	case PlayerO:
		that.O++
	}
}

// Of returns the number of wins recorded for player.
func (that Tally) Of(player Mark) int {
	switch player {
	case PlayerX:
		return that.X
	case PlayerO:
		return that.O
	default:
		return 0
	}
}
