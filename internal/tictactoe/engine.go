// Package tictactoe holds the game rules: board ownership, turn order,
// win and draw detection and the per-session win tally.
//
// An Engine is owned by a single caller and is not safe for concurrent
// use. Every call runs to completion and reports what happened through
// the Notifier given at construction.
package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// Notifier receives the outcome of every call that changes the game.
type Notifier interface {
	Notify(notification entity.Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(notification entity.Notification)

func (that NotifierFunc) Notify(notification entity.Notification) {
	that(notification)
}

type discard struct{}

func (discard) Notify(entity.Notification) {}

type Engine struct {
	board  entity.Board
	turn   entity.Mark
	status entity.Status
	line   *entity.Line
	tally  entity.Tally

	notifier Notifier
}

// NewEngine returns an engine with an empty board and X to move.
// A nil notifier discards notifications.
func NewEngine(notifier Notifier) *Engine {
	if notifier == nil {
		notifier = discard{}
	}

	return &Engine{
		turn:     entity.PlayerX,
		status:   entity.InProgress(),
		notifier: notifier,
	}
}

// PlayMove places the current player's mark on cell.
//
// An out of range cell returns ErrInvalidCell. Playing an occupied cell or
// playing after the game ended changes nothing and notifies nobody; the
// current status is returned with a nil error.
func (that *Engine) PlayMove(cell int) (entity.Status, error) {
	if err := that.CheckMove(cell); err != nil {
		if errors.Is(err, apperror.ErrInvalidCell) {
			return that.status, err
		}

		return that.status, nil
	}

	player := that.turn
	that.board[cell] = player

	notification := entity.Notification{
		Cell: cell,
		Mark: player,
		Cues: []entity.Cue{entity.CueMove},
	}

	switch status, line := that.board.DetermineGameResult(); {
	case status.IsWon():
		that.status = status
		that.line = line
		that.tally.Increment(status.Winner)

		notification.Kind = entity.KindWin
		notification.Cues = append(notification.Cues, entity.CueWin)
	case status.IsDraw():
		that.status = status

		notification.Kind = entity.KindDraw
	default:
		that.turn = player.Opponent()

		notification.Kind = entity.KindMove
	}

	that.notify(notification)

	return that.status, nil
}

// CheckMove reports why cell cannot be played right now, or nil if it can.
func (that *Engine) CheckMove(cell int) error {
	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.status.IsTerminal() {
		return apperror.ErrGameFinished
	}

	if that.board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// Restart clears the board and hands the first move to X. The tally is kept.
func (that *Engine) Restart() {
	that.board = entity.Board{}
	that.turn = entity.PlayerX
	that.status = entity.InProgress()
	that.line = nil

	that.notify(entity.Notification{
		Kind: entity.KindRestart,
		Cell: entity.NoCell,
	})
}

func (that *Engine) Status() entity.Status {
	return that.status
}

// Board returns a copy of the board.
func (that *Engine) Board() entity.Board {
	return that.board
}

// CurrentPlayer is the player to move, or the player who made the final
// move once the game ended.
func (that *Engine) CurrentPlayer() entity.Mark {
	return that.turn
}

func (that *Engine) Tally() entity.Tally {
	return that.tally
}

// WinningLine returns the cells of the winning line, or nil unless the
// game is won.
func (that *Engine) WinningLine() *entity.Line {
	if that.line == nil {
		return nil
	}

	line := *that.line
	return &line
}

func (that *Engine) notify(notification entity.Notification) {
	notification.Turn = that.turn
	notification.Status = that.status
	notification.Line = that.WinningLine()
	notification.Tally = that.tally

	that.notifier.Notify(notification)
}
