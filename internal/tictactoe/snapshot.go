package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// Snapshot captures the engine state for storage.
func (that *Engine) Snapshot() entity.Snapshot {
	return entity.Snapshot{
		Board:  that.board,
		Turn:   that.turn,
		Status: that.status,
		Line:   that.WinningLine(),
		Tally:  that.tally,
	}
}

// Restore rebuilds an engine from a snapshot. Snapshots that the engine
// could not have produced are rejected with ErrCorruptSnapshot.
func Restore(snapshot entity.Snapshot, notifier Notifier) (*Engine, error) {
	if err := validateSnapshot(snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrCorruptSnapshot, err)
	}

	engine := NewEngine(notifier)
	engine.board = snapshot.Board
	engine.turn = snapshot.Turn
	engine.status = snapshot.Status
	engine.tally = snapshot.Tally

	if snapshot.Line != nil {
		line := *snapshot.Line
		engine.line = &line
	}

	return engine, nil
}

func validateSnapshot(snapshot entity.Snapshot) error {
	for i, cell := range snapshot.Board {
		if cell != entity.EmptyCell && !cell.IsPlayer() {
			return fmt.Errorf("cell %d holds %q", i, cell)
		}
	}

	if !snapshot.Turn.IsPlayer() {
		return fmt.Errorf("turn %q", snapshot.Turn)
	}

	if snapshot.Tally.X < 0 || snapshot.Tally.O < 0 {
		return fmt.Errorf("negative tally %+v", snapshot.Tally)
	}

	if err := snapshot.Status.Validate(); err != nil {
		return err
	}

	// X always moves first, so X holds as many marks as O or one more.
	xs, ys := snapshot.Board.Count(entity.PlayerX), snapshot.Board.Count(entity.PlayerO)
	if xs != ys && xs != ys+1 {
		return fmt.Errorf("%d X marks against %d O marks", xs, ys)
	}

	status, line := snapshot.Board.DetermineGameResult()
	if status != snapshot.Status {
		return fmt.Errorf("status %s does not match board (%s)", snapshot.Status, status)
	}

	if (line == nil) != (snapshot.Line == nil) || (line != nil && *line != *snapshot.Line) {
		return errors.New("winning line does not match board")
	}

	if status.IsInProgress() {
		next := entity.PlayerX
		if xs > ys {
			next = entity.PlayerO
		}

		if snapshot.Turn != next {
			return fmt.Errorf("turn %s, expected %s", snapshot.Turn, next)
		}
	} else {
		expected := lastMover(xs, ys)
		if snapshot.Turn != expected {
			return fmt.Errorf("turn %s after final move, expected %s", snapshot.Turn, expected)
		}

		if status.IsWon() && status.Winner != expected {
			return fmt.Errorf("winner %s did not make the final move", status.Winner)
		}
	}

	return nil
}

func lastMover(xs, ys int) entity.Mark {
	if xs > ys {
		return entity.PlayerX
	}
	return entity.PlayerO
}
