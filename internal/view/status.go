// Package view turns game state into the text the views display.
package view

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// TurnPrompt is shown while the game is in progress.
func TurnPrompt(player entity.Mark) string {
	return fmt.Sprintf("It's %s's turn", player)
}

// TallyLine summarises the wins of both players.
func TallyLine(tally entity.Tally) string {
	return fmt.Sprintf("%s wins: %d | %s wins: %d",
		entity.PlayerX, tally.Of(entity.PlayerX), entity.PlayerO, tally.Of(entity.PlayerO))
}

// StatusText is the status message for a game. A win also reports the tally.
func StatusText(status entity.Status, turn entity.Mark, tally entity.Tally) string {
	switch status.State {
	case entity.StateWon:
		return fmt.Sprintf("%s wins!\n%s", status.Winner, TallyLine(tally))
	case entity.StateDraw:
		return "Draw!"
	default:
		return TurnPrompt(turn)
	}
}

// SnapshotText is StatusText for a stored game.
func SnapshotText(snapshot entity.Snapshot) string {
	return StatusText(snapshot.Status, snapshot.Turn, snapshot.Tally)
}

// RenderBoard draws the board as a grid. Empty cells show their index so
// players know which number to enter.
func RenderBoard(board entity.Board, line *entity.Line) string {
	highlighted := map[int]bool{}
	if line != nil {
		for _, cell := range line {
			highlighted[cell] = true
		}
	}

	var sb strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		for col := 0; col < 3; col++ {
			cell := row*3 + col
			if col > 0 {
				sb.WriteString("|")
			}

			switch {
			case board[cell] == entity.EmptyCell:
				fmt.Fprintf(&sb, " %d ", cell)
			case highlighted[cell]:
				fmt.Fprintf(&sb, "[%s]", board[cell])
			default:
				fmt.Fprintf(&sb, " %s ", board[cell])
			}
		}

		sb.WriteString("\n")
	}

	return sb.String()
}
