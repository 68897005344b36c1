package view

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestStatusText(t *testing.T) {
	t.Run("Prompts the current player while in progress", func(t *testing.T) {
		text := StatusText(entity.InProgress(), entity.PlayerO, entity.Tally{})

		assert.Equal(t, "It's O's turn", text)
	})

	t.Run("Announces the winner with the tally", func(t *testing.T) {
		text := StatusText(entity.Won(entity.PlayerX), entity.PlayerX, entity.Tally{X: 2, O: 1})

		assert.Equal(t, "X wins!\nX wins: 2 | O wins: 1", text)
	})

	t.Run("Announces a draw", func(t *testing.T) {
		text := StatusText(entity.Draw(), entity.PlayerX, entity.Tally{X: 2})

		assert.Equal(t, "Draw!", text)
	})

	t.Run("Snapshot of a fresh session", func(t *testing.T) {
		assert.Equal(t, "It's X's turn", SnapshotText(entity.NewSession("s").Game))
	})
}

func TestRenderBoard(t *testing.T) {
	t.Run("Empty cells show their index", func(t *testing.T) {
		expected := "" +
			" 0 | 1 | 2 \n" +
			"---+---+---\n" +
			" 3 | 4 | 5 \n" +
			"---+---+---\n" +
			" 6 | 7 | 8 \n"

		assert.Equal(t, expected, RenderBoard(entity.Board{}, nil))
	})

	t.Run("Winning line is highlighted", func(t *testing.T) {
		board := entity.Board{
			entity.PlayerX, entity.PlayerX, entity.PlayerX,
			entity.PlayerO, entity.PlayerO, entity.EmptyCell,
		}

		expected := "" +
			"[X]|[X]|[X]\n" +
			"---+---+---\n" +
			" O | O | 5 \n" +
			"---+---+---\n" +
			" 6 | 7 | 8 \n"

		assert.Equal(t, expected, RenderBoard(board, &entity.Line{0, 1, 2}))
	})
}

func TestTallyLine(t *testing.T) {
	assert.Equal(t, "X wins: 0 | O wins: 0", TallyLine(entity.Tally{}))
	assert.Equal(t, "X wins: 4 | O wins: 7", TallyLine(entity.Tally{X: 4, O: 7}))
}
