package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/testing/suite"
)

func run(t *testing.T, input string, withBell bool) (*Game, string) {
	t.Helper()

	var out bytes.Buffer
	game := New(suite.NewLogger(), strings.NewReader(input), &out, withBell)

	require.NoError(t, game.Run(context.Background()))

	return game, out.String()
}

func TestGame_Run(t *testing.T) {
	t.Run("Shows the empty board and the first turn", func(t *testing.T) {
		_, out := run(t, "", false)

		assert.Contains(t, out, " 0 | 1 | 2 \n---+---+---\n")
		assert.Contains(t, out, "It's X's turn")
	})

	t.Run("Alternates players", func(t *testing.T) {
		// Given: X plays the center
		game, out := run(t, "4\n", false)

		// Then: the board shows X and O is asked to move
		assert.Equal(t, entity.PlayerX, game.engine.Board()[4])
		assert.Contains(t, out, " 3 | X | 5 ")
		assert.Contains(t, out, "It's O's turn")
	})

	t.Run("Announces a win with the tally and highlights the line", func(t *testing.T) {
		// Given: X takes the top row
		game, out := run(t, "0\n3\n1\n4\n2\n", false)

		// Then: the win and the tally are shown
		assert.Equal(t, entity.Won(entity.PlayerX), game.engine.Status())
		assert.Contains(t, out, "[X]|[X]|[X]")
		assert.Contains(t, out, "X wins!\nX wins: 1 | O wins: 0")
	})

	t.Run("Announces a draw", func(t *testing.T) {
		_, out := run(t, "0\n1\n2\n4\n3\n5\n7\n6\n8\n", false)

		assert.Contains(t, out, "Draw!")
	})

	t.Run("Restart keeps the tally", func(t *testing.T) {
		// Given: X won once
		game, _ := run(t, "0\n3\n1\n4\n2\nr\n", false)

		// Then: the board is cleared and the tally kept
		assert.Equal(t, entity.Board{}, game.engine.Board())
		assert.Equal(t, entity.PlayerX, game.engine.CurrentPlayer())
		assert.Equal(t, entity.Tally{X: 1}, game.engine.Tally())
	})

	t.Run("Hints at occupied and invalid cells", func(t *testing.T) {
		game, out := run(t, "4\n4\n9\nabc\n", false)

		assert.Contains(t, out, "cell 4 is taken")
		assert.Contains(t, out, "cell 9 does not exist, pick 0-8")
		assert.Contains(t, out, `unknown command "abc"`)
		assert.Equal(t, entity.PlayerO, game.engine.CurrentPlayer())
	})

	t.Run("Hints that the game is over", func(t *testing.T) {
		_, out := run(t, "0\n3\n1\n4\n2\n5\n", false)

		assert.Contains(t, out, "the game is over, enter r to play again")
	})

	t.Run("Quits on q", func(t *testing.T) {
		game, out := run(t, "q\n4\n", false)

		assert.Contains(t, out, "Bye!")
		assert.Equal(t, entity.EmptyCell, game.engine.Board()[4])
	})

	t.Run("Rings the bell on cues", func(t *testing.T) {
		// Given: one move and then a winning line
		_, quiet := run(t, "0\n3\n1\n4\n2\n", false)
		_, loud := run(t, "0\n3\n1\n4\n2\n", true)

		// Then: four moves ring once and the win rings twice
		assert.Equal(t, 0, strings.Count(quiet, bell))
		assert.Equal(t, 6, strings.Count(loud, bell))
	})
}

func TestGame_RunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	game := New(suite.NewLogger(), strings.NewReader("4\n"), &bytes.Buffer{}, false)

	assert.ErrorIs(t, game.Run(ctx), context.Canceled)
	assert.Equal(t, entity.EmptyCell, game.engine.Board()[4])
}
