package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestore(t *testing.T) {
	t.Run("Round trips an ongoing game", func(t *testing.T) {
		// Given: a game in progress with a tally
		engine := NewEngine(nil)
		playMoves(t, engine, 0, 3, 1, 4, 2)
		engine.Restart()
		playMoves(t, engine, 4, 0)

		// When: restoring from its snapshot
		restored, err := Restore(engine.Snapshot(), nil)
		require.NoError(t, err)

		// Then: the restored engine matches and keeps playing
		assert.Equal(t, engine.Snapshot(), restored.Snapshot())
		assert.Equal(t, entity.PlayerX, restored.CurrentPlayer())

		status, err := restored.PlayMove(8)
		require.NoError(t, err)
		assert.Equal(t, entity.InProgress(), status)
	})

	t.Run("Round trips a won game", func(t *testing.T) {
		// Given: X won through the top row
		engine := NewEngine(nil)
		playMoves(t, engine, 0, 3, 1, 4, 2)

		// When: restoring
		rec := &recorder{}
		restored, err := Restore(engine.Snapshot(), rec)
		require.NoError(t, err)

		// Then: the win and its line survive and moves stay ignored
		assert.Equal(t, entity.Won(entity.PlayerX), restored.Status())
		assert.Equal(t, entity.Line{0, 1, 2}, *restored.WinningLine())

		_, err = restored.PlayMove(8)
		require.NoError(t, err)
		assert.Empty(t, rec.notifications)
	})

	t.Run("Restores a fresh session", func(t *testing.T) {
		restored, err := Restore(entity.NewSession("s").Game, nil)
		require.NoError(t, err)

		assert.Equal(t, NewEngine(nil).Snapshot(), restored.Snapshot())
	})

	corrupt := map[string]entity.Snapshot{
		"unknown mark": {
			Board:  entity.Board{"Z"},
			Turn:   entity.PlayerO,
			Status: entity.InProgress(),
		},
		"empty turn": {
			Status: entity.InProgress(),
		},
		"negative tally": {
			Turn:   entity.PlayerX,
			Status: entity.InProgress(),
			Tally:  entity.Tally{X: -1},
		},
		"too many O marks": {
			Board:  entity.Board{entity.PlayerO, entity.PlayerO},
			Turn:   entity.PlayerX,
			Status: entity.InProgress(),
		},
		"status does not match board": {
			Board:  entity.Board{entity.PlayerX, entity.PlayerX, entity.PlayerX, entity.PlayerO, entity.PlayerO},
			Turn:   entity.PlayerO,
			Status: entity.InProgress(),
		},
		"missing winning line": {
			Board:  entity.Board{entity.PlayerX, entity.PlayerX, entity.PlayerX, entity.PlayerO, entity.PlayerO},
			Turn:   entity.PlayerX,
			Status: entity.Won(entity.PlayerX),
		},
		"wrong turn": {
			Board:  entity.Board{entity.PlayerX},
			Turn:   entity.PlayerX,
			Status: entity.InProgress(),
		},
		"winner did not move last": {
			Board:  entity.Board{entity.PlayerX, entity.PlayerX, entity.PlayerX, entity.PlayerO, entity.PlayerO},
			Turn:   entity.PlayerO,
			Status: entity.Won(entity.PlayerX),
			Line:   &entity.Line{0, 1, 2},
		},
	}

	for name, snapshot := range corrupt {
		t.Run("Rejects "+name, func(t *testing.T) {
			// When: restoring a snapshot the engine could not produce
			engine, err := Restore(snapshot, nil)

			// Then: ErrCorruptSnapshot is returned
			require.ErrorIs(t, err, apperror.ErrCorruptSnapshot)
			assert.Nil(t, engine)
		})
	}
}
