package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and returns a copy", func(t *testing.T) {
		// Given: a memory repository holding a won game
		sessionRepo := NewMemorySessionRepository(time.Hour)
		session := wonSession("abc")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: reading it back and changing the result
		retrieved, err := sessionRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, session, retrieved)

		retrieved.Game.Tally.X = 100

		// Then: the stored session is unaffected
		again, err := sessionRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, 3, again.Game.Tally.X)
	})

	t.Run("Missing session", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(time.Hour)

		_, err := sessionRepo.GetByID(ctx, "nope")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		err = sessionRepo.DeleteByID(ctx, "nope")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Rejects empty id", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(0)

		err := sessionRepo.CreateOrUpdate(ctx, &entity.Session{})
		require.ErrorIs(t, err, apperror.ErrEmptySessionID)
	})

	t.Run("Delete removes the session", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(0)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("abc")))

		require.NoError(t, sessionRepo.DeleteByID(ctx, "abc"))

		_, err := sessionRepo.GetByID(ctx, "abc")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Sessions expire after ttl", func(t *testing.T) {
		// Given: a repository with a controllable clock
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		sessionRepo := NewMemorySessionRepository(time.Minute).(*memSession)
		sessionRepo.now = func() time.Time { return now }
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("abc")))

		// When: less than the ttl passed
		now = now.Add(59 * time.Second)

		// Then: the session is still there
		_, err := sessionRepo.GetByID(ctx, "abc")
		require.NoError(t, err)

		// When: the ttl passed
		now = now.Add(time.Second)

		// Then: the session is gone
		_, err = sessionRepo.GetByID(ctx, "abc")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Reads refresh the expiry", func(t *testing.T) {
		// Given: a session that is read every 50 seconds with a one minute ttl
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		sessionRepo := NewMemorySessionRepository(time.Minute).(*memSession)
		sessionRepo.now = func() time.Time { return now }
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("abc")))

		for range 3 {
			now = now.Add(50 * time.Second)

			// Then: it never expires although it is never written again
			_, err := sessionRepo.GetByID(ctx, "abc")
			require.NoError(t, err)
		}

		// When: nobody reads it for a full ttl
		now = now.Add(time.Minute)

		// Then: it is gone
		_, err := sessionRepo.GetByID(ctx, "abc")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Writes refresh the expiry", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		sessionRepo := NewMemorySessionRepository(time.Minute).(*memSession)
		sessionRepo.now = func() time.Time { return now }
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("abc")))

		now = now.Add(50 * time.Second)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, entity.NewSession("abc")))

		now = now.Add(50 * time.Second)
		_, err := sessionRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
	})
}
