package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

// Result is what a view receives after calling into a session.
type Result struct {
	Session       *entity.Session       `json:"session"`
	Notifications []entity.Notification `json:"notifications"`
}

type GameUseCase interface {
	GetOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, error)

	PlayMove(ctx context.Context, sessionID string, cell int) (*Result, error)
	Restart(ctx context.Context, sessionID string) (*Result, error)

	EndSession(ctx context.Context, sessionID string) error
}

type sessionRepoDep interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameUseCase struct {
	logger      *slog.Logger
	sessionRepo sessionRepoDep

	locks *keyedMutex
	newID func() string
}

// NewGameUseCase runs one engine per session. Calls on the same session
// are serialised; each one loads the game, applies the call and saves it.
func NewGameUseCase(logger *slog.Logger, sessionRepo sessionRepoDep) GameUseCase {
	return &gameUseCase{
		logger:      logger.With("component", "game_usecase"),
		sessionRepo: sessionRepo,

		locks: newKeyedMutex(),
		newID: uuid.NewString,
	}
}

// GetOrCreateSession returns the session with sessionID. An empty or
// unknown ID starts a new session with a fresh game.
func (that *gameUseCase) GetOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	if sessionID != "" {
		unlock := that.locks.Lock(sessionID)
		defer unlock()

		session, err := that.sessionRepo.GetByID(ctx, sessionID)
		if err == nil {
			return session, nil
		}

		if !errors.Is(err, apperror.ErrSessionNotFound) {
			return nil, fmt.Errorf("failed to get session: %w", err)
		}
	}

	return that.createSession(ctx)
}

func (that *gameUseCase) PlayMove(ctx context.Context, sessionID string, cell int) (*Result, error) {
	return that.apply(ctx, sessionID, func(engine *tictactoe.Engine) error {
		if _, err := engine.PlayMove(cell); err != nil {
			return fmt.Errorf("failed to play move: %w", err)
		}

		return nil
	})
}

func (that *gameUseCase) Restart(ctx context.Context, sessionID string) (*Result, error) {
	return that.apply(ctx, sessionID, func(engine *tictactoe.Engine) error {
		engine.Restart()
		return nil
	})
}

// EndSession forgets the session together with its tally.
func (that *gameUseCase) EndSession(ctx context.Context, sessionID string) error {
	unlock := that.locks.Lock(sessionID)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session ended", "session", sessionID)

	return nil
}

// apply replays call on the session's engine and saves the game when the
// engine reported a change.
func (that *gameUseCase) apply(ctx context.Context, sessionID string, call func(engine *tictactoe.Engine) error) (*Result, error) {
	log := that.logger.With("method", "apply", "session", sessionID)

	if sessionID == "" {
		return nil, apperror.ErrEmptySessionID
	}

	unlock := that.locks.Lock(sessionID)
	defer unlock()

	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var notifications []entity.Notification
	collect := tictactoe.NotifierFunc(func(notification entity.Notification) {
		notifications = append(notifications, notification)
	})

	changed := false

	engine, err := tictactoe.Restore(session.Game, collect)
	if err != nil {
		log.Error("stored game is unusable, starting over", "error", err)

		engine = tictactoe.NewEngine(collect)
		changed = true
	}

	if err = call(engine); err != nil {
		return nil, err
	}

	session.Game = engine.Snapshot()

	if changed || len(notifications) > 0 {
		session.Version++

		if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to update session: %w", err)
		}

		log.Debug("game updated", "version", session.Version, "status", session.Game.Status.String(), "notifications", len(notifications))
	}

	return &Result{
		Session:       session,
		Notifications: notifications,
	}, nil
}

func (that *gameUseCase) createSession(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(that.newID())

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "session", session.ID)

	return session, nil
}

// keyedMutex hands out one lock per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

func (that *keyedMutex) Lock(key string) func() {
	that.mu.Lock()
	lock, ok := that.locks[key]
	if !ok {
		lock = &keyedLock{}
		that.locks[key] = lock
	}
	lock.refs++
	that.mu.Unlock()

	lock.Lock()

	return func() {
		lock.Unlock()

		that.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(that.locks, key)
		}
		that.mu.Unlock()
	}
}
