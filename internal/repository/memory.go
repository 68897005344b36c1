package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type memorySession struct {
	session   entity.Session
	expiresAt time.Time
}

type memSession struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionRepository keeps sessions in process memory with the same
// expiry rules as the Redis repository: reads and writes both push the
// expiry ttl into the future.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memSession{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (that *memSession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	if session.ID == "" {
		return apperror.ErrEmptySessionID
	}

	stored := memorySession{session: *session}
	if that.ttl > 0 {
		stored.expiresAt = that.now().Add(that.ttl)
	}

	that.mu.Lock()
	that.sessions[session.ID] = stored
	that.mu.Unlock()

	return nil
}

func (that *memSession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored, ok := that.lookup(id)
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	if that.ttl > 0 {
		stored.expiresAt = that.now().Add(that.ttl)
		that.sessions[id] = stored
	}

	session := stored.session
	return &session, nil
}

func (that *memSession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.lookup(id); !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

// lookup drops the session if it expired. Callers hold mu.
func (that *memSession) lookup(id string) (memorySession, bool) {
	stored, ok := that.sessions[id]
	if !ok {
		return memorySession{}, false
	}

	if !stored.expiresAt.IsZero() && !that.now().Before(stored.expiresAt) {
		delete(that.sessions, id)
		return memorySession{}, false
	}

	return stored, true
}
