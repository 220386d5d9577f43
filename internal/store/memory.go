// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Sessions are not safe for concurrent use, so this is where per-player
// isolation happens: every mutation goes through Update, which holds the
// write lock while the caller touches the session.
//
// Characteristics:
//   - Stores *game.Session values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Idle sessions are dropped by Sweep.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/session-server/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("not found")

// Store defines the holding area for live sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get calls fn with the session under a read lock. fn must not mutate it.
	Get(ctx context.Context, id string, fn func(*game.Session) error) error

	// Update calls fn with exclusive access to the session.
	Update(ctx context.Context, id string, fn func(*game.Session) error) error

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep removes sessions untouched for longer than maxAge and reports how many went.
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)
}

type entry struct {
	session *game.Session
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions
	sessions map[string]*entry // keyed by Session.ID
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{sessions: make(map[string]*entry), now: now}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = &entry{session: s, touched: m.now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string, fn func(*game.Session) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	return fn(e.session)
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	e.touched = m.now()
	return fn(e.session)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-maxAge)
	n := 0
	for id, e := range m.sessions {
		if e.touched.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}
