package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/util"
)

// SessionStore maps a session id to the user it was issued for
type SessionStore interface {
	Create(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Lookup(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

type sessionEntry struct {
	userID    string
	expiresAt time.Time
}

// expired entries are swept on Create at most this often
const sweepInterval = time.Minute

// MemorySessionStore keeps sessions in process memory
type MemorySessionStore struct {
	mu        sync.RWMutex
	clock     util.Clock
	sessions  map[string]sessionEntry
	lastSweep time.Time
}

func NewMemorySessionStore(clock util.Clock) *MemorySessionStore {
	return &MemorySessionStore{
		clock:    clock,
		sessions: make(map[string]sessionEntry),
	}
}

func (m *MemorySessionStore) Create(_ context.Context, sessionID, userID string, ttl time.Duration) error {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if now.Sub(m.lastSweep) >= sweepInterval {
		m.sweep(now)
	}
	m.sessions[sessionID] = sessionEntry{userID: userID, expiresAt: now.Add(ttl)}
	return nil
}

// sweep drops every entry expired at now. Callers hold mu.
func (m *MemorySessionStore) sweep(now time.Time) {
	for id, entry := range m.sessions {
		if !now.Before(entry.expiresAt) {
			delete(m.sessions, id)
		}
	}
	m.lastSweep = now
}

func (m *MemorySessionStore) Lookup(_ context.Context, sessionID string) (string, error) {
	m.mu.RLock()
	entry, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown session: %w", apperrors.ErrUnauthenticated)
	}
	if !m.clock.Now().Before(entry.expiresAt) {
		m.mu.Lock()
		delete(m.sessions, sessionID)
		m.mu.Unlock()
		return "", fmt.Errorf("session expired: %w", apperrors.ErrUnauthenticated)
	}
	return entry.userID, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// Len counts stored sessions, including expired ones not yet swept
func (m *MemorySessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
