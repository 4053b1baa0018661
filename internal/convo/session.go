package convo

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session holds one conversation: the ordered turn sequence and the learner
// profile. All mutation goes through the session's own lock, so concurrent
// requests against the same session serialize.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	mu      sync.Mutex
	turns   []Turn
	profile *Profile
}

func newSession(level Level) *Session {
	return &Session{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
		profile:   NewProfile(level),
	}
}

// Lock serializes access to the session for one request. The service locks
// around the whole route-compose-record path so task state and turns stay
// consistent.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Profile returns the mutable learner profile. Callers hold the session lock.
func (s *Session) Profile() *Profile { return s.profile }

// Turns returns a copy of the turn sequence in order.
func (s *Session) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// TurnCount reports how many turns the dialogue holds.
func (s *Session) TurnCount() int { return len(s.turns) }

// AppendTurn records a turn, enforcing strict alternation: the first turn
// after reset must be the assistant greeting, and no role may speak twice in
// a row.
func (s *Session) AppendTurn(role Role, text string) error {
	if len(s.turns) == 0 {
		if role != RoleAssistant {
			return fmt.Errorf("%w: first turn must be assistant, got %s", ErrSequence, role)
		}
	} else if prev := s.turns[len(s.turns)-1].Role; prev == role {
		return fmt.Errorf("%w: %s spoke twice in a row", ErrSequence, role)
	}
	s.turns = append(s.turns, Turn{Role: role, Text: text})
	if role == RoleUser {
		s.profile.Transcriptions = append(s.profile.Transcriptions, text)
	}
	return nil
}

// Manager keys live sessions by id. Selecting a level always creates a fresh
// session; ending one removes it.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[uuid.UUID]*Session)}
}

// Create starts a new session at the given level.
func (m *Manager) Create(level Level) *Session {
	s := newSession(level)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get looks up a live session.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Remove drops a session after it has been evaluated.
func (m *Manager) Remove(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
