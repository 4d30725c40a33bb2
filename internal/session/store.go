package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ZygmuntJakub/preferans/internal/engine"
)

// NotFoundError is returned for unknown session ids.
type NotFoundError string

func (e NotFoundError) Error() string { return fmt.Sprintf("game %s not found", string(e)) }

// Store keeps the running sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	log      logrus.FieldLogger
}

func NewStore(log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{
		sessions: make(map[string]*Session),
		log:      log,
	}
}

// Create starts a session under a fresh id.
func (s *Store) Create(players []engine.PlayerID, seed uint64) (*Session, error) {
	id := uuid.New().String()
	sess, err := New(id, players, s.log, seed)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
	return sess, nil
}

// Get returns the session with the given id.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, NotFoundError(id)
	}
	return sess, nil
}

// Remove drops a session.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Count returns the number of running sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
