package calculator

import (
	"errors"
	"sync"
	"time"

	"keypad-calculator/internal/engine"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for an unknown or expired session ID.
var ErrSessionNotFound = errors.New("session not found")

type session struct {
	mu       sync.Mutex
	calc     *engine.Calculator
	lastUsed time.Time
}

// Store keeps one calculator per keypad session. The engine itself is not
// safe for concurrent use, so every operation on a session runs under that
// session's lock.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// Create starts a session in the all-clear state.
func (s *Store) Create() (string, engine.State) {
	id := uuid.New().String()
	sess := &session{calc: engine.New(), lastUsed: s.now()}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return id, sess.calc.State()
}

// Do runs fn against the session's calculator and returns the state fn left
// behind together with fn's error. Engine errors leave a meaningful state, so
// the state is returned even when err is not nil.
func (s *Store) Do(id string, fn func(*engine.Calculator) error) (engine.State, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return engine.State{}, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	err := fn(sess.calc)
	sess.lastUsed = s.now()

	return sess.calc.State(), err
}

func (s *Store) Get(id string) (engine.State, error) {
	return s.Do(id, func(*engine.Calculator) error { return nil })
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than ttl and reports how many went.
func (s *Store) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastUsed.Before(cutoff)
		sess.mu.Unlock()

		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
