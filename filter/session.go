package filter

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Session scopes the load operations over which a single coordinate shift
// decision must remain consistent. It replaces the ambient process-wide
// counter of older designs with an explicit, owned object: callers create
// one per logical session (or Reset an existing one) instead of relying on
// global state they might forget to clear.
type Session struct {
	id      uuid.UUID
	counter atomic.Uint32

	// mu serializes the shift negotiator's read-decide-persist sequence so
	// that concurrent loads in the same session cannot establish two
	// different shifts.
	mu sync.Mutex
}

// NewSession creates a fresh session with a zero counter.
func NewSession() *Session {
	return &Session{id: uuid.New()}
}

// ID returns the session's unique identifier, used for log correlation.
func (s *Session) ID() uuid.UUID { return s.id }

// Next increments the load counter and returns its new value. The first
// load of a session observes 1.
func (s *Session) Next() uint32 {
	return s.counter.Add(1)
}

// Count returns the number of loads started in this session so far.
func (s *Session) Count() uint32 {
	return s.counter.Load()
}

// Reset rewinds the counter so the next load is treated as the session
// start again. The session identity is kept.
func (s *Session) Reset() {
	s.counter.Store(0)
}
