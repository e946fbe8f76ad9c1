package history

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Session carries capture state scoped to one page load. It is created at
// module init, passed to the components that need it, and discarded at
// teardown; nothing here survives a reload.
type Session struct {
	id string

	mu       sync.Mutex
	lastDate string
}

// NewSession creates a session with a fresh ULID identifier, used to tag
// log lines from the same page load.
func NewSession() *Session {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		// ulid.New only fails on entropy exhaustion; fall back to the
		// zero id rather than refusing to start.
		return &Session{}
	}
	return &Session{id: id.String()}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// RememberDate records the last date-location line observed on a captured
// entry. Entries rendered in a visual group sometimes omit the repeated
// date line; the sink falls back to this value.
func (s *Session) RememberDate(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDate = line
}

// LastDate returns the most recently observed date-location line, or ""
// when none has been seen this session.
func (s *Session) LastDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastDate
}
