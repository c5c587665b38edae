package server

import (
	"sync"
	"time"

	"github.com/matzehuels/stickerboard/pkg/board"
	"github.com/matzehuels/stickerboard/pkg/errors"
)

// registry holds the boards of connected clients. Boards live in memory only
// and are closed when deleted, expired or when the server stops.
type registry struct {
	mu       sync.Mutex
	max      int
	ttl      time.Duration
	sessions map[string]*entry
	now      func() time.Time
}

type entry struct {
	session  *board.Session
	lastSeen time.Time
}

func newRegistry(maxSessions int, ttl time.Duration) *registry {
	return &registry{
		max:      maxSessions,
		ttl:      ttl,
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

func (r *registry) add(s *board.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sessions) >= r.max {
		return errors.New(errors.ErrCodeUnsupported, "session limit of %d reached", r.max)
	}
	r.sessions[s.ID()] = &entry{session: s, lastSeen: r.now()}
	return nil
}

func (r *registry) get(id string) (*board.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	e.lastSeen = r.now()
	return e.session, nil
}

func (r *registry) remove(id string) bool {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		e.session.Close()
	}
	return ok
}

// sweep closes sessions idle for longer than the TTL and returns how many
// were removed.
func (r *registry) sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []*board.Session
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.session)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *registry) closeAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range sessions {
		e.session.Close()
	}
}
