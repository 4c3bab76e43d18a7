package estimator

import (
	"sync"
	"time"
)

// Snapshot is the polled state of one estimate session.
type Snapshot struct {
	Result
	Pending bool `json:"pending"`
}

type session struct {
	deb       *Debouncer
	mu        sync.Mutex
	last      Result
	committed uint64
	touched   time.Time
}

// Sessions keeps one Debouncer per add-crop form session so rapid edits
// from the same client coalesce into a single estimation. Idle sessions
// are swept after the configured TTL.
type Sessions struct {
	resolver *Resolver
	delay    time.Duration
	ttl      time.Duration

	mu sync.Mutex
	m  map[string]*session
}

// NewSessions creates a session registry.
func NewSessions(resolver *Resolver, delay, ttl time.Duration) *Sessions {
	return &Sessions{
		resolver: resolver,
		delay:    delay,
		ttl:      ttl,
		m:        make(map[string]*session),
	}
}

// Input pushes a form snapshot into the named session and returns the
// generation assigned to it.
func (s *Sessions) Input(id string, in Input) uint64 {
	sess := s.get(id, true)
	return sess.deb.Input(in)
}

// Poll returns the latest committed estimate for the session. A session is
// pending while an input generation newer than the last committed result
// exists. The second return value is false for unknown sessions.
func (s *Sessions) Poll(id string) (Snapshot, bool) {
	sess := s.get(id, false)
	if sess == nil {
		return Snapshot{}, false
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return Snapshot{
		Result:  sess.last,
		Pending: sess.deb.Generation() > sess.committed,
	}, true
}

func (s *Sessions) get(id string, create bool) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, sess := range s.m {
		if now.Sub(sess.touched) > s.ttl {
			sess.deb.Stop()
			delete(s.m, key)
		}
	}

	sess, ok := s.m[id]
	if !ok {
		if !create {
			return nil
		}
		sess = &session{}
		sess.deb = NewDebouncer(s.resolver, s.delay, func(r Result) {
			sess.mu.Lock()
			// Commits can only move forward; the debouncer already
			// discarded stale generations.
			if r.Generation >= sess.committed {
				sess.last = r
				sess.committed = r.Generation
			}
			sess.mu.Unlock()
		})
		s.m[id] = sess
	}
	sess.touched = now
	return sess
}
