package swipe

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"rewear/internal/filter"
	"rewear/internal/models"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("swipe session not found")

// ErrSessionForbidden is returned when a viewer touches another viewer's session.
var ErrSessionForbidden = errors.New("swipe session belongs to another viewer")

// Snapshot is a point-in-time view of a session.
type Snapshot struct {
	SessionID  string       `json:"session_id"`
	ViewerID   string       `json:"viewer_id"`
	Spec       filter.Spec  `json:"filters"`
	Current    *models.Item `json:"current,omitempty"`
	Remaining  int          `json:"remaining"`
	SwipeCount int          `json:"swipe_count"`
	Exhausted  bool         `json:"exhausted"`
}

type session struct {
	mu       sync.Mutex
	queue    *Queue
	lastSeen time.Time
}

// Sessions keeps one Queue per session id. Sessions idle for longer than
// the TTL are evicted lazily.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessions creates a session store. A non-positive ttl disables eviction.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Start opens a new session for viewerID and returns its snapshot.
func (s *Sessions) Start(viewerID string, catalog Catalog, spec filter.Spec) Snapshot {
	id := uuid.NewString()
	sess := &session{queue: NewQueue(viewerID, catalog, spec), lastSeen: s.now()}

	s.mu.Lock()
	s.evictLocked()
	s.sessions[id] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return snapshot(id, sess.queue)
}

// Get returns the snapshot of a session.
func (s *Sessions) Get(id, viewerID string) (Snapshot, error) {
	var snap Snapshot
	err := s.with(id, viewerID, func(q *Queue) {
		snap = snapshot(id, q)
	})
	return snap, err
}

// Decide applies a swipe to the session's current candidate. ok is false when
// the queue was already exhausted.
func (s *Sessions) Decide(id, viewerID string, direction Direction) (decision Decision, ok bool, snap Snapshot, err error) {
	err = s.with(id, viewerID, func(q *Queue) {
		decision, ok = q.Decide(direction)
		snap = snapshot(id, q)
	})
	return decision, ok, snap, err
}

// Reset recomputes the session's candidates with a new filter.
func (s *Sessions) Reset(id, viewerID string, catalog Catalog, spec filter.Spec) (Snapshot, error) {
	var snap Snapshot
	err := s.with(id, viewerID, func(q *Queue) {
		q.Reset(catalog, spec)
		snap = snapshot(id, q)
	})
	return snap, err
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	return len(s.sessions)
}

func (s *Sessions) with(id, viewerID string, fn func(q *Queue)) error {
	s.mu.Lock()
	s.evictLocked()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.queue.ViewerID() != viewerID {
		return ErrSessionForbidden
	}
	sess.lastSeen = s.now()
	fn(sess.queue)
	return nil
}

func (s *Sessions) evictLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if !sess.mu.TryLock() {
			continue
		}
		expired := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if expired {
			delete(s.sessions, id)
		}
	}
}

func snapshot(id string, q *Queue) Snapshot {
	snap := Snapshot{
		SessionID:  id,
		ViewerID:   q.ViewerID(),
		Spec:       q.Spec(),
		Remaining:  q.Remaining(),
		SwipeCount: q.SwipeCount(),
		Exhausted:  q.Exhausted(),
	}
	if item, ok := q.Current(); ok {
		snap.Current = &item
	}
	return snap
}
