package swipe

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewear/internal/filter"
)

func TestSessionsLifecycle(t *testing.T) {
	t.Parallel()

	s := NewSessions(time.Hour)
	catalog := catalogWithOwners("bob", "alice", "carol")

	snap := s.Start("alice", catalog, filter.Spec{})
	require.NotEmpty(t, snap.SessionID)
	require.NotNil(t, snap.Current)
	assert.Equal(t, "item-1", snap.Current.ID)
	assert.Equal(t, 2, snap.Remaining)

	decision, ok, snap, err := s.Decide(snap.SessionID, "alice", Right)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, decision.Interest)
	assert.Equal(t, "item-3", snap.Current.ID)
	assert.Equal(t, 1, snap.SwipeCount)

	snap, err = s.Reset(snap.SessionID, "alice", catalog, filter.Spec{Category: "Shoes"})
	require.NoError(t, err)
	assert.True(t, snap.Exhausted)
	assert.Nil(t, snap.Current)
	assert.Equal(t, 1, snap.SwipeCount)

	_, ok, _, err = s.Decide(snap.SessionID, "alice", Left)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionsRejectsOtherViewer(t *testing.T) {
	t.Parallel()

	s := NewSessions(0)
	snap := s.Start("alice", catalogWithOwners("bob"), filter.Spec{})

	_, err := s.Get(snap.SessionID, "bob")
	assert.ErrorIs(t, err, ErrSessionForbidden)

	_, err = s.Get("missing", "alice")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionsEvictIdle(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessions(10 * time.Minute)
	s.now = func() time.Time { return now }

	snap := s.Start("alice", catalogWithOwners("bob"), filter.Spec{})
	assert.Equal(t, 1, s.Len())

	now = now.Add(5 * time.Minute)
	_, err := s.Get(snap.SessionID, "alice")
	require.NoError(t, err)

	now = now.Add(11 * time.Minute)
	_, err = s.Get(snap.SessionID, "alice")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestSessionsConcurrentDecisions(t *testing.T) {
	t.Parallel()

	s := NewSessions(time.Hour)
	catalog := catalogWithOwners("bob", "bob", "bob", "bob", "bob", "bob", "bob", "bob")
	snap := s.Start("alice", catalog, filter.Spec{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _, _ = s.Decide(snap.SessionID, "alice", Left)
		}()
	}
	wg.Wait()

	final, err := s.Get(snap.SessionID, "alice")
	require.NoError(t, err)
	assert.Equal(t, 8, final.SwipeCount)
	assert.True(t, final.Exhausted)
}
