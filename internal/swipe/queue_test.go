package swipe

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewear/internal/filter"
	"rewear/internal/models"
)

func catalogWithOwners(owners ...string) StaticCatalog {
	items := make(StaticCatalog, 0, len(owners))
	for i, owner := range owners {
		items = append(items, models.Item{
			ID:       fmt.Sprintf("item-%d", i+1),
			Title:    fmt.Sprintf("Item %d", i+1),
			Category: "Tops",
			Tags:     []string{"Casual"},
			OwnerID:  owner,
		})
	}
	return items
}

func TestQueueExcludesViewerItems(t *testing.T) {
	t.Parallel()

	catalog := catalogWithOwners("alice", "bob", "alice", "carol", "dave")
	q := NewQueue("alice", catalog, filter.Spec{})

	require.Len(t, q.Candidates(), 3)
	for _, item := range q.Candidates() {
		assert.NotEqual(t, "alice", item.OwnerID)
	}
	assert.Equal(t, 3, q.Remaining())
}

func TestQueueDecideAdvances(t *testing.T) {
	t.Parallel()

	q := NewQueue("alice", catalogWithOwners("bob", "carol"), filter.Spec{})

	first, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, "item-1", first.ID)

	d, ok := q.Decide(Right)
	require.True(t, ok)
	assert.Equal(t, "item-1", d.Item.ID)
	assert.True(t, d.Interest)
	assert.Equal(t, 1, q.Cursor())

	d, ok = q.Decide(Left)
	require.True(t, ok)
	assert.Equal(t, "item-2", d.Item.ID)
	assert.False(t, d.Interest)

	assert.True(t, q.Exhausted())
	_, ok = q.Current()
	assert.False(t, ok)
	assert.Equal(t, 2, q.SwipeCount())
}

func TestQueueDecideOnExhaustedIsNoop(t *testing.T) {
	t.Parallel()

	q := NewQueue("alice", catalogWithOwners("alice"), filter.Spec{})
	require.True(t, q.Exhausted())

	_, ok := q.Decide(Right)
	assert.False(t, ok)
	assert.Equal(t, 0, q.Cursor())
	assert.Equal(t, 0, q.SwipeCount())
}

func TestQueueMonotonicity(t *testing.T) {
	t.Parallel()

	q := NewQueue("alice", catalogWithOwners("bob", "carol", "dave"), filter.Spec{})
	directions := []Direction{Left, Right, Right, Left, Right}

	prevCursor, prevCount := q.Cursor(), q.SwipeCount()
	for _, dir := range directions {
		_, hadCurrent := q.Current()
		_, ok := q.Decide(dir)
		assert.Equal(t, hadCurrent, ok)
		assert.GreaterOrEqual(t, q.Cursor(), prevCursor)
		if hadCurrent {
			assert.Equal(t, prevCursor+1, q.Cursor())
			assert.Equal(t, prevCount+1, q.SwipeCount())
		}
		prevCursor, prevCount = q.Cursor(), q.SwipeCount()
	}
	assert.Equal(t, 3, q.SwipeCount())
}

func TestQueueResetKeepsSwipeCount(t *testing.T) {
	t.Parallel()

	catalog := catalogWithOwners("bob", "carol")
	q := NewQueue("alice", catalog, filter.Spec{})
	q.Decide(Left)
	q.Decide(Left)
	require.True(t, q.Exhausted())

	q.Reset(catalog, filter.Spec{})
	assert.False(t, q.Exhausted())
	assert.Equal(t, 0, q.Cursor())
	assert.Equal(t, 2, q.Remaining())
	assert.Equal(t, 2, q.SwipeCount())

	q.Reset(catalog, filter.Spec{Category: "Shoes"})
	assert.True(t, q.Exhausted())
	assert.Equal(t, 2, q.SwipeCount())
}

func TestQueueNilCatalog(t *testing.T) {
	t.Parallel()

	q := NewQueue("alice", nil, filter.Spec{})
	assert.True(t, q.Exhausted())
	assert.Empty(t, q.Candidates())
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	d, err := ParseDirection(" Right ")
	require.NoError(t, err)
	assert.Equal(t, Right, d)

	_, err = ParseDirection("up")
	assert.Error(t, err)
}
