// Package swipe implements the one-candidate-at-a-time swipe queue.
package swipe

import (
	"fmt"
	"strings"

	"rewear/internal/filter"
	"rewear/internal/models"
)

// Direction is the viewer's decision on a candidate.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

// ParseDirection validates a direction value supplied by a client.
func ParseDirection(raw string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(raw))); d {
	case Left, Right:
		return d, nil
	}
	return "", fmt.Errorf("direction must be %q or %q", Left, Right)
}

// Catalog supplies the items a queue draws its candidates from.
type Catalog interface {
	Items() []models.Item
}

// StaticCatalog is a Catalog over a fixed slice.
type StaticCatalog []models.Item

// Items returns the slice itself.
func (c StaticCatalog) Items() []models.Item { return c }

// Decision is the outcome of a single swipe.
type Decision struct {
	Item      models.Item `json:"item"`
	Direction Direction   `json:"direction"`
	// Interest is set for right swipes; callers award points for it.
	Interest bool `json:"interest"`
}

// Queue presents a viewer's candidates one at a time. It is not safe for
// concurrent use; Sessions serializes access per session.
type Queue struct {
	viewerID   string
	spec       filter.Spec
	candidates []models.Item
	cursor     int
	swipeCount int
}

// NewQueue builds a queue for viewerID over the catalog filtered by spec.
func NewQueue(viewerID string, catalog Catalog, spec filter.Spec) *Queue {
	q := &Queue{viewerID: viewerID}
	q.Reset(catalog, spec)
	return q
}

// ViewerID returns the viewer the queue was built for.
func (q *Queue) ViewerID() string { return q.viewerID }

// Spec returns the filter the candidates were computed with.
func (q *Queue) Spec() filter.Spec { return q.spec }

// Current returns the candidate on display, or false when exhausted.
func (q *Queue) Current() (models.Item, bool) {
	if q.cursor >= len(q.candidates) {
		return models.Item{}, false
	}
	return q.candidates[q.cursor], true
}

// Decide records a swipe on the current candidate and advances. It returns
// false without touching any state when the queue is exhausted.
func (q *Queue) Decide(direction Direction) (Decision, bool) {
	item, ok := q.Current()
	if !ok {
		return Decision{}, false
	}
	q.swipeCount++
	q.cursor++
	return Decision{
		Item:      item,
		Direction: direction,
		Interest:  direction == Right,
	}, true
}

// Reset recomputes the candidates from catalog with spec and rewinds the
// cursor. The session swipe count is kept.
func (q *Queue) Reset(catalog Catalog, spec filter.Spec) {
	var items []models.Item
	if catalog != nil {
		items = catalog.Items()
	}
	matched := filter.Filter(items, spec)
	candidates := matched[:0]
	for _, item := range matched {
		if item.OwnerID != q.viewerID {
			candidates = append(candidates, item)
		}
	}
	q.spec = spec
	q.candidates = candidates
	q.cursor = 0
}

// Remaining returns how many candidates are left, including the current one.
func (q *Queue) Remaining() int {
	return len(q.candidates) - q.cursor
}

// SwipeCount returns the number of decisions made during the session.
func (q *Queue) SwipeCount() int { return q.swipeCount }

// Cursor returns the index of the current candidate.
func (q *Queue) Cursor() int { return q.cursor }

// Exhausted reports whether no candidate is left.
func (q *Queue) Exhausted() bool { return q.Remaining() <= 0 }

// Candidates returns a copy of the candidate list.
func (q *Queue) Candidates() []models.Item {
	out := make([]models.Item, len(q.candidates))
	copy(out, q.candidates)
	return out
}
