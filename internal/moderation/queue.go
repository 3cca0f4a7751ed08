// Package moderation provides the search and removal primitives behind the
// admin review queues for pending items and flagged runway posts.
package moderation

import (
	"strings"

	"rewear/internal/models"
)

// FieldsFunc extracts the searchable text fields of an entry.
type FieldsFunc[T any] func(T) []string

// IDFunc extracts the identifier of an entry.
type IDFunc[T any] func(T) string

// Search returns the entries with at least one field containing term,
// compared case-insensitively. An empty term returns every entry.
func Search[T any](entries []T, term string, fields FieldsFunc[T]) []T {
	out := make([]T, 0, len(entries))
	needle := strings.ToLower(term)
	for _, entry := range entries {
		if needle == "" || containsAny(fields(entry), needle) {
			out = append(out, entry)
		}
	}
	return out
}

// Remove returns entries without the one identified by id. Removing an
// unknown id returns an equal copy of entries.
func Remove[T any](entries []T, id string, idOf IDFunc[T]) []T {
	out := make([]T, 0, len(entries))
	for _, entry := range entries {
		if idOf(entry) != id {
			out = append(out, entry)
		}
	}
	return out
}

func containsAny(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Queue is a review list bound to its field and id extractors.
type Queue[T any] struct {
	entries []T
	fields  FieldsFunc[T]
	idOf    IDFunc[T]
}

// NewQueue wraps entries in a Queue.
func NewQueue[T any](entries []T, fields FieldsFunc[T], idOf IDFunc[T]) *Queue[T] {
	return &Queue[T]{entries: entries, fields: fields, idOf: idOf}
}

// Search returns the entries matching term.
func (q *Queue[T]) Search(term string) []T {
	return Search(q.entries, term, q.fields)
}

// Remove drops the entry with id and reports whether it was present.
func (q *Queue[T]) Remove(id string) bool {
	before := len(q.entries)
	q.entries = Remove(q.entries, id, q.idOf)
	return len(q.entries) != before
}

// Contains reports whether an entry with id is queued.
func (q *Queue[T]) Contains(id string) bool {
	for _, entry := range q.entries {
		if q.idOf(entry) == id {
			return true
		}
	}
	return false
}

// Len returns the number of queued entries.
func (q *Queue[T]) Len() int { return len(q.entries) }

// Entries returns the queued entries in order.
func (q *Queue[T]) Entries() []T {
	out := make([]T, len(q.entries))
	copy(out, q.entries)
	return out
}

// PendingItemFields searches pending listings by title and owner name.
func PendingItemFields(item models.Item) []string {
	return []string{item.Title, item.OwnerName()}
}

// FlaggedPostFields searches flagged posts by caption and reporter name.
func FlaggedPostFields(post models.FeedPost) []string {
	return []string{post.Caption, post.ReporterName()}
}

// ItemID returns the id of a listing.
func ItemID(item models.Item) string { return item.ID }

// PostID returns the id of a runway post.
func PostID(post models.FeedPost) string { return post.ID }

// NewPendingItems builds the pending listing queue.
func NewPendingItems(items []models.Item) *Queue[models.Item] {
	return NewQueue(items, PendingItemFields, ItemID)
}

// NewFlaggedPosts builds the flagged post queue.
func NewFlaggedPosts(posts []models.FeedPost) *Queue[models.FeedPost] {
	return NewQueue(posts, FlaggedPostFields, PostID)
}
