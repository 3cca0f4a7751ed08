// Package filter selects catalog items matching a browse or swipe filter.
package filter

import (
	"strings"

	"rewear/internal/models"
)

// Spec describes the criteria of a catalog filter. Every populated field
// must match for an item to be kept.
type Spec struct {
	SearchTerm string   `json:"q,omitempty" query:"q"`
	Category   string   `json:"category,omitempty" query:"category"`
	Size       string   `json:"size,omitempty" query:"size"`
	Condition  string   `json:"condition,omitempty" query:"condition"`
	StyleTags  []string `json:"style_tags,omitempty" query:"tags"`
}

// IsAll reports whether a select value means "no constraint": the empty
// string, "All" in any case, or a UI label such as "All Categories".
func IsAll(value string) bool {
	if value == "" || strings.EqualFold(value, "all") {
		return true
	}
	return len(value) > 4 && strings.EqualFold(value[:4], "all ")
}

// ActiveCount returns how many criteria constrain the result. Each style tag
// counts once.
func (s Spec) ActiveCount() int {
	n := len(s.StyleTags)
	if s.SearchTerm != "" {
		n++
	}
	for _, v := range []string{s.Category, s.Size, s.Condition} {
		if !IsAll(v) {
			n++
		}
	}
	return n
}

// IsActive reports whether any criterion is set.
func (s Spec) IsActive() bool {
	return s.ActiveCount() > 0
}

// Filter returns the items matching spec in their original order. The input
// slice is never modified.
func Filter(items []models.Item, spec Spec) []models.Item {
	out := make([]models.Item, 0, len(items))
	m := newMatcher(spec)
	for _, item := range items {
		if m.match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether a single item satisfies spec.
func Matches(item models.Item, spec Spec) bool {
	return newMatcher(spec).match(item)
}

type matcher struct {
	spec Spec
	term string
	tags map[string]struct{}
}

func newMatcher(spec Spec) matcher {
	m := matcher{spec: spec, term: strings.ToLower(spec.SearchTerm)}
	if len(spec.StyleTags) > 0 {
		m.tags = make(map[string]struct{}, len(spec.StyleTags))
		for _, tag := range spec.StyleTags {
			m.tags[strings.ToLower(tag)] = struct{}{}
		}
	}
	return m
}

func (m matcher) match(item models.Item) bool {
	if !equalOrAll(m.spec.Category, item.Category) ||
		!equalOrAll(m.spec.Size, item.Size) ||
		!equalOrAll(m.spec.Condition, item.Condition) {
		return false
	}
	return m.matchTerm(item) && m.matchTags(item)
}

func (m matcher) matchTerm(item models.Item) bool {
	if m.term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.Title), m.term) ||
		strings.Contains(strings.ToLower(item.Description), m.term) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), m.term) {
			return true
		}
	}
	return false
}

func (m matcher) matchTags(item models.Item) bool {
	if len(m.tags) == 0 {
		return true
	}
	for _, tag := range item.Tags {
		if _, ok := m.tags[strings.ToLower(tag)]; ok {
			return true
		}
	}
	return false
}

func equalOrAll(want, got string) bool {
	return IsAll(want) || want == got
}

// ParseTags splits a comma separated query value into tags, dropping empty
// entries.
func ParseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
