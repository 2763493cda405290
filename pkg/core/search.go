package core

import (
	"strings"
	"sync"
)

// Filter returns, in collection order, every note whose title or description
// contains query, ignoring case. An empty query returns the whole collection.
// The result is a new collection; c is never modified.
func Filter(c Collection, query string) Collection {
	if query == "" {
		return c.Clone()
	}

	q := strings.ToLower(query)
	out := Collection{}
	for _, n := range c {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Description), q) {
			out = append(out, n)
		}
	}
	return out
}

// Snapshotter is anything that can hand out the current collection.
type Snapshotter interface {
	Notes() Collection
}

// View is the visible list: the latest snapshot of a source filtered by a query.
type View struct {
	source Snapshotter
	mu     sync.RWMutex
	query  string
}

// NewView creates a View over source with an empty query.
func NewView(source Snapshotter) *View {
	return &View{source: source}
}

// SetQuery changes the search text.
func (v *View) SetQuery(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = q
}

// Query returns the current search text.
func (v *View) Query() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.query
}

// Visible recomputes the filtered list from the source's current snapshot.
func (v *View) Visible() Collection {
	return Filter(v.source.Notes(), v.Query())
}
