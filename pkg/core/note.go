package core

// Note is the central entity of the domain.
// It is a title/description record identified by an ID assigned by the Store.
type Note struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Collection is the ordered set of notes owned by a Store.
// Values handed out by the Store are snapshots and never change after the fact.
type Collection []Note

// Clone returns an independent copy of the collection.
func (c Collection) Clone() Collection {
	if c == nil {
		return Collection{}
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Index returns the position of the note with the given id, or -1.
func (c Collection) Index(id int64) int {
	for i, n := range c {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the note with the given id.
func (c Collection) Find(id int64) (Note, bool) {
	if i := c.Index(id); i >= 0 {
		return c[i], true
	}
	return Note{}, false
}

// MaxID returns the highest id in the collection, or 0 when empty.
func (c Collection) MaxID() int64 {
	var highest int64
	for _, n := range c {
		if n.ID > highest {
			highest = n.ID
		}
	}
	return highest
}
