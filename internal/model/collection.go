package model

// Collection is the ordered set of entries making up a catalog.
// Order is insertion order and is never re-sorted.
type Collection []Entry

// NewCollection returns a collection backed by a copy of entries.
// Nil image slices are normalized to empty ones.
func NewCollection(entries []Entry) Collection {
	c := make(Collection, len(entries))
	copy(c, entries)
	c.Normalize()
	return c
}

// Normalize replaces nil image slices with empty ones in place.
func (c Collection) Normalize() {
	for i := range c {
		if c[i].Images == nil {
			c[i].Images = []string{}
		}
	}
}

// CountWithImages returns how many entries have at least one image.
func (c Collection) CountWithImages() int {
	n := 0
	for _, e := range c {
		if e.HasImages() {
			n++
		}
	}
	return n
}

// ImageCount returns the total number of image references in the collection.
func (c Collection) ImageCount() int {
	n := 0
	for _, e := range c {
		n += len(e.Images)
	}
	return n
}
