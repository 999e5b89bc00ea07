package tui

import (
	"strconv"

	"github.com/nikbrunner/animedex/internal/model"
)

// placeholderLabel stands in for the cover when an entry has no images.
const placeholderLabel = "[no image]"

// Item is an entry as shown on a card, with its 1-based position among all matches.
type Item struct {
	Entry    model.Entry
	Position int
}

// newItems wraps a page of entries, numbering them from offset+1.
func newItems(entries []model.Entry, offset int) []Item {
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e, Position: offset + i + 1}
	}
	return items
}

// ID returns the entry ID as a string.
func (i Item) ID() string {
	return strconv.Itoa(i.Entry.ID)
}

// Title returns the preferred title.
func (i Item) Title() string {
	return i.Entry.DisplayTitle()
}

// Subtitle returns the english title when it differs from the preferred one.
func (i Item) Subtitle() string {
	return i.Entry.Subtitle()
}

// Cover returns the first image reference or the placeholder label.
func (i Item) Cover() string {
	if !i.Entry.HasImages() {
		return placeholderLabel
	}
	return i.Entry.Cover()
}

// HasCover returns true if the entry has a real image.
func (i Item) HasCover() bool {
	return i.Entry.HasImages()
}
