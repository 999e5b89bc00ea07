package listing

import (
	"fmt"
	"testing"

	"github.com/nikbrunner/animedex/internal/model"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

// makeEntries builds n entries with IDs 1..n. hasImage decides which entries
// carry an image; nil means none do.
func makeEntries(n int, hasImage func(id int) bool) []model.Entry {
	entries := make([]model.Entry, n)
	for i := range entries {
		id := i + 1
		title := fmt.Sprintf("Entry %02d", id)
		entries[i] = model.Entry{
			ID:     id,
			Title:  model.Title{Romaji: title, Native: title, Preferred: title},
			Images: []string{},
		}
		if hasImage != nil && hasImage(id) {
			entries[i].Images = []string{fmt.Sprintf("https://img.example/%d.jpg", id)}
		}
	}
	return entries
}

func entryIDs(entries []model.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func TestDerive_TwelveEntries(t *testing.T) {
	entries := makeEntries(12, nil)

	first := Derive(entries, FilterState{Page: 1})
	assert.Equal(t, first.TotalPages, 2)
	assert.DeepEqual(t, entryIDs(first.Entries), seq(1, 10))
	assert.Equal(t, first.Window.String(), "[1] 2")

	second := Derive(entries, FilterState{Page: 2})
	assert.DeepEqual(t, entryIDs(second.Entries), []int{11, 12})
	assert.Equal(t, second.Window.String(), "1 [2]")
}

func TestDerive_TwentyThreeEntriesPageThree(t *testing.T) {
	r := Derive(makeEntries(23, nil), FilterState{Page: 3})

	assert.Equal(t, r.TotalPages, 3)
	assert.Equal(t, r.Page, 3)
	assert.DeepEqual(t, r.Window.Pages(), []int{1, 2, 3})
	assert.DeepEqual(t, entryIDs(r.Entries), seq(21, 23))
}

func TestDerive_ClampsStalePage(t *testing.T) {
	r := Derive(makeEntries(12, nil), FilterState{Page: 7})

	assert.Equal(t, r.Page, 2)
	assert.DeepEqual(t, entryIDs(r.Entries), []int{11, 12})
}

func TestDerive_Empty(t *testing.T) {
	r := Derive(nil, FilterState{Query: "x", Page: 4})

	assert.Equal(t, r.TotalPages, 0)
	assert.Equal(t, r.Page, 1)
	assert.Assert(t, is.Len(r.Entries, 0))
	assert.Assert(t, is.Nil(r.Window))
}

func TestDerive_EchoesFilterValues(t *testing.T) {
	r := Derive(makeEntries(3, nil), FilterState{Query: "entry", Mode: FilterWithoutImages, Page: 1})

	assert.Equal(t, r.Query, "entry")
	assert.Equal(t, r.Mode, FilterWithoutImages)
}

func TestDerive_Idempotent(t *testing.T) {
	entries := makeEntries(37, func(id int) bool { return id%3 == 0 })
	state := FilterState{Query: "entry 1", Mode: FilterWithImages, Page: 1}

	a := Derive(entries, state)
	b := Derive(entries, state)
	assert.DeepEqual(t, a, b)
}

func TestDerive_PageSliceIsIsolated(t *testing.T) {
	r := Derive(makeEntries(12, nil), FilterState{Page: 1})

	// Appending to the visible page must not clobber the next filtered entry.
	_ = append(r.Entries, model.Entry{ID: 999})
	assert.Equal(t, r.Filtered[10].ID, 11)
}
