package listing

import "github.com/nikbrunner/animedex/internal/model"

// Browser owns the filter and page state over a collection.
// Every mutator re-derives the Result before returning.
type Browser struct {
	entries []model.Entry
	state   FilterState
	result  Result
}

// NewBrowser creates a Browser on page 1 with no filters.
func NewBrowser(entries []model.Entry) Browser {
	b := Browser{
		entries: entries,
		state:   FilterState{Mode: FilterNone, Page: 1},
	}
	b.derive()
	return b
}

func (b *Browser) derive() {
	b.result = Derive(b.entries, b.state)
	b.state.Page = b.result.Page
}

// View returns the current derivation.
func (b Browser) View() Result {
	return b.result
}

// State returns the current filter state.
func (b Browser) State() FilterState {
	return b.state
}

// Entries returns the full collection the browser works on.
func (b Browser) Entries() []model.Entry {
	return b.entries
}

// SetEntries replaces the collection and returns to page 1.
func (b *Browser) SetEntries(entries []model.Entry) {
	b.entries = entries
	b.state.Page = 1
	b.derive()
}

// SetQuery changes the query. The page resets to 1 only if the query changed.
func (b *Browser) SetQuery(query string) {
	if query == b.state.Query {
		return
	}
	b.state.Query = query
	b.state.Page = 1
	b.derive()
}

// SetImageFilterMode changes the image filter. The page resets to 1 only if
// the mode changed.
func (b *Browser) SetImageFilterMode(mode FilterMode) {
	if mode == b.state.Mode {
		return
	}
	b.state.Mode = mode
	b.state.Page = 1
	b.derive()
}

// ToggleImageFilter gives checkbox semantics: toggling the active mode clears
// it, toggling the other mode switches to it.
func (b *Browser) ToggleImageFilter(mode FilterMode) {
	if b.state.Mode == mode {
		b.SetImageFilterMode(FilterNone)
		return
	}
	b.SetImageFilterMode(mode)
}

// SetCurrentPage jumps to page n, clamped into the valid range.
func (b *Browser) SetCurrentPage(n int) {
	b.state.Page = ClampPage(n, b.result.TotalPages)
	b.derive()
}

// Next moves one page forward. No-op on the last page.
func (b *Browser) Next() {
	b.SetCurrentPage(b.state.Page + 1)
}

// Prev moves one page back. No-op on the first page.
func (b *Browser) Prev() {
	b.SetCurrentPage(b.state.Page - 1)
}

// First jumps to page 1.
func (b *Browser) First() {
	b.SetCurrentPage(1)
}

// Last jumps to the final page.
func (b *Browser) Last() {
	b.SetCurrentPage(b.result.TotalPages)
}
