package listing

import "github.com/nikbrunner/animedex/internal/model"

// FilterState is the user-controlled input of a derivation.
type FilterState struct {
	Query string
	Mode  FilterMode
	Page  int // 1-based
}

// Result is everything the presentation needs for one render.
type Result struct {
	Filtered   []model.Entry // every match, in collection order
	Entries    []model.Entry // the visible page
	TotalPages int
	Page       int
	Window     Window
	Query      string
	Mode       FilterMode
}

// Derive filters entries and slices out the requested page.
// It is a pure function: the same inputs always produce the same Result.
func Derive(entries []model.Entry, state FilterState) Result {
	filtered := Filter(entries, state.Query, state.Mode)
	total := TotalPages(len(filtered))
	page := ClampPage(state.Page, total)
	start, end := PageBounds(page, len(filtered))

	return Result{
		Filtered:   filtered,
		Entries:    filtered[start:end:end],
		TotalPages: total,
		Page:       page,
		Window:     PageWindow(page, total),
		Query:      state.Query,
		Mode:       state.Mode,
	}
}

// Meta returns the page summary of r.
func (r Result) Meta() Meta {
	return Meta{
		Page:        r.Page,
		PageSize:    PageSize,
		TotalPages:  r.TotalPages,
		TotalItems:  len(r.Filtered),
		HasPrevious: r.Page > 1,
		HasNext:     r.Page < r.TotalPages,
	}
}

// Offset returns the 0-based index in Filtered of the first visible entry.
func (r Result) Offset() int {
	start, _ := PageBounds(r.Page, len(r.Filtered))
	return start
}
