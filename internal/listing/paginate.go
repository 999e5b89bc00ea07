package listing

import (
	"strconv"
	"strings"
)

const (
	// PageSize is the number of entries shown per page.
	PageSize = 10

	// WindowSize is the number of consecutive page links around the current page.
	WindowSize = 5
)

// LinkKind distinguishes page numbers from gap markers in a Window.
type LinkKind int

const (
	LinkPage LinkKind = iota
	LinkEllipsis
)

// PageLink is one element of the pagination bar.
type PageLink struct {
	Kind   LinkKind
	Page   int  // 0 for ellipses
	Active bool // true for the current page
}

// Window is the ordered pagination bar. A nil Window means no controls.
type Window []PageLink

// Pages returns the page numbers in the window, skipping ellipses.
func (w Window) Pages() []int {
	var pages []int
	for _, l := range w {
		if l.Kind == LinkPage {
			pages = append(pages, l.Page)
		}
	}
	return pages
}

// String renders the window as "1 … 4 [5] 6 … 12".
func (w Window) String() string {
	parts := make([]string, len(w))
	for i, l := range w {
		switch {
		case l.Kind == LinkEllipsis:
			parts[i] = "…"
		case l.Active:
			parts[i] = "[" + strconv.Itoa(l.Page) + "]"
		default:
			parts[i] = strconv.Itoa(l.Page)
		}
	}
	return strings.Join(parts, " ")
}

// TotalPages returns ceil(count / PageSize), or 0 for an empty list.
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}

// ClampPage clamps page into [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// PageBounds returns the slice bounds of page within count items.
// page must already be clamped.
func PageBounds(page, count int) (start, end int) {
	start = (page - 1) * PageSize
	if start > count {
		start = count
	}
	end = start + PageSize
	if end > count {
		end = count
	}
	return start, end
}

// PageWindow computes the pagination bar for current within totalPages.
// Returns nil when there is at most one page.
func PageWindow(current, totalPages int) Window {
	if totalPages <= 1 {
		return nil
	}
	current = ClampPage(current, totalPages)

	startPage := min(current-WindowSize/2, totalPages-WindowSize+1)
	startPage = max(1, startPage)
	endPage := min(startPage+WindowSize-1, totalPages)

	w := make(Window, 0, WindowSize+4)
	if startPage > 1 {
		w = append(w, PageLink{Kind: LinkPage, Page: 1})
		if startPage > 2 {
			w = append(w, PageLink{Kind: LinkEllipsis})
		}
	}
	for p := startPage; p <= endPage; p++ {
		w = append(w, PageLink{Kind: LinkPage, Page: p, Active: p == current})
	}
	if endPage < totalPages {
		if endPage < totalPages-1 {
			w = append(w, PageLink{Kind: LinkEllipsis})
		}
		w = append(w, PageLink{Kind: LinkPage, Page: totalPages})
	}
	return w
}

// Meta summarises a page for non-interactive output.
type Meta struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}
