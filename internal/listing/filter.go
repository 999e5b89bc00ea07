package listing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nikbrunner/animedex/internal/model"
	"github.com/nikbrunner/animedex/internal/search"
)

// FilterMode restricts entries by image presence.
type FilterMode int

const (
	FilterNone          FilterMode = iota // keep every entry
	FilterWithImages                      // keep entries with at least one image
	FilterWithoutImages                   // keep entries without images
)

// ErrUnknownFilterMode is returned by ParseFilterMode for unrecognized names.
var ErrUnknownFilterMode = errors.New("unknown image filter")

// filterModeNames are the canonical names, indexed by FilterMode.
var filterModeNames = []string{"all", "with", "without"}

var filterModeAliases = map[string]FilterMode{
	"all":                 FilterNone,
	"none":                FilterNone,
	"with":                FilterWithImages,
	"with-images":         FilterWithImages,
	"only-with-images":    FilterWithImages,
	"without":             FilterWithoutImages,
	"without-images":      FilterWithoutImages,
	"only-without-images": FilterWithoutImages,
}

// String returns the canonical name of the mode.
func (m FilterMode) String() string {
	if m < 0 || int(m) >= len(filterModeNames) {
		return fmt.Sprintf("FilterMode(%d)", int(m))
	}
	return filterModeNames[m]
}

// FilterModeNames returns the canonical mode names.
func FilterModeNames() []string {
	names := make([]string, len(filterModeNames))
	copy(names, filterModeNames)
	return names
}

// ParseFilterMode maps a name such as "with" or "without-images" to a FilterMode.
// Matching ignores case and surrounding whitespace.
func ParseFilterMode(s string) (FilterMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return FilterNone, nil
	}
	if mode, ok := filterModeAliases[name]; ok {
		return mode, nil
	}
	if hint := search.Suggest(name, filterModeNames); hint != "" {
		return FilterNone, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownFilterMode, s, hint)
	}
	return FilterNone, fmt.Errorf("%w %q (expected one of %s)",
		ErrUnknownFilterMode, s, strings.Join(filterModeNames, ", "))
}

// Keep reports whether an entry passes the mode.
func (m FilterMode) Keep(e model.Entry) bool {
	switch m {
	case FilterWithImages:
		return e.HasImages()
	case FilterWithoutImages:
		return !e.HasImages()
	default:
		return true
	}
}

// Filter applies mode first, then the query, preserving collection order.
// The result is never nil.
func Filter(entries []model.Entry, query string, mode FilterMode) []model.Entry {
	matcher := search.NewMatcher(query)
	result := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if !mode.Keep(e) {
			continue
		}
		if matcher.Match(e) {
			result = append(result, e)
		}
	}
	return result
}
