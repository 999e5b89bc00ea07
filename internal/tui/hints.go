package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "n/]", "enter")
	Desc string // Short description (e.g., "next", "details")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "n/]:next p/[:prev"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "o open  Y yank  esc close"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Cursor and page movement
	Filter []Hint // Search and image toggles
	Action []Hint // Enter, o, Y
	System []Hint // ?, q, esc
}

// All returns all hints flattened in display order: Nav + Action + Filter + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Filter)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Filter...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeBrowse:
		return a.getBrowseModeHints()
	case ModeSearch:
		return HintSet{
			Filter: []Hint{{Key: "type", Desc: "filter"}, {Key: "ctrl+u", Desc: "clear"}},
			System: []Hint{{Key: "enter/esc", Desc: "done"}},
		}
	case ModeDetail:
		// Detail modal renders its own inline hints
		return HintSet{}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/q/esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getBrowseModeHints returns hints for the card grid.
func (a App) getBrowseModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "hjkl", Desc: "move"},
		},
		Filter: []Hint{
			{Key: "/", Desc: "search"},
			{Key: "i/I", Desc: "images"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}

	if a.browser.View().TotalPages > 1 {
		hints.Nav = append(hints.Nav,
			Hint{Key: "n/p", Desc: "page"},
			Hint{Key: "g/G", Desc: "first/last"},
		)
	}
	if len(a.browser.View().Entries) > 0 {
		hints.Action = []Hint{{Key: "enter", Desc: "details"}}
	}
	if a.browser.State().Query != "" {
		hints.Filter = append(hints.Filter, Hint{Key: "ctrl+u", Desc: "clear"})
	}
	return hints
}

// getDetailHints returns the inline hints shown inside the detail modal.
func (a App) getDetailHints() []Hint {
	hints := []Hint{}
	if len(a.detail.Entry.Images) > 1 {
		hints = append(hints, Hint{Key: "j/k", Desc: "image"})
	}
	if a.detail.Entry.HasImages() {
		hints = append(hints,
			Hint{Key: "o", Desc: "open"},
			Hint{Key: "Y", Desc: "yank"},
		)
	}
	return append(hints, Hint{Key: "esc", Desc: "close"})
}
