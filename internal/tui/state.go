package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/animedex/internal/model"
	"github.com/nikbrunner/animedex/internal/tui/layout"
)

// Mode is the current interaction mode of the App.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeDetail
	ModeHelp
)

// MessageType controls how the message line is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// SearchState holds the search input. The query itself lives in the browser.
type SearchState struct {
	Input textinput.Model
}

// NewSearchState creates a new SearchState with an initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search titles..."
	input.Prompt = "/"
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth
	return SearchState{Input: input}
}

// Reset clears the input and drops focus.
func (s *SearchState) Reset() {
	s.Input.Reset()
	s.Input.Blur()
}

// DetailState holds the entry shown in the detail modal.
type DetailState struct {
	Entry       model.Entry
	ImageCursor int
}

// Reset clears the detail state.
func (d *DetailState) Reset() {
	d.Entry = model.Entry{}
	d.ImageCursor = 0
}

// SelectedImage returns the image under the cursor, or "" if the entry has none.
func (d DetailState) SelectedImage() string {
	if d.ImageCursor < 0 || d.ImageCursor >= len(d.Entry.Images) {
		return ""
	}
	return d.Entry.Images[d.ImageCursor]
}

// LoadState tracks the catalog load lifecycle.
type LoadState struct {
	Loading bool
	Err     error
	Version uint64
}
