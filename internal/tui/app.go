package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/animedex/internal/catalog"
	"github.com/nikbrunner/animedex/internal/listing"
	"github.com/nikbrunner/animedex/internal/model"
	"github.com/nikbrunner/animedex/internal/storage"
	"github.com/nikbrunner/animedex/internal/tui/layout"
)

// catalogLoadedMsg reports the end of a catalog load.
type catalogLoadedMsg struct {
	version uint64
	err     error
}

// App is the main bubbletea model for the catalog browser.
type App struct {
	store  *catalog.Store
	source storage.Source
	keys   KeyMap
	styles Styles

	browser listing.Browser
	cursor  int // selected card on the current page
	mode    Mode
	load    LoadState

	search SearchState
	detail DetailState

	// Message line
	messageText string
	messageType MessageType

	writeClipboard func(string) error
	openURL        func(string) error

	layoutConfig layout.LayoutConfig

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store        *catalog.Store       // required when Source is set
	Source       storage.Source       // optional, loaded asynchronously by Init
	Entries      []model.Entry        // optional initial collection
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Clipboard    func(string) error   // optional, uses the system clipboard if nil
	OpenURL      func(string) error   // optional, uses OpenURL if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	writeClipboard := params.Clipboard
	if writeClipboard == nil {
		writeClipboard = clipboard.WriteAll
	}

	openURL := params.OpenURL
	if openURL == nil {
		openURL = OpenURL
	}

	entries := params.Entries
	if entries == nil && params.Store != nil {
		entries = params.Store.Get()
	}

	return App{
		store:          params.Store,
		source:         params.Source,
		keys:           keys,
		styles:         styles,
		browser:        listing.NewBrowser(entries),
		mode:           ModeBrowse,
		load:           LoadState{Loading: params.Source != nil && params.Store != nil},
		search:         NewSearchState(layoutCfg),
		writeClipboard: writeClipboard,
		openURL:        openURL,
		layoutConfig:   layoutCfg,
		width:          80,
		height:         24,
	}
}

// WithDimensions returns a copy of the App sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the selected card index on the current page.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Browser returns the filter and page state.
func (a App) Browser() listing.Browser {
	return a.browser
}

// Load returns the catalog load state.
func (a App) Load() LoadState {
	return a.load
}

// Message returns the current message line text.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// Detail returns the detail modal state.
func (a App) Detail() DetailState {
	return a.detail
}

// SelectedEntry returns the entry under the cursor, or nil on an empty page.
func (a App) SelectedEntry() *model.Entry {
	entries := a.browser.View().Entries
	if a.cursor < 0 || a.cursor >= len(entries) {
		return nil
	}
	e := entries[a.cursor]
	return &e
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.load.Loading {
		return a.loadCatalog()
	}
	return nil
}

// loadCatalog runs the store load off the UI goroutine.
func (a App) loadCatalog() tea.Cmd {
	store, src := a.store, a.source
	return func() tea.Msg {
		err := store.Load(context.Background(), src)
		return catalogLoadedMsg{version: store.Version(), err: err}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.clampCursor()
		return a, nil

	case catalogLoadedMsg:
		a.load.Loading = false
		a.load.Err = msg.err
		if msg.err != nil {
			a.setMessage(MessageError, msg.err.Error())
			return a, nil
		}
		a.clearMessage()
		if msg.version != a.load.Version {
			a.load.Version = msg.version
			a.browser.SetEntries(a.store.Get())
			a.cursor = 0
		}
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeSearch:
			return a.updateSearch(msg)
		case ModeDetail:
			return a.updateDetail(msg)
		case ModeHelp:
			return a.updateHelp(msg)
		default:
			return a.updateBrowse(msg)
		}
	}

	return a, nil
}

// updateBrowse handles keys on the card grid.
func (a App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.clearMessage()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.search.Input.SetValue(a.browser.State().Query)
		a.search.Input.CursorEnd()
		return a, a.search.Input.Focus()

	case key.Matches(msg, a.keys.ClearSearch):
		a.search.Reset()
		a.changePage(func(b *listing.Browser) { b.SetQuery("") })

	case key.Matches(msg, a.keys.ToggleWithImages):
		a.changePage(func(b *listing.Browser) { b.ToggleImageFilter(listing.FilterWithImages) })

	case key.Matches(msg, a.keys.ToggleWithoutImages):
		a.changePage(func(b *listing.Browser) { b.ToggleImageFilter(listing.FilterWithoutImages) })

	case key.Matches(msg, a.keys.NextPage):
		a.changePage((*listing.Browser).Next)

	case key.Matches(msg, a.keys.PrevPage):
		a.changePage((*listing.Browser).Prev)

	case key.Matches(msg, a.keys.FirstPage):
		a.changePage((*listing.Browser).First)

	case key.Matches(msg, a.keys.LastPage):
		a.changePage((*listing.Browser).Last)

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1, 0)

	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1, 0)

	case key.Matches(msg, a.keys.Left):
		a.moveCursor(0, -1)

	case key.Matches(msg, a.keys.Right):
		a.moveCursor(0, 1)

	case key.Matches(msg, a.keys.Open):
		if e := a.SelectedEntry(); e != nil {
			a.detail = DetailState{Entry: *e}
			a.mode = ModeDetail
		}

	case key.Matches(msg, a.keys.Reload):
		if a.store != nil && a.source != nil && !a.load.Loading {
			a.load.Loading = true
			a.setMessage(MessageInfo, "Reloading "+a.source.Describe())
			return a, a.loadCatalog()
		}

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

// updateSearch feeds keys to the search input and re-filters on every change.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.ForceQuit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Open):
		a.search.Input.Blur()
		a.mode = ModeBrowse
		return a, nil

	case key.Matches(msg, a.keys.Close):
		// Esc on an empty input also clears the active query
		if a.search.Input.Value() == "" {
			a.changePage(func(b *listing.Browser) { b.SetQuery("") })
		}
		a.search.Input.Blur()
		a.mode = ModeBrowse
		return a, nil

	case key.Matches(msg, a.keys.ClearSearch):
		a.search.Input.Reset()
		a.changePage(func(b *listing.Browser) { b.SetQuery("") })
		return a, nil
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	query := a.search.Input.Value()
	a.changePage(func(b *listing.Browser) { b.SetQuery(query) })
	return a, cmd
}

// updateDetail handles keys inside the detail modal.
func (a App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.ForceQuit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Close), key.Matches(msg, a.keys.Quit):
		a.detail.Reset()
		a.mode = ModeBrowse

	case key.Matches(msg, a.keys.Down):
		if a.detail.ImageCursor < len(a.detail.Entry.Images)-1 {
			a.detail.ImageCursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.detail.ImageCursor > 0 {
			a.detail.ImageCursor--
		}

	case key.Matches(msg, a.keys.OpenImage):
		url := a.detail.SelectedImage()
		if url == "" {
			a.setMessage(MessageWarning, "No image to open")
			break
		}
		if err := a.openURL(url); err != nil {
			a.setMessage(MessageError, "Failed to open image: "+err.Error())
			break
		}
		a.setMessage(MessageSuccess, "Opened "+url)

	case key.Matches(msg, a.keys.YankURL):
		url := a.detail.SelectedImage()
		if url == "" {
			a.setMessage(MessageWarning, "No image to yank")
			break
		}
		if err := a.writeClipboard(url); err != nil {
			a.setMessage(MessageError, "Failed to copy to clipboard")
			break
		}
		a.setMessage(MessageSuccess, "Yanked "+url)
	}

	return a, nil
}

// updateHelp closes the help overlay.
func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.ForceQuit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help), key.Matches(msg, a.keys.Close), key.Matches(msg, a.keys.Quit):
		a.mode = ModeBrowse
	}
	return a, nil
}

// changePage applies a browser mutation and resets the cursor if the page changed.
func (a *App) changePage(mutate func(*listing.Browser)) {
	before := a.browser.View()
	mutate(&a.browser)
	after := a.browser.View()

	if before.Page != after.Page || before.Offset() != after.Offset() ||
		before.Query != after.Query || before.Mode != after.Mode {
		a.cursor = 0
	}
	a.clampCursor()
}

// moveCursor moves the card cursor within the current page grid.
func (a *App) moveCursor(dRow, dCol int) {
	count := len(a.browser.View().Entries)
	a.cursor = layout.CalculateCursorMove(a.cursor, count, a.gridColumns(), dRow, dCol)
}

// clampCursor keeps the cursor on an existing card.
func (a *App) clampCursor() {
	count := len(a.browser.View().Entries)
	if a.cursor >= count {
		a.cursor = count - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// gridLayout computes the card grid for the current page and terminal size.
func (a App) gridLayout() layout.GridLayout {
	return layout.CalculateGridLayout(a.width, a.height, len(a.browser.View().Entries), a.layoutConfig.Grid)
}

// gridColumns returns the columns the cursor moves across. Compact mode is a single list.
func (a App) gridColumns() int {
	grid := a.gridLayout()
	if grid.Compact {
		return 1
	}
	return grid.Columns
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	// Load errors stay visible until the next successful load
	if a.load.Err != nil {
		return
	}
	a.messageText = ""
	a.messageType = MessageInfo
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
