package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/animedex/internal/model"
	"github.com/nikbrunner/animedex/internal/tui/layout"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)
)

// Picker is a simple TUI for selecting one entry from search matches.
type Picker struct {
	entries   []model.Entry
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a new Picker over the given matches.
func New(entries []model.Entry, query string) Picker {
	return Picker{
		entries: entries,
		query:   query,
		cursor:  0,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit

		case tea.KeyEnter:
			p.selected = true
			return p, tea.Quit

		case tea.KeyDown:
			p.moveDown()
			return p, nil

		case tea.KeyUp:
			p.moveUp()
			return p, nil
		}

		if msg.Type == tea.KeyRunes {
			switch string(msg.Runes) {
			case "j":
				p.moveDown()
				return p, nil
			case "k":
				p.moveUp()
				return p, nil
			case "q":
				p.cancelled = true
				return p, tea.Quit
			}
		}
	}

	return p, nil
}

func (p *Picker) moveDown() {
	if p.cursor < len(p.entries)-1 {
		p.cursor++
	}
}

func (p *Picker) moveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.entries))))
	b.WriteString("\n\n")

	// Each entry takes two lines; keep the cursor on screen.
	maxVisible := max(1, (p.height-6)/2)
	start, end := layout.CalculateVisibleListItems(maxVisible, p.cursor, len(p.entries))
	textCfg := layout.DefaultConfig().Text
	width := max(10, p.width-4)

	for i := start; i < end; i++ {
		e := p.entries[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		title, _ := layout.TruncateText(e.DisplayTitle(), width, textCfg)
		detail := e.Cover()
		if sub := e.Subtitle(); sub != "" {
			detail = sub + " · " + detail
		}
		detail, _ = layout.TruncateText(detail, width, textCfg)

		b.WriteString(fmt.Sprintf("%s%s\n", cursor, style.Render(title)))
		b.WriteString(fmt.Sprintf("   %s\n", subtleStyle.Render(detail)))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("j/k: move  Enter: open  q/Esc: cancel"))

	return b.String()
}

// SelectedEntry returns the selected entry, or nil if cancelled.
func (p Picker) SelectedEntry() *model.Entry {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.entries) {
		return &p.entries[p.cursor]
	}
	return nil
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
