package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/animedex/internal/listing"
	"github.com/nikbrunner/animedex/internal/tui/layout"
)

// renderView creates the complete card grid view.
func (a App) renderView() string {
	switch a.mode {
	case ModeDetail:
		return a.renderDetailModal()
	case ModeHelp:
		return a.renderHelpOverlay()
	}

	parts := []string{
		a.renderHeader(),
		a.renderSearchLine(),
		a.renderStatusLine(),
		a.renderBody(),
	}

	if pagination := a.renderPagination(); pagination != "" {
		parts = append(parts, "", pagination)
	}

	parts = append(parts, a.renderHelpBar())

	content := a.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the app name and the catalog source.
func (a App) renderHeader() string {
	header := a.styles.Title.Render("animedex")
	if a.source == nil {
		return header
	}

	availableWidth := a.width - a.layoutConfig.Grid.HorizontalPadding - len("animedex  ")
	source, _ := layout.TruncateText(a.source.Describe(), availableWidth, a.layoutConfig.Text)
	return header + "  " + a.styles.Status.Render(source)
}

// renderSearchLine renders the search input, the active query, or a prompt.
func (a App) renderSearchLine() string {
	if a.mode == ModeSearch {
		return a.search.Input.View()
	}

	if query := a.browser.State().Query; query != "" {
		return a.styles.Query.Render("/" + query)
	}

	return a.styles.Help.Render("/ to search")
}

// renderStatusLine renders "N matches  [img:mode]  load state".
func (a App) renderStatusLine() string {
	view := a.browser.View()

	matches := len(view.Filtered)
	label := "matches"
	if matches == 1 {
		label = "match"
	}

	var loadState string
	switch {
	case a.load.Loading:
		loadState = "loading..."
	case a.load.Err != nil:
		loadState = "load failed"
	default:
		loadState = "loaded " + strconv.Itoa(len(a.browser.Entries())) + " entries"
	}

	return a.styles.Status.Render(fmt.Sprintf("%d %s  [img:%s]  %s", matches, label, view.Mode, loadState))
}

// renderBody renders the current page as cards, a compact list, or an empty state.
func (a App) renderBody() string {
	view := a.browser.View()

	if len(view.Entries) == 0 {
		return a.renderEmpty()
	}

	items := newItems(view.Entries, view.Offset())
	grid := a.gridLayout()
	if grid.Compact {
		return a.renderCompactList(items)
	}
	return a.renderGrid(items, grid)
}

// renderEmpty explains why there is nothing to show.
func (a App) renderEmpty() string {
	switch {
	case a.load.Loading:
		return a.styles.Empty.Render("Loading catalog...")
	case len(a.browser.Entries()) == 0:
		return a.styles.Empty.Render("(empty catalog)")
	default:
		return a.styles.Empty.Render("No entries match the current filters")
	}
}

// renderGrid lays out cards in rows of grid.Columns.
func (a App) renderGrid(items []Item, grid layout.GridLayout) string {
	var rows []string
	for start := 0; start < len(items); start += grid.Columns {
		end := start + grid.Columns
		if end > len(items) {
			end = len(items)
		}

		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, a.renderCard(items[i], i == a.cursor, grid.CardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard renders one entry as a bordered card: title, subtitle, cover.
func (a App) renderCard(item Item, selected bool, cardWidth int) string {
	textWidth := layout.CalculateCardTextWidth(cardWidth, a.layoutConfig.Grid)

	title, _ := layout.TruncateText(item.Title(), textWidth, a.layoutConfig.Text)
	subtitle, _ := layout.TruncateText(item.Subtitle(), textWidth, a.layoutConfig.Text)
	if subtitle == "" {
		subtitle = " "
	}

	var cover string
	if item.HasCover() {
		truncated, _ := layout.TruncateText(item.Cover(), textWidth, a.layoutConfig.Text)
		cover = a.styles.Image.Render(truncated)
	} else {
		cover = a.styles.Placeholder.Render(placeholderLabel)
	}

	style := a.styles.Card
	if selected {
		style = a.styles.CardActive
	}

	// Width excludes the border
	return style.Width(cardWidth - 2).Render(lipgloss.JoinVertical(lipgloss.Left,
		a.styles.CardTitle.Render(title),
		a.styles.Subtitle.Render(subtitle),
		cover,
	))
}

// renderCompactList renders one line per entry for short terminals, scrolled
// so the cursor stays visible.
func (a App) renderCompactList(items []Item) string {
	maxWidth := a.width - a.layoutConfig.Grid.HorizontalPadding - 1
	visible := max(1, a.height-a.layoutConfig.Grid.ChromeHeight)
	offset := layout.CalculateViewportOffset(a.cursor, len(items), visible)
	end := min(offset+visible, len(items))

	var lines []string
	for i := offset; i < end; i++ {
		item := items[i]
		prefix := strconv.Itoa(item.Position) + ". "
		text, _ := layout.TruncateWithPrefixSuffix(item.Title()+" · "+item.Cover(), maxWidth, prefix, "", a.layoutConfig.Text)

		if i == a.cursor {
			lines = append(lines, a.styles.ItemSelected.Render(text))
		} else {
			lines = append(lines, a.styles.Item.Render(text))
		}
	}
	return strings.Join(lines, "\n")
}

// renderPagination renders "Page X of Y  1 … 4 [5] 6 … 12". Empty when there is one page or none.
func (a App) renderPagination() string {
	view := a.browser.View()
	if view.Window == nil {
		return ""
	}

	parts := make([]string, len(view.Window))
	for i, link := range view.Window {
		switch {
		case link.Kind == listing.LinkEllipsis:
			parts[i] = a.styles.Page.Render("…")
		case link.Active:
			parts[i] = a.styles.PageActive.Render("[" + strconv.Itoa(link.Page) + "]")
		default:
			parts[i] = a.styles.Page.Render(strconv.Itoa(link.Page))
		}
	}

	label := a.styles.HintLabel.Render(fmt.Sprintf("Page %d of %d", view.Page, view.TotalPages))
	return label + "  " + strings.Join(parts, " ")
}

func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	// Line 2: contextual keyboard hints
	if hints := a.renderHints(a.getContextualHints()); hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
		prefix = ""
	}

	maxWidth := a.width - a.layoutConfig.Grid.HorizontalPadding - len(prefix)
	text, _ := layout.TruncateText(a.messageText, maxWidth, a.layoutConfig.Text)
	return msgStyle.Render(prefix + text)
}

// renderDetailModal renders every title and image of the selected entry.
func (a App) renderDetailModal() string {
	entry := a.detail.Entry
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	textWidth := modalWidth - 4 // horizontal padding

	var content strings.Builder

	title, _ := layout.TruncateText(entry.DisplayTitle(), textWidth, a.layoutConfig.Text)
	content.WriteString(a.styles.Title.Render(title) + "\n")
	if sub := entry.Subtitle(); sub != "" {
		sub, _ = layout.TruncateText(sub, textWidth, a.layoutConfig.Text)
		content.WriteString(a.styles.Subtitle.Render(sub) + "\n")
	}
	content.WriteString("\n")

	romaji, _ := layout.TruncateWithPrefixSuffix(entry.Title.Romaji, textWidth, "Romaji: ", "", a.layoutConfig.Text)
	native, _ := layout.TruncateWithPrefixSuffix(entry.Title.Native, textWidth, "Native: ", "", a.layoutConfig.Text)
	content.WriteString(a.styles.Help.Render(romaji) + "\n")
	content.WriteString(a.styles.Help.Render(native) + "\n\n")

	if !entry.HasImages() {
		content.WriteString(a.styles.Placeholder.Render(placeholderLabel) + "\n")
	} else {
		maxVisible := layout.CalculateModalListHeight(a.height, a.layoutConfig.Modal)
		start, end := layout.CalculateVisibleListItems(maxVisible, a.detail.ImageCursor, len(entry.Images))
		for i := start; i < end; i++ {
			prefix := "Image " + strconv.Itoa(i+1) + ": "
			line, _ := layout.TruncateWithPrefixSuffix(entry.Images[i], textWidth-1, prefix, "", a.layoutConfig.Text)
			if i == a.detail.ImageCursor {
				content.WriteString(a.styles.ItemSelected.Render(line) + "\n")
			} else {
				content.WriteString(a.styles.Item.Render(line) + "\n")
			}
		}
	}

	content.WriteString("\n")
	content.WriteString(a.renderHintsInline(a.getDetailHints()))

	modal := a.styles.Modal.Width(modalWidth).Render(content.String())
	if a.messageText != "" {
		modal = lipgloss.JoinVertical(lipgloss.Left, modal, a.renderMessageLine())
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderHelpOverlay renders the help overlay.
func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("hjkl  move card\n")
	left.WriteString("n ]   next page\n")
	left.WriteString("p [   prev page\n")
	left.WriteString("g     first page\n")
	left.WriteString("G     last page\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("filter") + "\n")
	left.WriteString("/     search\n")
	left.WriteString("C-u   clear search\n")
	left.WriteString("i     with images\n")
	left.WriteString("I     without images\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("act") + "\n")
	right.WriteString("enter details\n")
	right.WriteString("o     open image\n")
	right.WriteString("Y     yank URL\n")
	right.WriteString("r     reload\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/q/esc] close"))

	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := right.String()
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	// Top-left aligned, brutalist style
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
