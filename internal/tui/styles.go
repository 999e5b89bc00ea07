package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Card         lipgloss.Style
	CardActive   lipgloss.Style
	Title        lipgloss.Style
	CardTitle    lipgloss.Style
	Subtitle     lipgloss.Style
	Image        lipgloss.Style
	Placeholder  lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Page         lipgloss.Style
	PageActive   lipgloss.Style
	Status       lipgloss.Style
	Query        lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	Modal        lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "n/]", "enter")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "next page")
	HintLabel    lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	// Industrial color palette
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Card: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		CardActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		CardTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		Subtitle: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		Image: lipgloss.NewStyle().
			Foreground(subtle),

		Placeholder: lipgloss.NewStyle().
			Foreground(subtle).
			Faint(true),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Page: lipgloss.NewStyle().
			Foreground(subtle),

		PageActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Status: lipgloss.NewStyle().
			Foreground(subtle),

		Query: lipgloss.NewStyle().
			Foreground(accent),

		Help: lipgloss.NewStyle().
			Foreground(subtle),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		HintLabel: lipgloss.NewStyle().
			Foreground(border),
	}
}
