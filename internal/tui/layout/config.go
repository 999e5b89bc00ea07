package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Grid  GridConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// GridConfig holds card grid dimension configuration.
type GridConfig struct {
	// TwoColumnMinWidth is the terminal width at which the grid switches to 2 columns.
	TwoColumnMinWidth int

	// ThreeColumnMinWidth is the terminal width at which the grid switches to 3 columns.
	ThreeColumnMinWidth int

	// HorizontalPadding is subtracted from terminal width before splitting into columns.
	// Accounts for app padding left (2) + right (2).
	HorizontalPadding int

	// ChromeHeight is the number of lines used outside the grid.
	// Accounts for: app padding (1) + header (1) + search line (1) + status (1) +
	// pagination (2) + help bar (3) = 9
	ChromeHeight int

	// CardHeight is the height of a full card including its border.
	// Border (2) + title + subtitle + cover = 5
	CardHeight int

	// CardChrome is subtracted from card width for the text inside.
	// Border (2) + padding (2).
	CardChrome int

	// MinCardWidth is the smallest card width before falling back to fewer columns.
	MinCardWidth int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the detail modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HeaderReduction is the number of modal lines not available to the image list.
	// Border (2) + padding (2) + titles (4) + blank (1) + hints (2) = 11
	HeaderReduction int

	// HelpLeftColumnWidth: width for help overlay key column.
	HelpLeftColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	SearchCharLimit int
	SearchWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Grid: GridConfig{
			TwoColumnMinWidth:   70,
			ThreeColumnMinWidth: 110,
			HorizontalPadding:   4,
			ChromeHeight:        9,
			CardHeight:          5,
			CardChrome:          4,
			MinCardWidth:        24,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 60,
			MinWidth:            40,
			MaxWidth:            100,
			HeaderReduction:     11,
			HelpLeftColumnWidth: 22,
		},
		Input: InputConfig{
			SearchCharLimit: 100,
			SearchWidth:     40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
