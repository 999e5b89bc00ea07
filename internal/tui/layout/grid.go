package layout

// GridLayout holds calculated card grid dimensions.
type GridLayout struct {
	Columns   int
	CardWidth int
	// Compact renders one line per entry instead of bordered cards, used when
	// the terminal is too short for a full page of cards.
	Compact bool
}

// CalculateGridColumns picks 1, 2 or 3 columns from the terminal width.
func CalculateGridColumns(terminalWidth int, cfg GridConfig) int {
	switch {
	case terminalWidth >= cfg.ThreeColumnMinWidth:
		return 3
	case terminalWidth >= cfg.TwoColumnMinWidth:
		return 2
	default:
		return 1
	}
}

// CalculateCardWidth computes the outer width of each card for a column count.
func CalculateCardWidth(terminalWidth, columns int, cfg GridConfig) int {
	if columns < 1 {
		columns = 1
	}
	width := (terminalWidth - cfg.HorizontalPadding) / columns
	if width < 1 {
		return 1
	}
	return width
}

// CalculateGridRows returns how many rows items cards need in columns.
func CalculateGridRows(items, columns int) int {
	if items <= 0 || columns < 1 {
		return 0
	}
	return (items + columns - 1) / columns
}

// CalculateGridLayout decides the grid shape for pageItems entries.
func CalculateGridLayout(terminalWidth, terminalHeight, pageItems int, cfg GridConfig) GridLayout {
	columns := CalculateGridColumns(terminalWidth, cfg)
	cardWidth := CalculateCardWidth(terminalWidth, columns, cfg)
	for columns > 1 && cardWidth < cfg.MinCardWidth {
		columns--
		cardWidth = CalculateCardWidth(terminalWidth, columns, cfg)
	}

	available := terminalHeight - cfg.ChromeHeight
	needed := CalculateGridRows(pageItems, columns) * cfg.CardHeight

	return GridLayout{
		Columns:   columns,
		CardWidth: cardWidth,
		Compact:   needed > available,
	}
}

// CalculateCardTextWidth computes the width available for text inside a card.
func CalculateCardTextWidth(cardWidth int, cfg GridConfig) int {
	width := cardWidth - cfg.CardChrome
	if width < 1 {
		return 1
	}
	return width
}

// CalculateCursorMove moves a grid cursor by (dRow, dCol) within count items
// laid out in columns. Moves that would leave the grid keep the cursor in place.
func CalculateCursorMove(cursor, count, columns, dRow, dCol int) int {
	if count == 0 || columns < 1 {
		return 0
	}
	row, col := cursor/columns, cursor%columns
	row += dRow
	col += dCol
	if col < 0 || col >= columns || row < 0 {
		return cursor
	}
	next := row*columns + col
	if next >= count {
		return cursor
	}
	return next
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
