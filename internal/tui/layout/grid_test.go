package layout

import "testing"

func TestCalculateGridColumns(t *testing.T) {
	cfg := DefaultConfig().Grid

	tests := []struct {
		name          string
		terminalWidth int
		want          int
	}{
		{"narrow terminal", 60, 1},
		{"two column threshold", 70, 2},
		{"just below three", 109, 2},
		{"three column threshold", 110, 3},
		{"very wide", 200, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateGridColumns(tt.terminalWidth, cfg)
			if got != tt.want {
				t.Errorf("CalculateGridColumns(%d) = %d, want %d", tt.terminalWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateCardWidth(t *testing.T) {
	cfg := DefaultConfig().Grid

	tests := []struct {
		name          string
		terminalWidth int
		columns       int
		want          int
	}{
		{"single column", 60, 1, 56},      // 60 - 4
		{"two columns", 80, 2, 38},        // (80-4)/2
		{"three columns", 120, 3, 38},     // (120-4)/3
		{"zero columns treated as 1", 60, 0, 56},
		{"tiny terminal clamps to 1", 3, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCardWidth(tt.terminalWidth, tt.columns, cfg)
			if got != tt.want {
				t.Errorf("CalculateCardWidth(%d, %d) = %d, want %d",
					tt.terminalWidth, tt.columns, got, tt.want)
			}
		})
	}
}

func TestCalculateGridRows(t *testing.T) {
	tests := []struct {
		items, columns, want int
	}{
		{10, 3, 4},
		{10, 2, 5},
		{9, 3, 3},
		{0, 3, 0},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := CalculateGridRows(tt.items, tt.columns); got != tt.want {
			t.Errorf("CalculateGridRows(%d, %d) = %d, want %d", tt.items, tt.columns, got, tt.want)
		}
	}
}

func TestCalculateGridLayout(t *testing.T) {
	cfg := DefaultConfig().Grid

	tests := []struct {
		name          string
		width, height int
		items         int
		want          GridLayout
	}{
		{"wide and tall", 120, 40, 10, GridLayout{Columns: 3, CardWidth: 38, Compact: false}},
		{"wide but short", 120, 24, 10, GridLayout{Columns: 3, CardWidth: 38, Compact: true}},
		{"medium and tall", 80, 40, 10, GridLayout{Columns: 2, CardWidth: 38, Compact: false}},
		{"short page fits", 80, 24, 4, GridLayout{Columns: 2, CardWidth: 38, Compact: false}}, // 2 rows * 5 = 10 <= 15
		{"empty page", 80, 10, 0, GridLayout{Columns: 2, CardWidth: 38, Compact: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateGridLayout(tt.width, tt.height, tt.items, cfg)
			if got != tt.want {
				t.Errorf("CalculateGridLayout(%d, %d, %d) = %+v, want %+v",
					tt.width, tt.height, tt.items, got, tt.want)
			}
		})
	}
}

func TestCalculateGridLayout_MinCardWidth(t *testing.T) {
	cfg := DefaultConfig().Grid
	cfg.MinCardWidth = 40

	got := CalculateGridLayout(110, 60, 10, cfg)
	if got.Columns != 2 || got.CardWidth != 53 {
		t.Errorf("expected fallback to 2 columns of 53, got %+v", got)
	}
}

func TestCalculateCardTextWidth(t *testing.T) {
	cfg := DefaultConfig().Grid

	if got := CalculateCardTextWidth(38, cfg); got != 34 {
		t.Errorf("CalculateCardTextWidth(38) = %d, want 34", got)
	}
	if got := CalculateCardTextWidth(2, cfg); got != 1 {
		t.Errorf("CalculateCardTextWidth(2) = %d, want 1", got)
	}
}

func TestCalculateCursorMove(t *testing.T) {
	tests := []struct {
		name                   string
		cursor, count, columns int
		dRow, dCol             int
		want                   int
	}{
		{"right", 0, 10, 3, 0, 1, 1},
		{"left at edge stays", 0, 10, 3, 0, -1, 0},
		{"right at edge stays", 2, 10, 3, 0, 1, 2},
		{"down", 0, 10, 3, 1, 0, 3},
		{"up at top stays", 1, 10, 3, -1, 0, 1},
		{"down into gap stays", 8, 10, 3, 1, 0, 8},
		{"right past last stays", 9, 10, 3, 0, 1, 9},
		{"single column down", 4, 10, 1, 1, 0, 5},
		{"empty", 0, 0, 3, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCursorMove(tt.cursor, tt.count, tt.columns, tt.dRow, tt.dCol)
			if got != tt.want {
				t.Errorf("CalculateCursorMove(%d, %d, %d, %d, %d) = %d, want %d",
					tt.cursor, tt.count, tt.columns, tt.dRow, tt.dCol, got, tt.want)
			}
		})
	}
}

func TestCalculateViewportOffset(t *testing.T) {
	tests := []struct {
		name           string
		selected       int
		total          int
		viewportHeight int
		want           int
	}{
		{"no scroll needed", 2, 5, 10, 0},
		{"selection near start", 1, 20, 10, 0},
		{"selection in middle", 10, 20, 10, 5}, // 10 - 10/2 = 5
		{"selection near end", 18, 20, 10, 10}, // max offset = 20-10 = 10
		{"selection at end", 19, 20, 10, 10},
		{"all items visible", 5, 8, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateViewportOffset(tt.selected, tt.total, tt.viewportHeight)
			if got != tt.want {
				t.Errorf("CalculateViewportOffset(%d, %d, %d) = %d, want %d",
					tt.selected, tt.total, tt.viewportHeight, got, tt.want)
			}
		})
	}
}
