package layout

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ANSI", "hello", "hello"},
		{"bold", "\x1b[1mhello\x1b[0m", "hello"},
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"mixed", "normal \x1b[1;4mbold underline\x1b[0m normal", "normal bold underline normal"},
		{"empty", "", ""},
		{"only ANSI", "\x1b[1m\x1b[0m", ""},
		{"multiple codes", "\x1b[1m\x1b[31mred bold\x1b[0m", "red bold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripANSI(tt.input)
			if got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain text", "hello", 5},
		{"with ANSI bold", "\x1b[1mhello\x1b[0m", 5},
		{"wide runes", "こんにちは", 10},
		{"mixed ANSI and wide runes", "\x1b[1mこんにちは\x1b[0m", 10},
		{"accented", "école", 5},
		{"empty", "", 0},
		{"only ANSI", "\x1b[1m\x1b[0m", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleLength(tt.input)
			if got != tt.want {
				t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"no truncation needed", "hello", 10, "hello", false},
		{"exact length", "hello", 5, "hello", false},
		{"needs truncation", "hello world", 8, "hello...", true},
		{"very short max", "hello", 3, "...", true},
		{"max is 2", "hello", 2, "..", true},
		{"max is 1", "hello", 1, ".", true},
		{"max is 0", "hello", 0, "", true},
		{"empty string", "", 10, "", false},
		{"wide runes", "こんにちは", 7, "こん...", true},
		{"wide runes no room", "こんにちは", 4, "...", true},
		{"unicode no truncation", "こんにちは", 10, "こんにちは", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncateWithPrefixSuffix(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		prefix    string
		suffix    string
		want      string
		truncated bool
	}{
		{"no truncation", "Dev", 10, "* ", "/", "* Dev/", false},
		{"with truncation", "Development", 12, "* ", "/", "* Develo.../", true}, // 2+6+3+1=12
		{"just fits", "Dev", 6, "* ", "/", "* Dev/", false},
		{"no prefix/suffix", "Development", 8, "", "", "Devel...", true},
		{"cursor prefix fits", "Mushishi", 12, "> ", "", "> Mushishi", false},
		{"cursor prefix truncates", "Shingeki no Kyojin", 12, "> ", "", "> Shingek...", true}, // 2+7+3=12
		{"empty text", "", 10, "* ", "/", "* /", false},
		{"only overhead fits", "x", 5, "* ", "/", "* x/", false},
		{"text exactly fits max", "x", 4, "* ", "/", "* x/", false},   // 2+1+1=4, fits exactly
		{"needs truncation tight", "abc", 4, "* ", "/", "*...", true}, // falls back to simple truncation
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateWithPrefixSuffix(tt.text, tt.maxWidth, tt.prefix, tt.suffix, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateWithPrefixSuffix(%q, %d, %q, %q) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, tt.prefix, tt.suffix, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"pads ascii", "ab", 5, "ab   "},
		{"wide runes count double", "蟲師", 6, "蟲師  "},
		{"already wide enough", "abcdef", 3, "abcdef"},
		{"ignores ANSI", "\x1b[1mab\x1b[0m", 4, "\x1b[1mab\x1b[0m  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PadRight(tt.input, tt.width); got != tt.want {
				t.Errorf("PadRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}
