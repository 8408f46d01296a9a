package draw

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CellWidth is the number of terminal columns one grid cell occupies. Emoji are
// two columns wide, so every symbol is padded to match.
const CellWidth = 2

// SymbolRenderer supplies the unstyled glyphs for each kind of grid cell.
type SymbolRenderer interface {
	Name() string
	Food(symbol string) string
	SlowDown() string
	DoubleScore() string
	Head() string
	Body() string
	Empty() string
}

// EmojiRenderer draws food and power-ups as emoji. Needs a UTF-8 terminal with
// an emoji-capable font.
type EmojiRenderer struct{}

func (EmojiRenderer) Name() string { return "emoji" }

// Food returns the food's own symbol, padded to CellWidth.
func (EmojiRenderer) Food(symbol string) string {
	if symbol == "" {
		return "()"
	}
	return pad(symbol)
}

func (EmojiRenderer) SlowDown() string { return "🐢" }
func (EmojiRenderer) DoubleScore() string { return "💎" }
func (EmojiRenderer) Head() string { return "██" }
func (EmojiRenderer) Body() string { return "▓▓" }
func (EmojiRenderer) Empty() string { return "  " }

// ASCIIRenderer only uses 7-bit characters.
type ASCIIRenderer struct{}

func (ASCIIRenderer) Name() string { return "ascii" }
func (ASCIIRenderer) Food(string) string { return "<>" }
func (ASCIIRenderer) SlowDown() string { return "S~" }
func (ASCIIRenderer) DoubleScore() string { return "x2" }
func (ASCIIRenderer) Head() string { return "@@" }
func (ASCIIRenderer) Body() string { return "##" }
func (ASCIIRenderer) Empty() string { return "  " }

// ProbeSymbolRenderer picks a renderer from KEY=VALUE environment entries.
// SNAKE_ASCII forces ASCII. Otherwise the first set locale variable (LC_ALL,
// LC_CTYPE, LANG) must name UTF-8, and the Linux console is always ASCII.
func ProbeSymbolRenderer(env []string) SymbolRenderer {
	vars := make(map[string]string, len(env))
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	if v := vars["SNAKE_ASCII"]; v != "" && v != "0" && !strings.EqualFold(v, "false") {
		return ASCIIRenderer{}
	}
	if vars["TERM"] == "linux" {
		return ASCIIRenderer{}
	}

	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := vars[key]
		if v == "" {
			continue
		}
		v = strings.ToLower(v)
		if strings.Contains(v, "utf-8") || strings.Contains(v, "utf8") {
			return EmojiRenderer{}
		}
		return ASCIIRenderer{}
	}
	return ASCIIRenderer{}
}

// pad right-pads s with spaces to CellWidth columns.
func pad(s string) string {
	if w := lipgloss.Width(s); w < CellWidth {
		return s + strings.Repeat(" ", CellWidth-w)
	}
	return s
}
