package draw

import "strings"

// Board is a fixed-size grid of pre-styled cells. Every cell is expected to
// render CellWidth terminal columns wide.
type Board struct {
	width  int
	height int
	empty  string
	cells  []string
}

// NewBoard creates a width x height board filled with the empty cell.
func NewBoard(width, height int, empty string) *Board {
	b := &Board{
		width:  width,
		height: height,
		empty:  empty,
		cells:  make([]string, width*height),
	}
	b.Clear()
	return b
}

// Width returns the board width in cells.
func (b *Board) Width() int { return b.width }

// Height returns the board height in cells.
func (b *Board) Height() int { return b.height }

// Clear resets every cell to the empty cell.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = b.empty
	}
}

// Set stores cell at x, y. Out-of-range coordinates are ignored.
func (b *Board) Set(x, y int, cell string) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = cell
}

// Get returns the cell at x, y, or "" when out of range.
func (b *Board) Get(x, y int) string {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return ""
	}
	return b.cells[y*b.width+x]
}

// String joins the cells into newline-separated rows.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range b.cells[y*b.width : (y+1)*b.width] {
			sb.WriteString(c)
		}
	}
	return sb.String()
}
