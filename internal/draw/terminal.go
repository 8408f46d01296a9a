package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes to write at once. It stays under a typical
// MTU so frames stream smoothly over SSH.
const maxChunkSize = 1400

// ChunkWriter accumulates a frame of terminal output and writes it in chunks.
// Use MoveCursor, WriteAt and WriteBlock to build the frame, then Flush.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte // Scratch buffer for integer formatting
	last   string   // Previous frame, for FlushChanged
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{
		bufw: bufio.NewWriterSize(w, 8192),
	}
}

// MoveCursor appends an ANSI cursor position sequence. col and row are 1-based.
// Coordinates below 1 are clamped.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	col = max(col, 1)
	row = max(row, 1)
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes s starting at the given 1-based position.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// WriteBlock writes a multi-line string with its top-left corner at col, row.
func (cw *ChunkWriter) WriteBlock(col, row int, block string) {
	for i, line := range strings.Split(block, "\n") {
		cw.WriteAt(col, row+i, line)
	}
}

// Clear appends a full-screen clear and forgets the previous frame.
func (cw *ChunkWriter) Clear() {
	cw.buf.WriteString("\033[H\033[2J")
	cw.last = ""
}

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	cw.last = data
	return cw.write(data)
}

// FlushChanged behaves like Flush but skips the write when the frame is
// identical to the previous one. Reports whether anything was written.
func (cw *ChunkWriter) FlushChanged() (bool, error) {
	data := cw.buf.String()
	cw.buf.Reset()
	if data == cw.last {
		return false, nil
	}
	cw.last = data
	return true, cw.write(data)
}

func (cw *ChunkWriter) write(data string) error {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}
