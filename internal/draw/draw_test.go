package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkWriter_WriteAtAndFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)

	cw.WriteAt(3, 2, "hi")
	cw.MoveCursor(0, -4)
	require.NoError(t, cw.Flush())

	assert.Equal(t, "\033[2;3Hhi\033[1;1H", out.String())
}

func TestChunkWriter_WriteBlock(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)

	cw.WriteBlock(5, 10, "ab\ncd")
	require.NoError(t, cw.Flush())

	assert.Equal(t, "\033[10;5Hab\033[11;5Hcd", out.String())
}

func TestChunkWriter_LargeFrame(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)

	frame := strings.Repeat("x", maxChunkSize*3+7)
	cw.WriteString(frame)
	require.NoError(t, cw.Flush())

	assert.Equal(t, frame, out.String())
}

func TestChunkWriter_FlushChanged(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)

	cw.WriteString("frame")
	wrote, err := cw.FlushChanged()
	require.NoError(t, err)
	assert.True(t, wrote)

	cw.WriteString("frame")
	wrote, err = cw.FlushChanged()
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Equal(t, "frame", out.String())

	cw.Clear()
	cw.WriteString("frame")
	wrote, err = cw.FlushChanged()
	require.NoError(t, err)
	assert.True(t, wrote)
}

func TestBoard(t *testing.T) {
	b := NewBoard(3, 2, "..")
	b.Set(0, 0, "@@")
	b.Set(2, 1, "<>")
	b.Set(3, 0, "!!")
	b.Set(-1, 0, "!!")

	assert.Equal(t, 3, b.Width())
	assert.Equal(t, 2, b.Height())
	assert.Equal(t, "@@....\n....<>", b.String())
	assert.Equal(t, "@@", b.Get(0, 0))
	assert.Equal(t, "", b.Get(5, 5))

	b.Clear()
	assert.Equal(t, "......\n......", b.String())
}

func TestSymbolRenderers_CellWidth(t *testing.T) {
	for _, r := range []SymbolRenderer{EmojiRenderer{}, ASCIIRenderer{}} {
		t.Run(r.Name(), func(t *testing.T) {
			for _, s := range []string{
				r.Food("🍎"), r.Food("*"), r.Food(""),
				r.SlowDown(), r.DoubleScore(),
				r.Head(), r.Body(), r.Empty(),
			} {
				assert.Equal(t, CellWidth, lipgloss.Width(s), "symbol %q", s)
			}
		})
	}
}

func TestEmojiRenderer_Food(t *testing.T) {
	assert.Equal(t, "🍒", EmojiRenderer{}.Food("🍒"))
	assert.Equal(t, "* ", EmojiRenderer{}.Food("*"))
}

func TestProbeSymbolRenderer(t *testing.T) {
	tests := []struct {
		name string
		env  []string
		want string
	}{
		{name: "empty env", env: nil, want: "ascii"},
		{name: "utf-8 lang", env: []string{"LANG=en_US.UTF-8"}, want: "emoji"},
		{name: "utf8 spelling", env: []string{"LANG=C.utf8"}, want: "emoji"},
		{name: "posix lang", env: []string{"LANG=C"}, want: "ascii"},
		{name: "lc_all wins", env: []string{"LANG=en_US.UTF-8", "LC_ALL=C"}, want: "ascii"},
		{name: "lc_ctype before lang", env: []string{"LANG=C", "LC_CTYPE=en_US.UTF-8"}, want: "emoji"},
		{name: "linux console", env: []string{"TERM=linux", "LANG=en_US.UTF-8"}, want: "ascii"},
		{name: "forced ascii", env: []string{"SNAKE_ASCII=1", "LANG=en_US.UTF-8"}, want: "ascii"},
		{name: "ascii flag off", env: []string{"SNAKE_ASCII=false", "LANG=en_US.UTF-8"}, want: "emoji"},
		{name: "malformed entries", env: []string{"garbage", "LANG=en_US.UTF-8"}, want: "emoji"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProbeSymbolRenderer(tt.env).Name())
		})
	}
}
