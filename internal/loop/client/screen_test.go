package client

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/loop/server"
)

func newTestScreen(t *testing.T) *screen {
	t.Helper()
	return newScreen(lipgloss.NewRenderer(io.Discard), draw.ASCIIRenderer{}, game.DefaultConfig(20, 8))
}

func playingSnapshot() game.Snapshot {
	return game.Snapshot{
		State:      game.StatePlaying,
		Snake:      []game.Position{{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Direction:  game.DirRight,
		Food:       game.Food{Pos: game.Position{X: 5, Y: 5}, Symbol: "🍎"},
		Score:      3,
		HighScore:  9,
		Speed:      8,
		GridWidth:  20,
		GridHeight: 8,
	}
}

func lines(frame string) []string {
	return strings.Split(ansi.Strip(frame), "\n")
}

func TestGridSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{name: "unknown", width: 0, height: 0, wantW: 30, wantH: 20},
		{name: "classic 80x24", width: 80, height: 24, wantW: 39, wantH: 20},
		{name: "tiny clamps to minimum", width: 10, height: 5, wantW: 4, wantH: 4},
		{name: "huge clamps to maximum", width: 300, height: 100, wantW: 40, wantH: 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := GridSize(tt.width, tt.height)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestPlayingView_Layout(t *testing.T) {
	s := newTestScreen(t)
	frame := s.frame(view{snap: playingSnapshot(), now: time.Now()})
	ls := lines(frame)

	// HUD, top border, 8 rows, bottom border, footer
	require.Len(t, ls, 12)
	assert.Equal(t, 20*draw.CellWidth+2, lipgloss.Width(frame))
	assert.Contains(t, ls[0], "Score 3")
	assert.Contains(t, ls[0], "Best 9")

	// Row y=1 holds the snake, tail to head left to right
	assert.True(t, strings.HasPrefix(ls[3], "|####@@  "), ls[3])
	// Food at x=5, y=5
	assert.Equal(t, "<>", ls[7][1+5*draw.CellWidth:1+6*draw.CellWidth])
	assert.Contains(t, ls[11], "P pause")
}

func TestPlayingView_PowerUpAndEffect(t *testing.T) {
	s := newTestScreen(t)
	now := time.Now()
	snap := playingSnapshot()
	snap.PowerUp = &game.PowerUp{Pos: game.Position{X: 9, Y: 0}, Kind: game.PowerUpDoubleScore, SpawnedAt: now}
	snap.Effect = &game.Effect{Kind: game.PowerUpSlowDown, ExpiresAt: now.Add(3 * time.Second)}

	ls := lines(s.frame(view{snap: snap, now: now}))
	assert.Contains(t, ls[0], "SLOW 3s")
	assert.Equal(t, "x2", ls[2][1+9*draw.CellWidth:1+10*draw.CellWidth])
}

func TestPlayingView_Footer(t *testing.T) {
	s := newTestScreen(t)

	snap := playingSnapshot()
	snap.State = game.StatePaused
	ls := lines(s.frame(view{snap: snap, now: time.Now()}))
	assert.Contains(t, ls[len(ls)-1], "PAUSED")

	ls = lines(s.frame(view{snap: snap, now: time.Now(), toast: "hello"}))
	assert.Contains(t, ls[len(ls)-1], "hello")
}

func TestMenuView(t *testing.T) {
	s := newTestScreen(t)
	snap := game.Snapshot{
		State:        game.StateMenu,
		HighScore:    42,
		Achievements: []int{10},
		Skin:         1,
	}
	top := []server.TopScoreEntry{{Username: "bob", Score: 25}}

	out := ansi.Strip(s.frame(view{snap: snap, now: time.Now(), top: top, players: 2}))
	assert.Contains(t, out, "High score: 42")
	assert.Contains(t, out, "> 2  Blue")
	assert.Contains(t, out, "locked, reach 100")
	assert.Contains(t, out, "[x] 10")
	assert.Contains(t, out, "[ ] 20")
	assert.Contains(t, out, "Online now (2)")
	assert.Contains(t, out, "bob")

	out = ansi.Strip(s.frame(view{snap: snap, now: time.Now()}))
	assert.NotContains(t, out, "Online now")
}

func TestGameOverView(t *testing.T) {
	s := newTestScreen(t)
	snap := game.Snapshot{State: game.StateGameOver, Score: 7, HighScore: 7, NewHighScore: true}

	out := ansi.Strip(s.frame(view{snap: snap, now: time.Now()}))
	assert.Contains(t, out, "Score: 7")
	assert.Contains(t, out, "NEW HIGH SCORE!")

	snap.NewHighScore = false
	snap.HighScore = 30
	out = ansi.Strip(s.frame(view{snap: snap, now: time.Now()}))
	assert.Contains(t, out, "High score: 30")
}

func TestOverlayViews(t *testing.T) {
	s := newTestScreen(t)
	snap := playingSnapshot()

	out := ansi.Strip(s.frame(view{snap: snap, now: time.Now(), inactive: true, inactiveLeft: 12}))
	assert.Contains(t, out, "INACTIVITY WARNING")
	assert.Contains(t, out, "disconnected in 12 seconds")

	out = ansi.Strip(s.frame(view{snap: snap, now: time.Now(), shutdown: true, shutdownLeft: 4}))
	assert.Contains(t, out, "SERVER SHUTTING DOWN")
	assert.Contains(t, out, "Disconnecting in 4 seconds")
}

func TestRainbowSkin(t *testing.T) {
	s := newTestScreen(t)
	snap := playingSnapshot()
	snap.Skin = 4

	ls := lines(s.frame(view{snap: snap, now: time.Now()}))
	assert.True(t, strings.HasPrefix(ls[3], "|####@@"), ls[3])
}

func TestFit(t *testing.T) {
	assert.Equal(t, "hel", fit("hello", 3))
	assert.Equal(t, "hi  ", fit("hi", 4))
	assert.Equal(t, "", fit("x", 0))
}
