package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/loop/config"
	"github.com/tomz197/snake/internal/loop/server"
)

// ASCII art title (figlet "small" font)
var titleArt = []string{
	` ___ _  _   _   _  _____ `,
	`/ __| \| | /_\ | |/ / __|`,
	"\\__ \\ .` |/ _ \\| ' <| _| ",
	`|___/_|\_/_/ \_\_|\_\___|`,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// rainbow is the body color cycle for rainbow skins.
var rainbow = []string{"#FF0000", "#FF7F00", "#FFFF00", "#00FF00", "#00BFFF", "#4B0082", "#9400D3"}

// asciiBorder frames the board on terminals without box-drawing glyphs.
var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

// view is everything one frame depends on besides the game snapshot.
type view struct {
	snap         game.Snapshot
	now          time.Time
	toast        string
	top          []server.TopScoreEntry
	players      int
	inactive     bool
	inactiveLeft int // Seconds until disconnect
	shutdown     bool
	shutdownLeft int // Seconds until disconnect
}

type styles struct {
	title  lipgloss.Style
	text   lipgloss.Style
	dim    lipgloss.Style
	accent lipgloss.Style
	warn   lipgloss.Style
	good   lipgloss.Style
	board  lipgloss.Style
	panel  lipgloss.Style

	food        lipgloss.Style
	slowDown    lipgloss.Style
	doubleScore lipgloss.Style
}

// screen renders snapshots into text frames.
type screen struct {
	st      styles
	sym     draw.SymbolRenderer
	cfg     game.Config
	board   *draw.Board
	heads   []lipgloss.Style // Per skin
	bodies  []lipgloss.Style // Per skin
	rainbow []lipgloss.Style
}

func newScreen(r *lipgloss.Renderer, sym draw.SymbolRenderer, cfg game.Config) *screen {
	border := lipgloss.RoundedBorder()
	if _, ascii := sym.(draw.ASCIIRenderer); ascii {
		border = asciiBorder
	}

	s := &screen{
		st: styles{
			title:  r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
			text:   r.NewStyle(),
			dim:    r.NewStyle().Foreground(lipgloss.Color("8")),
			accent: r.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
			warn:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			good:   r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			board:  r.NewStyle().Border(border).BorderForeground(lipgloss.Color("2")),
			panel:  r.NewStyle().Border(border).BorderForeground(lipgloss.Color("2")).Padding(0, 2),

			food:        r.NewStyle().Foreground(lipgloss.Color("9")),
			slowDown:    r.NewStyle().Foreground(lipgloss.Color("12")),
			doubleScore: r.NewStyle().Foreground(lipgloss.Color("13")),
		},
		sym:   sym,
		cfg:   cfg,
		board: draw.NewBoard(cfg.GridWidth, cfg.GridHeight, sym.Empty()),
	}
	for _, skin := range cfg.Skins {
		s.heads = append(s.heads, r.NewStyle().Foreground(lipgloss.Color(skin.Head)))
		s.bodies = append(s.bodies, r.NewStyle().Foreground(lipgloss.Color(skin.Body)))
	}
	for _, c := range rainbow {
		s.rainbow = append(s.rainbow, r.NewStyle().Foreground(lipgloss.Color(c)))
	}
	return s
}

// frame renders the whole screen for v.
func (s *screen) frame(v view) string {
	if v.shutdown {
		return s.shutdownView(v)
	}
	if v.inactive {
		return s.inactivityView(v)
	}

	switch v.snap.State {
	case game.StateMenu:
		return s.menuView(v)
	case game.StateGameOver:
		return s.gameOverView(v)
	default:
		return s.playingView(v)
	}
}

// playingView draws the HUD, the board and a footer. Also used while paused.
func (s *screen) playingView(v view) string {
	board := s.boardView(v.snap)
	width := lipgloss.Width(board)

	footer := s.st.dim.Render(fit("Arrows/WASD/HJKL move  P pause  Q quit", width))
	switch {
	case v.toast != "":
		footer = s.st.good.Render(fit(v.toast, width))
	case v.snap.State == game.StatePaused:
		footer = s.st.accent.Render(fit("PAUSED  P/Space resume  M menu  Q quit", width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, s.hud(v, width), board, footer)
}

// hud renders the score line, fitted to width columns.
func (s *screen) hud(v view, width int) string {
	snap := v.snap
	line := fmt.Sprintf("Score %-4d Best %-4d Speed %.0f", snap.Score, snap.HighScore, snap.Speed)
	if snap.Effect != nil {
		left := snap.Effect.Remaining(v.now).Round(time.Second) / time.Second
		line += fmt.Sprintf("  %s %ds", s.effectSymbol(snap.Effect.Kind), left)
	}
	return s.st.text.Render(fit(line, width))
}

// boardView paints the snapshot onto the board and frames it.
func (s *screen) boardView(snap game.Snapshot) string {
	b := s.board
	b.Clear()

	if snap.Food.Pos.X >= 0 {
		b.Set(snap.Food.Pos.X, snap.Food.Pos.Y, s.st.food.Render(s.sym.Food(snap.Food.Symbol)))
	}
	if p := snap.PowerUp; p != nil {
		b.Set(p.Pos.X, p.Pos.Y, s.tokenCell(p.Kind))
	}

	skin := s.skin(snap.Skin)
	// Tail first so the head wins if cells ever overlap
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		p := snap.Snake[i]
		if i == 0 {
			b.Set(p.X, p.Y, s.heads[snap.Skin].Render(s.sym.Head()))
			continue
		}
		style := s.bodies[snap.Skin]
		if skin.Rainbow {
			style = s.rainbow[(i-1)%len(s.rainbow)]
		}
		b.Set(p.X, p.Y, style.Render(s.sym.Body()))
	}

	return s.st.board.Render(b.String())
}

func (s *screen) tokenCell(kind game.PowerUpKind) string {
	if kind == game.PowerUpSlowDown {
		return s.st.slowDown.Render(s.sym.SlowDown())
	}
	return s.st.doubleScore.Render(s.sym.DoubleScore())
}

func (s *screen) effectSymbol(kind game.PowerUpKind) string {
	if kind == game.PowerUpSlowDown {
		return "SLOW"
	}
	return "x2"
}

func (s *screen) skin(i int) game.Skin {
	if i < 0 || i >= len(s.cfg.Skins) {
		return game.Skin{}
	}
	return s.cfg.Skins[i]
}

// menuView draws the title screen with skins, achievements and the leaderboard.
func (s *screen) menuView(v view) string {
	snap := v.snap
	unlocked := make(map[int]struct{}, len(snap.Achievements))
	for _, t := range snap.Achievements {
		unlocked[t] = struct{}{}
	}

	var lines []string
	for _, l := range titleArt {
		lines = append(lines, s.st.title.Render(l))
	}
	lines = append(lines,
		"",
		s.st.good.Render(fmt.Sprintf("High score: %d", snap.HighScore)),
		"",
		s.st.accent.Render("Skins"),
	)

	var skins []string
	for i, skin := range s.cfg.Skins {
		if i >= 9 {
			break // Only keys 1-9 select
		}
		marker := "  "
		if i == snap.Skin {
			marker = "> "
		}
		preview := s.heads[i].Render(s.sym.Head())
		for j := 0; j < 3; j++ {
			style := s.bodies[i]
			if skin.Rainbow {
				style = s.rainbow[j%len(s.rainbow)]
			}
			preview = style.Render(s.sym.Body()) + preview
		}
		line := fmt.Sprintf("%s%d  %-10s ", marker, i+1, skin.Name) + preview
		if !skin.Unlocked(unlocked) {
			line = s.st.dim.Render(fmt.Sprintf("%s%d  %-10s locked, reach %d", marker, i+1, skin.Name, skin.UnlockAt))
		}
		skins = append(skins, line)
	}
	lines = append(lines, lipgloss.JoinVertical(lipgloss.Left, skins...))

	lines = append(lines, "", s.st.accent.Render("Achievements"))
	var badges []string
	for _, t := range s.cfg.Thresholds {
		if _, ok := unlocked[t]; ok {
			badges = append(badges, s.st.good.Render(fmt.Sprintf("[x] %d", t)))
		} else {
			badges = append(badges, s.st.dim.Render(fmt.Sprintf("[ ] %d", t)))
		}
	}
	lines = append(lines, strings.Join(badges, "  "))

	if len(v.top) > 0 {
		lines = append(lines, "", s.st.accent.Render(fmt.Sprintf("Online now (%d)", v.players)))
		rows := make([]string, 0, len(v.top))
		for i, e := range v.top {
			rows = append(rows, fmt.Sprintf("%d. %-*s %5d", i+1, config.MaxUsernameLength, e.Username, e.Score))
		}
		lines = append(lines, lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	lines = append(lines,
		"",
		s.st.dim.Render("Arrows/WASD/HJKL move   P pause   1-9 skin   Q quit"),
		s.st.good.Render(v.toast),
		s.blink(v.now, ">>  Press SPACE to Start  <<"),
	)

	return s.st.panel.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// gameOverView draws the end-of-run summary.
func (s *screen) gameOverView(v view) string {
	snap := v.snap

	var lines []string
	for _, l := range gameOverArt {
		lines = append(lines, s.st.warn.Render(l))
	}
	lines = append(lines, "", s.st.text.Render(fmt.Sprintf("Score: %d", snap.Score)))
	if snap.NewHighScore {
		lines = append(lines, s.st.good.Render("NEW HIGH SCORE!"))
	} else {
		lines = append(lines, s.st.dim.Render(fmt.Sprintf("High score: %d", snap.HighScore)))
	}
	lines = append(lines,
		"",
		s.blink(v.now, ">>  Press SPACE to Restart  <<"),
		s.st.dim.Render("M menu   Q quit"),
	)
	if v.toast != "" {
		lines = append(lines, "", s.st.good.Render(v.toast))
	}

	return s.st.panel.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// inactivityView draws the inactivity warning screen.
func (s *screen) inactivityView(v view) string {
	return s.st.panel.Render(lipgloss.JoinVertical(lipgloss.Center,
		s.st.warn.Render("INACTIVITY WARNING"),
		"",
		fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", v.inactiveLeft),
		"",
		s.st.dim.Render("Press any key to continue"),
	))
}

// shutdownView draws the server shutdown notification screen.
func (s *screen) shutdownView(v view) string {
	return s.st.panel.Render(lipgloss.JoinVertical(lipgloss.Center,
		s.st.warn.Render("SERVER SHUTTING DOWN"),
		"",
		"The server is restarting for maintenance.",
		"Your records are saved. Please reconnect in a moment.",
		"",
		fmt.Sprintf("Disconnecting in %d seconds...", v.shutdownLeft),
		"",
		s.st.dim.Render("Press Q to disconnect now"),
	))
}

// tooSmallView asks for a bigger terminal.
func (s *screen) tooSmallView(needWidth, needHeight int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.st.warn.Render("Terminal too small"),
		fmt.Sprintf("Need %dx%d", needWidth, needHeight),
	)
}

// blink shows msg on alternating 600ms phases.
func (s *screen) blink(now time.Time, msg string) string {
	if now.UnixMilli()/600%2 == 0 {
		return s.st.accent.Render(msg)
	}
	return strings.Repeat(" ", lipgloss.Width(msg))
}

// fit truncates or pads s to exactly width columns.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := lipgloss.Width(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// drawFrame renders the current frame centered in the terminal.
func (c *Client) drawFrame(now time.Time, snap game.Snapshot) error {
	v := view{
		snap:     snap,
		now:      now,
		toast:    c.state.activeToast(now),
		inactive: c.state.isInactive,
		shutdown: c.state.shuttingDown,
	}
	if c.state.isInactive {
		v.inactiveLeft = max(0, int(config.InactivityDisconnectUser-now.Sub(c.lastInput).Seconds()))
	}
	if c.state.shuttingDown {
		v.shutdownLeft = int(c.state.shutdownTimer) + 1
	}
	if snap.State == game.StateMenu {
		v.top = c.server.TopScores(config.LeaderboardSize)
		v.players = c.server.Players()
	}

	// On state, inactivity or size transitions, do a full terminal clear so
	// the previous screen doesn't persist.
	cw := c.chunkWriter
	if snap.State != c.state.prevGameState || c.state.isInactive != c.state.wasInactive ||
		c.state.shuttingDown != c.state.wasShutdown || c.state.sizeDirty {
		cw.Clear()
		c.state.prevGameState = snap.State
		c.state.wasInactive = c.state.isInactive
		c.state.wasShutdown = c.state.shuttingDown
		c.state.sizeDirty = false
	}

	frame := c.screen.frame(v)
	frameWidth, frameHeight := lipgloss.Width(frame), lipgloss.Height(frame)
	termWidth, termHeight := c.state.termWidth, c.state.termHeight
	if termWidth <= 0 || termHeight <= 0 {
		termWidth, termHeight = frameWidth, frameHeight
	}

	if (frameWidth > termWidth || frameHeight > termHeight) && v.top != nil {
		// The leaderboard is the first thing to go on short terminals
		v.top = nil
		frame = c.screen.frame(v)
		frameWidth, frameHeight = lipgloss.Width(frame), lipgloss.Height(frame)
	}
	if frameWidth > termWidth || frameHeight > termHeight {
		frame = c.screen.tooSmallView(frameWidth, frameHeight)
		cw.WriteBlock(1, 1, frame)
	} else {
		cw.WriteBlock((termWidth-frameWidth)/2+1, (termHeight-frameHeight)/2+1, frame)
	}

	_, err := cw.FlushChanged()
	return err
}
