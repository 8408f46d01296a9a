package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/loop/config"
	"github.com/tomz197/snake/internal/loop/server"
)

const toastDuration = 3 * time.Second

// Client runs one player's game and renders it to a terminal.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	game         *game.Game
	state        *ClientState
	screen       *screen
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string

	// Game is the gameplay configuration. The grid size is always taken from
	// the terminal. Nil uses game.DefaultConfig.
	Game *game.Config

	Renderer *lipgloss.Renderer  // Nil renders for w
	Symbols  draw.SymbolRenderer // Nil uses ASCII
	Logger   *log.Logger         // Nil discards
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(w)
	}
	symbols := opts.Symbols
	if symbols == nil {
		symbols = draw.ASCIIRenderer{}
	}

	handle := gs.RegisterClient(opts.Username)
	logger = logger.With("user", handle.Username)

	// The board is sized once, from the terminal at connect time
	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		termWidth, termHeight = 0, 0
	}
	gridWidth, gridHeight := GridSize(termWidth, termHeight)

	var cfg game.Config
	if opts.Game != nil {
		cfg = *opts.Game
		cfg.GridWidth, cfg.GridHeight = gridWidth, gridHeight
	} else {
		cfg = game.DefaultConfig(gridWidth, gridHeight)
	}
	g := game.New(cfg, gs.Store(), game.WithLogger(logger))

	state := NewClientState()
	state.termWidth, state.termHeight = termWidth, termHeight

	logger.Debug("client created", "grid", fmt.Sprintf("%dx%d", gridWidth, gridHeight), "symbols", symbols.Name())

	return &Client{
		server:       gs,
		handle:       handle,
		game:         g,
		state:        state,
		screen:       newScreen(renderer, symbols, g.Config()),
		chunkWriter:  draw.NewChunkWriter(w),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		logger:       logger,
	}
}

// GridSize returns the board size that fits a terminal, clamped to the
// configured limits. Unknown sizes get the default board.
func GridSize(termWidth, termHeight int) (width, height int) {
	if termWidth <= 0 || termHeight <= 0 {
		return config.DefaultGridWidth, config.DefaultGridHeight
	}
	width = (termWidth - 2*config.BorderCells) / draw.CellWidth
	height = termHeight - 2*config.BorderCells - config.HUDRows - config.FooterRows
	width = min(max(width, game.MinGridWidth), config.MaxGridWidth)
	height = min(max(height, game.MinGridHeight), config.MaxGridHeight)
	return width, height
}

// Run starts the client loop. Blocks until the player quits, the connection
// drops, or the server shuts down.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer c.server.UnregisterClient(c.handle.ID)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput(frameStart)

		// Check for server events
		c.processServerEvents(frameStart)

		// Handle screen resize
		c.updateScreen()

		// Advance the simulation
		if c.state.shuttingDown {
			c.updateShutdownState()
		} else {
			c.game.Tick(frameStart)
		}
		snap := c.game.Snapshot()
		c.afterTick(frameStart, snap)

		// Draw frame
		if err := c.drawFrame(frameStart, snap); err != nil {
			return fmt.Errorf("failed to draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads pending key presses and applies them to the game.
func (c *Client) processInput(now time.Time) {
	in := input.ReadInput(c.inputStream)
	if in.Closed {
		c.state.Running = false
	}

	// Idle time only counts outside of active play
	if len(in.Pressed) > 0 || c.game.State() == game.StatePlaying {
		c.lastInput = now
		if c.state.isInactive {
			// The key press only dismisses the warning
			c.state.isInactive = false
			return
		}
	} else if idle := now.Sub(c.lastInput).Seconds(); idle > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
	} else if idle > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.shuttingDown {
		if in.Has(input.KeyQuit) {
			c.state.Running = false
		}
		return
	}

	for _, e := range in.Events {
		if ApplyKey(c.game, e) {
			c.logger.Debug("key applied", "key", e.Key, "state", c.game.State())
		}
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents(now time.Time) {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.game.Pause()
				c.state.shuttingDown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			case server.EventNewRecord:
				c.state.showToast(now, fmt.Sprintf("%s set a new record: %d", event.Username, event.Score), toastDuration)
			}
		default:
			return
		}
	}
}

// updateScreen tracks terminal resizes.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	if termWidth != c.state.termWidth || termHeight != c.state.termHeight {
		c.state.termWidth, c.state.termHeight = termWidth, termHeight
		c.state.sizeDirty = true
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// afterTick reacts to what the latest tick changed.
func (c *Client) afterTick(now time.Time, snap game.Snapshot) {
	if snap.ExitRequested {
		c.state.Running = false
	}
	if snap.Score != c.state.lastScore {
		c.state.lastScore = snap.Score
		c.server.ReportScore(c.handle.ID, snap.Score)
	}
	if n := len(snap.JustUnlocked); n > 0 {
		c.state.showToast(now, fmt.Sprintf("Achievement unlocked: %d points!", snap.JustUnlocked[n-1]), toastDuration)
	}
}
