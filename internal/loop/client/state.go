package client

import (
	"time"

	"github.com/tomz197/snake/internal/game"
)

// ClientState holds per-session presentation state. Gameplay state lives in
// the game itself.
type ClientState struct {
	Running bool // Client loop running

	termWidth  int
	termHeight int
	sizeDirty  bool // Terminal size changed since the last frame

	prevGameState game.State
	wasInactive   bool
	wasShutdown   bool

	shuttingDown  bool
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool    // Whether the client is in inactive warning state

	lastScore  int       // Last score reported to the server
	toast      string    // Transient footer message
	toastUntil time.Time // When the toast disappears

	delta time.Duration // Frame delta time
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running:       true,
		prevGameState: game.StateMenu,
	}
}

// showToast displays msg in the footer for d.
func (s *ClientState) showToast(now time.Time, msg string, d time.Duration) {
	s.toast = msg
	s.toastUntil = now.Add(d)
}

// activeToast returns the current toast, or "" once it has expired.
func (s *ClientState) activeToast(now time.Time) string {
	if s.toast == "" || !now.Before(s.toastUntil) {
		return ""
	}
	return s.toast
}
