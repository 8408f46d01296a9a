// Package config centralizes the terminal client's timing and layout parameters.
// Gameplay tunables live in game.DefaultConfig.
package config

import "time"

// Grid size. The board is sized once per session from the terminal and clamped
// to these limits.
const (
	MaxGridWidth      = 40 // Cells; each cell is two columns wide
	MaxGridHeight     = 24
	DefaultGridWidth  = 30 // Used when the terminal size is unknown
	DefaultGridHeight = 20
)

// Screen layout in terminal rows/columns around the board.
const (
	HUDRows     = 1 // Score line above the board
	FooterRows  = 1 // Key hints below the board
	BorderCells = 1 // Board border thickness on each side
)

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
	LeaderboardSize   = 5  // Entries shown on the menu
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	ShutdownTimeout        = 15 * time.Second
)

// Inactivity. Only counted outside of active play.
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
