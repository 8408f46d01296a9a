package client

import (
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
)

// ApplyKey translates one key press into a game command for the current state.
// Reports whether the game accepted it.
func ApplyKey(g *game.Game, e input.Event) bool {
	switch e.Key {
	case input.KeyUp:
		return g.ChangeDirection(game.DirUp)
	case input.KeyDown:
		return g.ChangeDirection(game.DirDown)
	case input.KeyLeft:
		return g.ChangeDirection(game.DirLeft)
	case input.KeyRight:
		return g.ChangeDirection(game.DirRight)

	case input.KeyPause:
		if g.State() == game.StatePaused {
			return g.Resume()
		}
		return g.Pause()

	case input.KeyConfirm:
		switch g.State() {
		case game.StateMenu:
			return g.StartGame()
		case game.StateGameOver:
			return g.RestartGame()
		case game.StatePaused:
			return g.Resume()
		}
		return false

	case input.KeyMenu:
		return g.ReturnToMenu()

	case input.KeyDigit:
		return g.SelectSkin(e.Digit - 1)

	case input.KeyQuit:
		// Exit is refused mid-run, so stop the run first.
		g.Pause()
		return g.RequestExit()
	}
	return false
}
