// Package loop wires a local terminal session: one hub, one client, one game.
package loop

import (
	"bufio"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/loop/client"
	"github.com/tomz197/snake/internal/loop/server"
)

// Options configures a local session.
type Options struct {
	Store  game.Store
	Game   *game.Config // Nil uses game.DefaultConfig
	Client client.ClientOptions
	Logger *log.Logger
}

// Run plays on r/w until the player quits. Blocks.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	if opts.Store == nil {
		return errors.New("loop: a store is required")
	}
	srv := server.NewServer(opts.Store, opts.Logger)

	clientOpts := opts.Client
	if clientOpts.Game == nil {
		clientOpts.Game = opts.Game
	}
	if clientOpts.Logger == nil {
		clientOpts.Logger = opts.Logger
	}

	c := client.NewClient(srv, r, w, clientOpts)
	return c.Run()
}
