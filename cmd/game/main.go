package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/loop"
	"github.com/tomz197/snake/internal/loop/client"
	"github.com/tomz197/snake/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Logs would corrupt the board, so they go to a file or nowhere
	logOut := io.Discard
	if path := config.GetEnv("SNAKE_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "snake")

	dataDir := config.DataDir()
	logger.Info("starting", "dataDir", dataDir)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	cfg := config.GameConfig()
	err = loop.Run(bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Store:  store.NewFileStore(dataDir, logger.WithPrefix("store")),
		Game:   &cfg,
		Logger: logger,
		Client: client.ClientOptions{
			Username: os.Getenv("USER"),
			Renderer: lipgloss.NewRenderer(os.Stdout),
			Symbols:  draw.ProbeSymbolRenderer(os.Environ()),
		},
	})
	if err != nil {
		logger.Error("game ended with error", "err", err)
	}
	return err
}
