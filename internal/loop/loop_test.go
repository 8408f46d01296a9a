package loop

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/loop/client"
	"github.com/tomz197/snake/internal/store"
)

func TestRun_RequiresStore(t *testing.T) {
	err := Run(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{}, Options{})
	assert.Error(t, err)
}

func TestRun_QuitsOnQ(t *testing.T) {
	cfg := game.DefaultConfig(10, 10)
	cfg.Seed = 7

	var out bytes.Buffer
	err := Run(bufio.NewReader(strings.NewReader("q")), &out, Options{
		Store: store.NewFileStore(t.TempDir(), nil),
		Game:  &cfg,
		Client: client.ClientOptions{
			TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
		},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "\033[?25h", "cursor restored")
}
