package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/snake/internal/store"
)

func TestIndex(t *testing.T) {
	st := store.NewFileStore(t.TempDir(), nil)
	r := newRouter(st, "snake.example.com", log.New(io.Discard))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "ssh -t snake.example.com")
	assert.NotContains(t, rec.Body.String(), "{{.SSHHost}}")
}

func TestHighScoreAPI(t *testing.T) {
	dir := t.TempDir()
	st := store.NewFileStore(dir, nil)
	r := newRouter(st, "host", log.New(io.Discard))

	get := func() highScoreResponse {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/highscore", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp highScoreResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	assert.Equal(t, highScoreResponse{HighScore: 0, Achievements: []int{}}, get())

	// Records written by a game session show up on the next request.
	writer := store.NewFileStore(dir, nil)
	require.NoError(t, writer.SaveHighScore(27))
	require.NoError(t, writer.SaveAchievements([]int{10, 20}))
	assert.Equal(t, highScoreResponse{HighScore: 27, Achievements: []int{10, 20}}, get())
}

func TestHighScoreAPI_MethodNotAllowed(t *testing.T) {
	st := store.NewFileStore(t.TempDir(), nil)
	r := newRouter(st, "host", log.New(io.Discard))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/highscore", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
