package store

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestLoadHighScore(t *testing.T) {
	tests := []struct {
		name    string
		content string
		create  bool
		want    int
	}{
		{name: "missing file", create: false, want: 0},
		{name: "valid", content: `{"highscore": 42}`, create: true, want: 42},
		{name: "malformed json", content: `{"highscore": `, create: true, want: 0},
		{name: "wrong type", content: `{"highscore": "lots"}`, create: true, want: 0},
		{name: "negative", content: `{"highscore": -3}`, create: true, want: 0},
		{name: "empty object", content: `{}`, create: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.create {
				writeFile(t, dir, HighScoreFile, tt.content)
			}
			s := NewFileStore(dir, nil)
			assert.Equal(t, tt.want, s.LoadHighScore())
		})
	}
}

func TestSaveHighScore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, nil)

	require.NoError(t, s.SaveHighScore(17))
	assert.JSONEq(t, `{"highscore": 17}`, readFile(t, dir, HighScoreFile))

	fresh := NewFileStore(dir, nil)
	assert.Equal(t, 17, fresh.LoadHighScore())
}

func TestSaveHighScore_NeverLowers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, HighScoreFile, `{"highscore": 50}`)
	s := NewFileStore(dir, nil)

	require.NoError(t, s.SaveHighScore(12))
	assert.Equal(t, 50, s.LoadHighScore())
	assert.JSONEq(t, `{"highscore": 50}`, readFile(t, dir, HighScoreFile))

	require.NoError(t, s.SaveHighScore(51))
	assert.Equal(t, 51, s.LoadHighScore())
}

func TestSaveHighScore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewFileStore(dir, nil)

	require.NoError(t, s.SaveHighScore(3))
	assert.FileExists(t, filepath.Join(dir, HighScoreFile))
}

func TestSaveHighScore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, nil)

	require.NoError(t, s.SaveHighScore(9))
	require.NoError(t, s.SaveAchievements([]int{10}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{HighScoreFile, AchievementFile, LegacyAchievementFile}, names)
}

func TestSaveHighScore_UnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	writeFile(t, dir, "file", "not a directory")

	s := NewFileStore(blocker, nil)
	assert.Error(t, s.SaveHighScore(5))
}

func TestLoadAchievements(t *testing.T) {
	tests := []struct {
		name      string
		preferred string
		legacy    string
		want      []int
	}{
		{name: "no files", want: []int{}},
		{name: "preferred only", preferred: "10\n20\n", want: []int{10, 20}},
		{name: "legacy only", legacy: "30\n10\n", want: []int{10, 30}},
		{name: "preferred wins", preferred: "10\n", legacy: "10\n20\n50\n", want: []int{10}},
		{name: "skips junk lines", preferred: "10\nabc\n\n-5\n 20 \n3.5\n", want: []int{10, 20}},
		{name: "duplicates collapse", preferred: "20\n20\n10\n", want: []int{10, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.preferred != "" {
				writeFile(t, dir, AchievementFile, tt.preferred)
			}
			if tt.legacy != "" {
				writeFile(t, dir, LegacyAchievementFile, tt.legacy)
			}
			s := NewFileStore(dir, nil)
			assert.Equal(t, tt.want, s.LoadAchievements())
		})
	}
}

func TestSaveAchievements_WritesBothFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, nil)

	require.NoError(t, s.SaveAchievements([]int{20, 10}))

	assert.Equal(t, "10\n20\n", readFile(t, dir, AchievementFile))
	assert.Equal(t, "10\n20\n", readFile(t, dir, LegacyAchievementFile))
}

func TestSaveAchievements_Union(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, LegacyAchievementFile, "50\n")
	s := NewFileStore(dir, nil)

	require.NoError(t, s.SaveAchievements([]int{10}))
	assert.Equal(t, []int{10, 50}, s.LoadAchievements())

	// Saving a smaller set never drops anything already unlocked.
	require.NoError(t, s.SaveAchievements(nil))
	assert.Equal(t, "10\n50\n", readFile(t, dir, AchievementFile))
}

func TestSharedStore_Concurrent(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, nil)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			assert.NoError(t, s.SaveHighScore(score))
			assert.NoError(t, s.SaveAchievements([]int{score * 10}))
		}(i)
	}
	wg.Wait()

	fresh := NewFileStore(dir, nil)
	assert.Equal(t, 20, fresh.LoadHighScore())
	assert.Len(t, fresh.LoadAchievements(), 20)
}
